// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package sitesearch

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// The parser is stateless once configured and safe for concurrent use.
var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func getMarkdownParser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

// PlainText returns the visible text of a markdown document: markup is
// dropped, each block ends with a newline, and soft line breaks become
// spaces. Link destinations and HTML are not part of the result.
func PlainText(markdown string) string {
	source := []byte(markdown)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	var builder strings.Builder
	_ = ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		switch typed := node.(type) {
		case *ast.Text:
			if entering {
				builder.Write(typed.Segment.Value(source))
				if typed.SoftLineBreak() || typed.HardLineBreak() {
					builder.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				builder.Write(typed.Value)
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				lines := node.Lines()
				for index := 0; index < lines.Len(); index++ {
					segment := lines.At(index)
					builder.Write(segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		default:
			if !entering && node.Type() == ast.TypeBlock && node.Kind() != ast.KindDocument {
				if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
					builder.WriteByte('\n')
				}
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(builder.String())
}

// Heading returns the text of the first heading in a markdown document,
// or the empty string when there is none.
func Heading(markdown string) string {
	source := []byte(markdown)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	var heading string
	_ = ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		var builder strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			collectInline(&builder, child, source)
		}
		heading = strings.TrimSpace(builder.String())
		return ast.WalkStop, nil
	})
	return heading
}

func collectInline(builder *strings.Builder, node ast.Node, source []byte) {
	switch typed := node.(type) {
	case *ast.Text:
		builder.Write(typed.Segment.Value(source))
		return
	case *ast.String:
		builder.Write(typed.Value)
		return
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		collectInline(builder, child, source)
	}
}
