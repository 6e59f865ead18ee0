// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const wrapBreakpoints = " ,.;-+|"

var (
	previewParserOnce sync.Once
	previewParser     goldmark.Markdown
)

func getPreviewParser() goldmark.Markdown {
	previewParserOnce.Do(func() {
		previewParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return previewParser
}

// renderPagePreview renders page content for the detail pane. Paragraphs
// reflow to width, fenced code keeps its lines and is highlighted when
// the language is known. With termenv.Ascii the result carries no
// escape sequences.
func renderPagePreview(content string, theme Theme, width int, profile termenv.Profile) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	source := []byte(content)
	document := getPreviewParser().Parser().Parse(text.NewReader(source))

	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	preview := &pagePreview{
		source:  source,
		theme:   theme,
		width:   width,
		profile: profile,
		styles:  renderer,
	}
	_ = ast.Walk(document, preview.walk)
	return strings.TrimRight(preview.output.String(), "\n")
}

// pagePreview walks the document once. Inline text collects in inline
// and is wrapped when its block closes; indent holds the prefix of
// enclosing quotes and list items.
type pagePreview struct {
	source  []byte
	theme   Theme
	width   int
	profile termenv.Profile
	styles  *lipgloss.Renderer

	output  strings.Builder
	inline  strings.Builder
	indent  []string
	marker  string
	newline int

	strong int
	italic int
	struck int

	lists []previewList
}

type previewList struct {
	ordered bool
	next    int
	tight   bool
}

func (preview *pagePreview) style() lipgloss.Style {
	return preview.styles.NewStyle()
}

func (preview *pagePreview) prefix() string {
	return strings.Join(preview.indent, "")
}

func (preview *pagePreview) available() int {
	return max(preview.width-ansi.StringWidth(preview.prefix()), 10)
}

func (preview *pagePreview) write(s string) {
	if s == "" {
		return
	}
	preview.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		preview.newline += len(s)
		return
	}
	preview.newline = len(s) - len(trimmed)
}

func (preview *pagePreview) endLine() {
	if preview.newline == 0 && preview.output.Len() > 0 {
		preview.write("\n")
	}
}

func (preview *pagePreview) blankLine() {
	if preview.output.Len() == 0 {
		return
	}
	for preview.newline < 2 {
		preview.write("\n")
	}
}

// emitLines writes block lines under the current indent. The first
// line takes the pending list marker if there is one.
func (preview *pagePreview) emitLines(block string) {
	prefix := preview.prefix()
	for index, line := range strings.Split(block, "\n") {
		if index == 0 && preview.marker != "" {
			preview.write(preview.marker + line + "\n")
			preview.marker = ""
			continue
		}
		preview.write(prefix + line + "\n")
	}
}

func (preview *pagePreview) flush() {
	content := preview.inline.String()
	preview.inline.Reset()
	if content == "" {
		return
	}
	preview.emitLines(ansi.Wrap(content, preview.available(), wrapBreakpoints))
}

func (preview *pagePreview) tightList() bool {
	return len(preview.lists) > 0 && preview.lists[len(preview.lists)-1].tight
}

func (preview *pagePreview) textStyle() lipgloss.Style {
	style := preview.style().Foreground(preview.theme.NormalText)
	if preview.strong > 0 {
		style = style.Bold(true)
	}
	if preview.italic > 0 {
		style = style.Italic(true)
	}
	if preview.struck > 0 {
		style = style.Strikethrough(true)
	}
	return style
}

func (preview *pagePreview) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			preview.flush()
			if !preview.tightList() {
				preview.blankLine()
			}
		}

	case *ast.Heading:
		if entering {
			preview.inline.Reset()
			return ast.WalkContinue, nil
		}
		preview.heading(typed)

	case *ast.FencedCodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		preview.code(linesOf(typed.Lines(), preview.source), string(typed.Language(preview.source)))
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		preview.code(linesOf(typed.Lines(), preview.source), "")
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if entering {
			preview.indent = append(preview.indent, preview.style().Foreground(preview.theme.BorderColor).Render("│")+" ")
		} else {
			preview.indent = preview.indent[:len(preview.indent)-1]
			preview.blankLine()
		}

	case *ast.List:
		if entering {
			preview.lists = append(preview.lists, previewList{ordered: typed.IsOrdered(), next: typed.Start, tight: typed.IsTight})
		} else {
			preview.lists = preview.lists[:len(preview.lists)-1]
			if !preview.tightList() {
				preview.blankLine()
			}
		}

	case *ast.ListItem:
		if entering {
			preview.listItem()
		} else {
			preview.indent = preview.indent[:len(preview.indent)-1]
			preview.endLine()
		}

	case *ast.ThematicBreak:
		if entering {
			preview.blankLine()
			rule := strings.Repeat("─", preview.available())
			preview.emitLines(preview.style().Foreground(preview.theme.BorderColor).Render(rule))
			preview.blankLine()
		}

	case *ast.Text:
		if entering {
			preview.inline.WriteString(preview.textStyle().Render(string(typed.Segment.Value(preview.source))))
			switch {
			case typed.HardLineBreak():
				preview.inline.WriteString("\n")
			case typed.SoftLineBreak():
				preview.inline.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			preview.inline.WriteString(preview.textStyle().Render(string(typed.Value)))
		}

	case *ast.Emphasis:
		counter := &preview.italic
		if typed.Level >= 2 {
			counter = &preview.strong
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case *extast.Strikethrough:
		if entering {
			preview.struck++
		} else {
			preview.struck--
		}

	case *ast.CodeSpan:
		if !entering {
			return ast.WalkContinue, nil
		}
		var code strings.Builder
		for child := typed.FirstChild(); child != nil; child = child.NextSibling() {
			if segment, ok := child.(*ast.Text); ok {
				code.Write(segment.Segment.Value(preview.source))
			}
		}
		preview.inline.WriteString(preview.style().Foreground(preview.theme.LocaleBadge).Render(code.String()))
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		if !entering && len(typed.Destination) > 0 {
			preview.inline.WriteString(" " + preview.style().Foreground(preview.theme.FaintText).Render("("+string(typed.Destination)+")"))
		}

	case *ast.AutoLink:
		if entering {
			preview.inline.WriteString(preview.style().Foreground(preview.theme.FaintText).Render(string(typed.URL(preview.source))))
		}

	case *ast.Image:
		if entering {
			label := string(typed.Text(preview.source))
			preview.inline.WriteString(preview.style().Foreground(preview.theme.FaintText).Render("[image: " + label + "]"))
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML:
		return ast.WalkSkipChildren, nil

	case *extast.TaskCheckBox:
		if entering {
			box := "[ ] "
			if typed.IsChecked {
				box = "[x] "
			}
			preview.inline.WriteString(preview.textStyle().Render(box))
		}

	case *extast.Table:
		if entering {
			preview.table(typed)
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (preview *pagePreview) heading(heading *ast.Heading) {
	content := ansi.Strip(preview.inline.String())
	preview.inline.Reset()
	if content == "" {
		return
	}
	style := preview.style().Bold(true).Foreground(preview.theme.NormalText)
	if heading.Level <= 2 {
		style = style.Foreground(preview.theme.HeaderForeground)
	}
	if heading.Level == 1 {
		style = style.Underline(true)
	}
	preview.blankLine()
	preview.emitLines(ansi.Wrap(style.Render(content), preview.available(), wrapBreakpoints))
	preview.blankLine()
}

func (preview *pagePreview) listItem() {
	list := &preview.lists[len(preview.lists)-1]
	bullet := "• "
	if list.ordered {
		bullet = fmt.Sprintf("%d. ", list.next)
		list.next++
	}
	preview.marker = preview.prefix() + bullet
	preview.indent = append(preview.indent, strings.Repeat(" ", len([]rune(bullet))))
}

// code writes a code block line for line, never wrapped.
func (preview *pagePreview) code(code, language string) {
	preview.blankLine()
	preview.emitLines(strings.TrimRight(preview.highlight(code, language), "\n"))
	preview.blankLine()
}

// highlight colors code with chroma. Unknown languages, the ASCII
// profile and formatter errors fall back to faint plain text.
func (preview *pagePreview) highlight(code, language string) string {
	code = strings.TrimRight(code, "\n")
	plain := preview.style().Foreground(preview.theme.FaintText)
	if language == "" || preview.profile == termenv.Ascii {
		return renderEachLine(plain, code)
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return renderEachLine(plain, code)
	}
	tokens, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return renderEachLine(plain, code)
	}
	var buffer strings.Builder
	if err := formatters.Get(chromaFormatter(preview.profile)).Format(&buffer, styles.Get(preview.theme.CodeStyle), tokens); err != nil {
		return renderEachLine(plain, code)
	}
	return buffer.String()
}

func chromaFormatter(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI:
		return "terminal16"
	}
	return "terminal256"
}

// renderEachLine styles lines separately so the escape sequences never
// span a newline.
func renderEachLine(style lipgloss.Style, block string) string {
	lines := strings.Split(block, "\n")
	for index, line := range lines {
		lines[index] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// table renders a GFM table with columns padded to their widest cell.
// Cells are plain text.
func (preview *pagePreview) table(table *extast.Table) {
	var rows [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(string(cell.Text(preview.source))))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for column, cell := range row {
			if column < len(widths) {
				widths[column] = max(widths[column], ansi.StringWidth(cell))
			}
		}
	}

	header := preview.style().Bold(true).Foreground(preview.theme.NormalText)
	border := preview.style().Foreground(preview.theme.BorderColor)
	preview.blankLine()
	for index, row := range rows {
		padded := make([]string, len(widths))
		for column, width := range widths {
			var cell string
			if column < len(row) {
				cell = row[column]
			}
			padded[column] = cell + strings.Repeat(" ", width-ansi.StringWidth(cell))
		}
		line := ansi.Truncate(strings.TrimRight(strings.Join(padded, "  "), " "), preview.available(), "…")
		if index > 0 {
			preview.emitLines(line)
			continue
		}
		preview.emitLines(header.Render(line))
		rules := make([]string, len(widths))
		for column, width := range widths {
			rules[column] = strings.Repeat("─", width)
		}
		preview.emitLines(border.Render(ansi.Truncate(strings.Join(rules, "  "), preview.available(), "")))
	}
	preview.blankLine()
}

func linesOf(lines *text.Segments, source []byte) string {
	var builder strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(source))
	}
	return builder.String()
}
