// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package sitesearch

import (
	"cmp"
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/stencilcms/composer/lib/siteview"
)

// FuzzyResult is the outcome of one fuzzy match. Score is zero when the
// pattern does not match. Positions are rune offsets into the text of
// the matched characters, ascending.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// NewSlab allocates scratch space for FuzzyMatch. A slab is reused
// across calls from one goroutine to avoid per-call allocation.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch scores text against pattern with fzf's v2 algorithm. Both
// sides are lowercased, so matching is case-insensitive. An empty
// pattern never matches. slab may be nil.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	loweredPattern := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, loweredPattern, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = slices.Clone(*positions)
		slices.Sort(matched)
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}

// RankedArticle is an article that matched a fuzzy quick-filter.
type RankedArticle struct {
	Article *siteview.ArticleView
	FuzzyResult
}

// RankArticles fuzzy-matches pattern against every article name and
// returns the matches best first. Equal scores keep tree order. An
// empty pattern returns every article in tree order with zero scores.
func RankArticles(views *siteview.Views, pattern string) []RankedArticle {
	flat := views.Flatten()
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		ranked := make([]RankedArticle, 0, len(flat))
		for _, article := range flat {
			ranked = append(ranked, RankedArticle{Article: article})
		}
		return ranked
	}

	slab := NewSlab()
	patternRunes := []rune(trimmed)
	var ranked []RankedArticle
	for _, article := range flat {
		result := FuzzyMatch(article.Name(), patternRunes, slab)
		if result.Score > 0 {
			ranked = append(ranked, RankedArticle{Article: article, FuzzyResult: result})
		}
	}
	slices.SortStableFunc(ranked, func(a, b RankedArticle) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}
