// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package sitesearch

import "testing"

func TestFuzzyMatch(t *testing.T) {
	result := FuzzyMatch("Opening Hours", []rune("hours"), nil)
	if result.Score <= 0 {
		t.Fatalf("expected positive score, got %d", result.Score)
	}
	if len(result.Positions) != 5 {
		t.Errorf("positions = %v, want 5 matched runes", result.Positions)
	}
	for index := 1; index < len(result.Positions); index++ {
		if result.Positions[index] <= result.Positions[index-1] {
			t.Errorf("positions not ascending: %v", result.Positions)
		}
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	if result := FuzzyMatch("contact us", []rune("cus"), nil); result.Score <= 0 {
		t.Errorf("expected non-contiguous match, got score %d", result.Score)
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("Contact", []rune("xyz"), nil)
	if result.Score != 0 || len(result.Positions) != 0 {
		t.Errorf("expected no match, got %+v", result)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	if result := FuzzyMatch("anything", nil, nil); result.Score != 0 {
		t.Errorf("empty pattern scored %d", result.Score)
	}
}

func TestRankArticles(t *testing.T) {
	views := testViews()

	all := RankArticles(views, "")
	if len(all) != 2 || all[0].Article.ID() != "a-home" {
		t.Fatalf("empty pattern should list every article in tree order, got %d", len(all))
	}

	ranked := RankArticles(views, "cnt")
	if len(ranked) != 1 || ranked[0].Article.ID() != "a-contact" {
		t.Fatalf("RankArticles(cnt) = %+v, want only Contact", ranked)
	}
	if ranked[0].Score <= 0 {
		t.Errorf("ranked score = %d, want positive", ranked[0].Score)
	}
}
