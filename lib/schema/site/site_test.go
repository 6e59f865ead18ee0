// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"encoding/json"
	"testing"
)

func TestCloneIsIndependent(t *testing.T) {
	original := New()
	original.Articles["a1"] = Article{ID: "a1", Body: ArticleBody{Name: "Home"}}

	clone := original.Clone()
	clone.Articles["a2"] = Article{ID: "a2", Body: ArticleBody{Name: "About"}}
	delete(clone.Articles, "a1")

	if _, exists := original.Articles["a1"]; !exists {
		t.Fatal("deleting from clone removed article from original")
	}
	if _, exists := original.Articles["a2"]; exists {
		t.Fatal("adding to clone added article to original")
	}
}

func TestNormalizeFillsMaps(t *testing.T) {
	var decoded Site
	if err := json.Unmarshal([]byte(`{"articles":{"a1":{"id":"a1","body":{"name":"Home","order":1}}}}`), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	decoded.Normalize()

	if decoded.ContentType != ContentOK {
		t.Errorf("ContentType = %q, want %q", decoded.ContentType, ContentOK)
	}
	if decoded.Pages == nil || decoded.Locales == nil || decoded.Templates == nil {
		t.Error("Normalize left a nil map")
	}
	if decoded.Articles["a1"].Body.Order != 1 {
		t.Errorf("article order = %d, want 1", decoded.Articles["a1"].Body.Order)
	}
}

func TestNoConnection(t *testing.T) {
	placeholder := NoConnection()
	if placeholder.ContentType != ContentNoConnection {
		t.Errorf("ContentType = %q, want %q", placeholder.ContentType, ContentNoConnection)
	}
	if len(placeholder.Articles) != 0 {
		t.Errorf("placeholder has %d articles", len(placeholder.Articles))
	}
}
