// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/stencilcms/composer/lib/schema/site"
)

func TestSiteRoundtrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	original := site.New()
	original.Articles["a1"] = site.Article{ID: "a1", Body: site.ArticleBody{
		Name:  "Home",
		Order: 100,
		Links: []site.LinkID{"l1"},
	}}
	original.Pages["p1"] = site.Page{ID: "p1", Body: site.PageBody{
		Article: "a1",
		Locale:  "en",
		Content: "# Home\n",
	}}
	original.Releases["r1"] = site.Release{ID: "r1", Body: site.ReleaseBody{
		Name:    "v1",
		Created: created,
	}}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded site.Site
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	decoded.Normalize()

	if diff := cmp.Diff(original, &decoded); diff != "" {
		t.Errorf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	graph := site.New()
	for _, id := range []site.ArticleID{"c", "a", "b", "e", "d"} {
		graph.Articles[id] = site.Article{ID: id, Body: site.ArticleBody{Name: string(id)}}
	}

	first, err := Marshal(graph)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(graph)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	data, err := Marshal(site.CreateArticle{Name: "News", ParentID: "a1"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var generic map[string]any
	if err := Unmarshal(data, &generic); err != nil {
		t.Fatalf("Unmarshal into map: %v", err)
	}
	if generic["parentId"] != "a1" {
		t.Errorf("parentId = %v, want a1 (json tag should name the CBOR key)", generic["parentId"])
	}
	if _, present := generic["devMode"]; present {
		t.Error("omitempty from json tag not honoured")
	}
}

func TestStreamRoundtrip(t *testing.T) {
	requests := []site.DeleteRequest{{ID: "a1"}, {ID: "p2"}, {ID: "l3"}}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, request := range requests {
		if err := encoder.Encode(request); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for index, want := range requests {
		var got site.DeleteRequest
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode[%d]: %v", index, err)
		}
		if got != want {
			t.Errorf("Decode[%d] = %+v, want %+v", index, got, want)
		}
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(site.DeleteRequest{ID: "a1"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, `"id"`) || !strings.Contains(diagnostic, `"a1"`) {
		t.Errorf("Diagnose = %s, want id and value", diagnostic)
	}
}
