// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"maps"
	"time"
)

// Identifier types. All ids are opaque strings assigned by the content
// service and unique within their kind. Distinct types keep an article
// id from being passed where a page id is expected.
type (
	ArticleID  string
	PageID     string
	LinkID     string
	WorkflowID string
	LocaleID   string
	ReleaseID  string
	TemplateID string
)

// ContentType reports whether a Site carries real content. The service
// adapters produce ContentNoConnection when the initial load could not
// reach the service, so the UI can render a fallback instead of an
// empty workspace.
type ContentType string

const (
	// ContentOK is a successfully loaded site.
	ContentOK ContentType = "OK"
	// ContentNoConnection marks a placeholder site produced when the
	// service was unreachable.
	ContentNoConnection ContentType = "NO_CONNECTION"
)

// Site is the full normalized graph fetched from the content service.
// Maps are keyed by entity id; a nil map is equivalent to an empty one.
type Site struct {
	ContentType ContentType             `json:"contentType"`
	Articles    map[ArticleID]Article   `json:"articles"`
	Pages       map[PageID]Page         `json:"pages"`
	Links       map[LinkID]Link         `json:"links"`
	Workflows   map[WorkflowID]Workflow `json:"workflows"`
	Locales     map[LocaleID]Locale     `json:"locales"`
	Releases    map[ReleaseID]Release   `json:"releases"`
	Templates   map[TemplateID]Template `json:"templates"`
}

// New returns an empty site with every map allocated.
func New() *Site {
	return &Site{
		ContentType: ContentOK,
		Articles:    make(map[ArticleID]Article),
		Pages:       make(map[PageID]Page),
		Links:       make(map[LinkID]Link),
		Workflows:   make(map[WorkflowID]Workflow),
		Locales:     make(map[LocaleID]Locale),
		Releases:    make(map[ReleaseID]Release),
		Templates:   make(map[TemplateID]Template),
	}
}

// NoConnection returns the placeholder site used when the service is
// unreachable.
func NoConnection() *Site {
	empty := New()
	empty.ContentType = ContentNoConnection
	return empty
}

// Clone returns a copy of the site whose maps can be modified without
// affecting the original. Entity bodies are values; their slices are
// shared and must be treated as read-only.
func (s *Site) Clone() *Site {
	clone := &Site{
		ContentType: s.ContentType,
		Articles:    maps.Clone(s.Articles),
		Pages:       maps.Clone(s.Pages),
		Links:       maps.Clone(s.Links),
		Workflows:   maps.Clone(s.Workflows),
		Locales:     maps.Clone(s.Locales),
		Releases:    maps.Clone(s.Releases),
		Templates:   maps.Clone(s.Templates),
	}
	clone.ensureMaps()
	return clone
}

// ensureMaps allocates any nil map so callers can write into a decoded
// or cloned site without nil checks.
func (s *Site) ensureMaps() {
	if s.Articles == nil {
		s.Articles = make(map[ArticleID]Article)
	}
	if s.Pages == nil {
		s.Pages = make(map[PageID]Page)
	}
	if s.Links == nil {
		s.Links = make(map[LinkID]Link)
	}
	if s.Workflows == nil {
		s.Workflows = make(map[WorkflowID]Workflow)
	}
	if s.Locales == nil {
		s.Locales = make(map[LocaleID]Locale)
	}
	if s.Releases == nil {
		s.Releases = make(map[ReleaseID]Release)
	}
	if s.Templates == nil {
		s.Templates = make(map[TemplateID]Template)
	}
}

// Normalize fills nil maps and an empty content type. Decoders call
// this after unmarshaling so downstream code sees a well-formed graph.
func (s *Site) Normalize() {
	if s.ContentType == "" {
		s.ContentType = ContentOK
	}
	s.ensureMaps()
}

// Article is a node in the site's content tree.
type Article struct {
	ID   ArticleID   `json:"id"`
	Body ArticleBody `json:"body"`
}

// ArticleBody is the editable payload of an Article.
type ArticleBody struct {
	Name string `json:"name"`

	// ParentID is the parent article. Empty for root articles. The
	// induced parent graph is expected to be a forest; the view
	// builder detects and reports violations rather than trusting it.
	ParentID ArticleID `json:"parentId,omitempty"`

	// Order is the sort key among siblings. Ties are broken by id.
	Order int `json:"order"`

	Links     []LinkID     `json:"links,omitempty"`
	Workflows []WorkflowID `json:"workflows,omitempty"`
	DevMode   bool         `json:"devMode,omitempty"`
}

// Page is the localized content of an article for one locale. At most
// one page should exist per (article, locale) pair.
type Page struct {
	ID   PageID   `json:"id"`
	Body PageBody `json:"body"`
}

// PageBody is the editable payload of a Page.
type PageBody struct {
	Article ArticleID `json:"article"`
	Locale  LocaleID  `json:"locale"`

	// Content is the page's markdown source.
	Content string `json:"content"`
	DevMode bool   `json:"devMode,omitempty"`
}

// Label is a locale-specific display label for a link or workflow.
type Label struct {
	Locale     LocaleID `json:"locale"`
	LabelValue string   `json:"labelValue"`
}

// Link is an external or internal reference that articles can attach.
type Link struct {
	ID   LinkID   `json:"id"`
	Body LinkBody `json:"body"`
}

// LinkBody is the editable payload of a Link.
type LinkBody struct {
	// Value is the link target, typically a URL.
	Value string `json:"value"`

	// ContentType classifies the link target (e.g. "internal",
	// "external", "phone"). Opaque to the composer.
	ContentType string `json:"contentType"`

	// Articles lists the articles that use this link. This is a
	// reverse reference maintained by the service.
	Articles []ArticleID `json:"articles,omitempty"`
	Labels   []Label     `json:"labels,omitempty"`
	DevMode  bool        `json:"devMode,omitempty"`
}

// Workflow is a named process attached to articles.
type Workflow struct {
	ID   WorkflowID   `json:"id"`
	Body WorkflowBody `json:"body"`
}

// WorkflowBody is the editable payload of a Workflow.
type WorkflowBody struct {
	Value    string      `json:"value"`
	Articles []ArticleID `json:"articles,omitempty"`
	Labels   []Label     `json:"labels,omitempty"`
	DevMode  bool        `json:"devMode,omitempty"`
}

// Locale is a language or region a site publishes pages in.
type Locale struct {
	ID   LocaleID   `json:"id"`
	Body LocaleBody `json:"body"`
}

// LocaleBody is the editable payload of a Locale.
type LocaleBody struct {
	// Value is the display label, e.g. "en" or "Deutsch".
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// Release is an immutable snapshot of the site.
type Release struct {
	ID   ReleaseID   `json:"id"`
	Body ReleaseBody `json:"body"`
}

// ReleaseBody is the payload of a Release.
type ReleaseBody struct {
	Name    string    `json:"name"`
	Note    string    `json:"note,omitempty"`
	Created time.Time `json:"created"`
}

// Template is an immutable page skeleton used when creating pages.
type Template struct {
	ID   TemplateID   `json:"id"`
	Body TemplateBody `json:"body"`
}

// TemplateBody is the payload of a Template.
type TemplateBody struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content"`
	Created     time.Time `json:"created"`
}
