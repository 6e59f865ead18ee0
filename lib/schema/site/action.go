// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package site

// Action names for the Stencil socket protocol. The HTTP client maps
// the same operations onto REST paths.

// Query operations.
const (
	ActionLoadSite = "site/load"
	ActionVersion  = "service/version"
)

// Mutation operations.
const (
	ActionCreateArticle = "article/create"
	ActionUpdateArticle = "article/update"
	ActionDeleteArticle = "article/delete"

	ActionCreatePage = "page/create"
	ActionUpdatePage = "page/update"
	ActionDeletePage = "page/delete"

	ActionCreateLink = "link/create"
	ActionUpdateLink = "link/update"
	ActionDeleteLink = "link/delete"

	ActionCreateWorkflow = "workflow/create"
	ActionUpdateWorkflow = "workflow/update"
	ActionDeleteWorkflow = "workflow/delete"

	ActionCreateLocale = "locale/create"
	ActionUpdateLocale = "locale/update"
	ActionDeleteLocale = "locale/delete"

	ActionCreateRelease = "release/create"
	ActionDeleteRelease = "release/delete"

	ActionCreateTemplate = "template/create"
	ActionDeleteTemplate = "template/delete"
)

// CreateArticle is the request body for ActionCreateArticle.
type CreateArticle struct {
	ParentID ArticleID `json:"parentId,omitempty"`
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	DevMode  bool      `json:"devMode,omitempty"`
}

// ArticleMutator replaces the body of an existing article.
type ArticleMutator struct {
	ArticleID ArticleID   `json:"articleId"`
	Body      ArticleBody `json:"body"`
}

// CreatePage is the request body for ActionCreatePage. TemplateID,
// when set, seeds Content from the template if Content is empty.
type CreatePage struct {
	ArticleID  ArticleID  `json:"articleId"`
	Locale     LocaleID   `json:"locale"`
	Content    string     `json:"content,omitempty"`
	TemplateID TemplateID `json:"templateId,omitempty"`
	DevMode    bool       `json:"devMode,omitempty"`
}

// PageMutator replaces the mutable fields of an existing page. The
// owning article cannot change.
type PageMutator struct {
	PageID  PageID   `json:"pageId"`
	Locale  LocaleID `json:"locale"`
	Content string   `json:"content"`
	DevMode bool     `json:"devMode,omitempty"`
}

// CreateLink is the request body for ActionCreateLink.
type CreateLink struct {
	Value       string      `json:"value"`
	ContentType string      `json:"contentType"`
	Labels      []Label     `json:"labels,omitempty"`
	Articles    []ArticleID `json:"articles,omitempty"`
	DevMode     bool        `json:"devMode,omitempty"`
}

// LinkMutator replaces the body of an existing link.
type LinkMutator struct {
	LinkID LinkID   `json:"linkId"`
	Body   LinkBody `json:"body"`
}

// CreateWorkflow is the request body for ActionCreateWorkflow.
type CreateWorkflow struct {
	Value    string      `json:"value"`
	Labels   []Label     `json:"labels,omitempty"`
	Articles []ArticleID `json:"articles,omitempty"`
	DevMode  bool        `json:"devMode,omitempty"`
}

// WorkflowMutator replaces the body of an existing workflow.
type WorkflowMutator struct {
	WorkflowID WorkflowID   `json:"workflowId"`
	Body       WorkflowBody `json:"body"`
}

// CreateLocale is the request body for ActionCreateLocale.
type CreateLocale struct {
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// LocaleMutator replaces the body of an existing locale.
type LocaleMutator struct {
	LocaleID LocaleID   `json:"localeId"`
	Body     LocaleBody `json:"body"`
}

// CreateRelease is the request body for ActionCreateRelease. The
// service stamps the creation time.
type CreateRelease struct {
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// CreateTemplate is the request body for ActionCreateTemplate.
type CreateTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
}

// DeleteRequest is the request body for every delete action. The id is
// interpreted according to the action.
type DeleteRequest struct {
	ID string `json:"id"`
}

// CreatedResponse is returned by every create action.
type CreatedResponse struct {
	ID string `json:"id"`
}

// VersionInfo describes the service build. Informational only.
type VersionInfo struct {
	Version string `json:"version"`
	Built   string `json:"built"`
}
