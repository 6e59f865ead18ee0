// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"

	"github.com/stencilcms/composer/lib/schema/site"
)

// Service is the content service the composer edits against. Every
// method may block on I/O and honours ctx. Failures are returned as
// *Error where the implementation can classify them.
//
// The composer only needs to know that a mutation succeeded: it then
// reloads the whole site rather than patching local state.
type Service interface {
	LoadSite(ctx context.Context) (*site.Site, error)
	Version(ctx context.Context) (site.VersionInfo, error)

	CreateArticle(ctx context.Context, request site.CreateArticle) (site.ArticleID, error)
	UpdateArticle(ctx context.Context, mutator site.ArticleMutator) error
	DeleteArticle(ctx context.Context, articleID site.ArticleID) error

	CreatePage(ctx context.Context, request site.CreatePage) (site.PageID, error)
	UpdatePage(ctx context.Context, mutator site.PageMutator) error
	DeletePage(ctx context.Context, pageID site.PageID) error

	CreateLink(ctx context.Context, request site.CreateLink) (site.LinkID, error)
	UpdateLink(ctx context.Context, mutator site.LinkMutator) error
	DeleteLink(ctx context.Context, linkID site.LinkID) error

	CreateWorkflow(ctx context.Context, request site.CreateWorkflow) (site.WorkflowID, error)
	UpdateWorkflow(ctx context.Context, mutator site.WorkflowMutator) error
	DeleteWorkflow(ctx context.Context, workflowID site.WorkflowID) error

	CreateLocale(ctx context.Context, request site.CreateLocale) (site.LocaleID, error)
	UpdateLocale(ctx context.Context, mutator site.LocaleMutator) error
	DeleteLocale(ctx context.Context, localeID site.LocaleID) error

	CreateRelease(ctx context.Context, request site.CreateRelease) (site.ReleaseID, error)
	DeleteRelease(ctx context.Context, releaseID site.ReleaseID) error

	CreateTemplate(ctx context.Context, request site.CreateTemplate) (site.TemplateID, error)
	DeleteTemplate(ctx context.Context, templateID site.TemplateID) error
}
