// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package sitesearch

import "fmt"

// Kind identifies which field of which entity a Value was taken from.
type Kind int

const (
	ArticleName Kind = iota
	ArticlePage
	WorkflowName
	WorkflowLabel
	LinkValue
	LinkLabel
)

// String returns the wire name of the kind, e.g. "ARTICLE_NAME".
func (kind Kind) String() string {
	switch kind {
	case ArticleName:
		return "ARTICLE_NAME"
	case ArticlePage:
		return "ARTICLE_PAGE"
	case WorkflowName:
		return "WORKFLOW_NAME"
	case WorkflowLabel:
		return "WORKFLOW_LABEL"
	case LinkValue:
		return "LINK_VALUE"
	case LinkLabel:
		return "LINK_LABEL"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}

// EntryKind identifies the entity an Entry stands for.
type EntryKind int

const (
	EntryArticle EntryKind = iota
	EntryLink
	EntryWorkflow
)

// String returns the wire name of the entry kind.
func (kind EntryKind) String() string {
	switch kind {
	case EntryArticle:
		return "ARTICLE"
	case EntryLink:
		return "LINK"
	case EntryWorkflow:
		return "WORKFLOW"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(kind))
	}
}
