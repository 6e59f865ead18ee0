// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/stencilcms/composer/lib/codec"
	"github.com/stencilcms/composer/lib/schema/site"
)

const (
	dialTimeout = 5 * time.Second

	// responseReadTimeout covers the server's read and write timeouts
	// plus handler time.
	responseReadTimeout = 45 * time.Second
)

// ServiceError is the message a server returned for a failed action.
// SocketClient wraps it in an *Error carrying the server's category.
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error on %q: %s", e.Action, e.Message)
}

// SocketClient talks to a SocketServer. Each call opens a connection,
// writes one request, reads one response and closes.
type SocketClient struct {
	socketPath string
}

var _ Service = (*SocketClient)(nil)

// NewSocketClient returns a client for the server at socketPath. No
// connection is made until the first call.
func NewSocketClient(socketPath string) *SocketClient {
	return &SocketClient{socketPath: socketPath}
}

// Call sends action with params (nil for none) and decodes the
// response data into result (nil to discard). Connection failures are
// CategoryUnavailable; server failures keep the server's category and
// wrap a *ServiceError.
func (c *SocketClient) Call(ctx context.Context, action string, params, result any) error {
	request := Request{Action: action}
	if params != nil {
		encoded, err := codec.Marshal(params)
		if err != nil {
			return Internal("encoding %s params: %w", action, err)
		}
		request.Params = encoded
	}

	response, err := c.send(ctx, request)
	if err != nil {
		return Unavailable("calling %q on %s: %w", action, c.socketPath, err)
	}
	if !response.OK {
		category := response.Category
		if category == "" {
			category = CategoryInternal
		}
		return &Error{Category: category, Err: &ServiceError{Action: action, Message: response.Error}}
	}

	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return Internal("decoding response data for %q: %w", action, err)
		}
	}
	return nil
}

func (c *SocketClient) send(ctx context.Context, request Request) (*Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	// Unblock reads if the caller gives up.
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) })
	defer stop()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	conn.SetReadDeadline(time.Now().Add(responseReadTimeout))
	var response Response
	if err := codec.NewDecoder(io.LimitReader(conn, maxMessageSize)).Decode(&response); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &response, nil
}

func (c *SocketClient) create(ctx context.Context, action string, request any) (string, error) {
	var response site.CreatedResponse
	if err := c.Call(ctx, action, request, &response); err != nil {
		return "", err
	}
	if response.ID == "" {
		return "", Internal("%s returned no id", action)
	}
	return response.ID, nil
}

func (c *SocketClient) LoadSite(ctx context.Context) (*site.Site, error) {
	var graph site.Site
	if err := c.Call(ctx, site.ActionLoadSite, nil, &graph); err != nil {
		return nil, err
	}
	graph.Normalize()
	return &graph, nil
}

func (c *SocketClient) Version(ctx context.Context) (site.VersionInfo, error) {
	var info site.VersionInfo
	err := c.Call(ctx, site.ActionVersion, nil, &info)
	return info, err
}

func (c *SocketClient) CreateArticle(ctx context.Context, request site.CreateArticle) (site.ArticleID, error) {
	id, err := c.create(ctx, site.ActionCreateArticle, request)
	return site.ArticleID(id), err
}

func (c *SocketClient) UpdateArticle(ctx context.Context, mutator site.ArticleMutator) error {
	return c.Call(ctx, site.ActionUpdateArticle, mutator, nil)
}

func (c *SocketClient) DeleteArticle(ctx context.Context, articleID site.ArticleID) error {
	return c.Call(ctx, site.ActionDeleteArticle, site.DeleteRequest{ID: string(articleID)}, nil)
}

func (c *SocketClient) CreatePage(ctx context.Context, request site.CreatePage) (site.PageID, error) {
	id, err := c.create(ctx, site.ActionCreatePage, request)
	return site.PageID(id), err
}

func (c *SocketClient) UpdatePage(ctx context.Context, mutator site.PageMutator) error {
	return c.Call(ctx, site.ActionUpdatePage, mutator, nil)
}

func (c *SocketClient) DeletePage(ctx context.Context, pageID site.PageID) error {
	return c.Call(ctx, site.ActionDeletePage, site.DeleteRequest{ID: string(pageID)}, nil)
}

func (c *SocketClient) CreateLink(ctx context.Context, request site.CreateLink) (site.LinkID, error) {
	id, err := c.create(ctx, site.ActionCreateLink, request)
	return site.LinkID(id), err
}

func (c *SocketClient) UpdateLink(ctx context.Context, mutator site.LinkMutator) error {
	return c.Call(ctx, site.ActionUpdateLink, mutator, nil)
}

func (c *SocketClient) DeleteLink(ctx context.Context, linkID site.LinkID) error {
	return c.Call(ctx, site.ActionDeleteLink, site.DeleteRequest{ID: string(linkID)}, nil)
}

func (c *SocketClient) CreateWorkflow(ctx context.Context, request site.CreateWorkflow) (site.WorkflowID, error) {
	id, err := c.create(ctx, site.ActionCreateWorkflow, request)
	return site.WorkflowID(id), err
}

func (c *SocketClient) UpdateWorkflow(ctx context.Context, mutator site.WorkflowMutator) error {
	return c.Call(ctx, site.ActionUpdateWorkflow, mutator, nil)
}

func (c *SocketClient) DeleteWorkflow(ctx context.Context, workflowID site.WorkflowID) error {
	return c.Call(ctx, site.ActionDeleteWorkflow, site.DeleteRequest{ID: string(workflowID)}, nil)
}

func (c *SocketClient) CreateLocale(ctx context.Context, request site.CreateLocale) (site.LocaleID, error) {
	id, err := c.create(ctx, site.ActionCreateLocale, request)
	return site.LocaleID(id), err
}

func (c *SocketClient) UpdateLocale(ctx context.Context, mutator site.LocaleMutator) error {
	return c.Call(ctx, site.ActionUpdateLocale, mutator, nil)
}

func (c *SocketClient) DeleteLocale(ctx context.Context, localeID site.LocaleID) error {
	return c.Call(ctx, site.ActionDeleteLocale, site.DeleteRequest{ID: string(localeID)}, nil)
}

func (c *SocketClient) CreateRelease(ctx context.Context, request site.CreateRelease) (site.ReleaseID, error) {
	id, err := c.create(ctx, site.ActionCreateRelease, request)
	return site.ReleaseID(id), err
}

func (c *SocketClient) DeleteRelease(ctx context.Context, releaseID site.ReleaseID) error {
	return c.Call(ctx, site.ActionDeleteRelease, site.DeleteRequest{ID: string(releaseID)}, nil)
}

func (c *SocketClient) CreateTemplate(ctx context.Context, request site.CreateTemplate) (site.TemplateID, error) {
	id, err := c.create(ctx, site.ActionCreateTemplate, request)
	return site.TemplateID(id), err
}

func (c *SocketClient) DeleteTemplate(ctx context.Context, templateID site.TemplateID) error {
	return c.Call(ctx, site.ActionDeleteTemplate, site.DeleteRequest{ID: string(templateID)}, nil)
}
