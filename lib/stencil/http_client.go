// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stencilcms/composer/lib/schema/site"
)

// HTTPClient talks to the Stencil REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Service = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL. A zero
// timeout selects 30 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stencil: HTTP %d: %s", e.StatusCode, e.Message)
}

// do sends a JSON request and decodes a JSON response into result
// (nil to discard). Transport failures are CategoryUnavailable; error
// responses are *Error wrapping *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, requestBody, result any) error {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return Internal("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return Internal("creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Unavailable("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxMessageSize))
	if err != nil {
		return Unavailable("reading %s %s response: %w", method, path, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return parseErrorResponse(response.StatusCode, body)
	}
	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return Internal("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// parseErrorResponse prefers the category the server reported and
// falls back to one derived from the status code.
func parseErrorResponse(status int, body []byte) error {
	apiError := &APIError{StatusCode: status, Message: http.StatusText(status)}
	category := categoryFromStatus(status)

	var decoded errorBody
	if json.Unmarshal(body, &decoded) == nil {
		if decoded.Error != "" {
			apiError.Message = decoded.Error
		}
		if decoded.Category != "" {
			category = decoded.Category
		}
	} else if text := strings.TrimSpace(string(body)); text != "" {
		apiError.Message = text
	}
	return &Error{Category: category, Err: apiError}
}

func (c *HTTPClient) create(ctx context.Context, path string, request any) (string, error) {
	var response site.CreatedResponse
	if err := c.do(ctx, http.MethodPost, path, request, &response); err != nil {
		return "", err
	}
	if response.ID == "" {
		return "", Internal("POST %s returned no id", path)
	}
	return response.ID, nil
}

func entityPath[ID ~string](collection string, id ID) string {
	return collection + "/" + url.PathEscape(string(id))
}

func (c *HTTPClient) LoadSite(ctx context.Context) (*site.Site, error) {
	var graph site.Site
	if err := c.do(ctx, http.MethodGet, pathSite, nil, &graph); err != nil {
		return nil, err
	}
	graph.Normalize()
	return &graph, nil
}

func (c *HTTPClient) Version(ctx context.Context) (site.VersionInfo, error) {
	var info site.VersionInfo
	err := c.do(ctx, http.MethodGet, pathVersion, nil, &info)
	return info, err
}

func (c *HTTPClient) CreateArticle(ctx context.Context, request site.CreateArticle) (site.ArticleID, error) {
	id, err := c.create(ctx, pathArticles, request)
	return site.ArticleID(id), err
}

func (c *HTTPClient) UpdateArticle(ctx context.Context, mutator site.ArticleMutator) error {
	return c.do(ctx, http.MethodPut, entityPath(pathArticles, mutator.ArticleID), mutator.Body, nil)
}

func (c *HTTPClient) DeleteArticle(ctx context.Context, articleID site.ArticleID) error {
	return c.do(ctx, http.MethodDelete, entityPath(pathArticles, articleID), nil, nil)
}

func (c *HTTPClient) CreatePage(ctx context.Context, request site.CreatePage) (site.PageID, error) {
	id, err := c.create(ctx, pathPages, request)
	return site.PageID(id), err
}

func (c *HTTPClient) UpdatePage(ctx context.Context, mutator site.PageMutator) error {
	return c.do(ctx, http.MethodPut, entityPath(pathPages, mutator.PageID), mutator, nil)
}

func (c *HTTPClient) DeletePage(ctx context.Context, pageID site.PageID) error {
	return c.do(ctx, http.MethodDelete, entityPath(pathPages, pageID), nil, nil)
}

func (c *HTTPClient) CreateLink(ctx context.Context, request site.CreateLink) (site.LinkID, error) {
	id, err := c.create(ctx, pathLinks, request)
	return site.LinkID(id), err
}

func (c *HTTPClient) UpdateLink(ctx context.Context, mutator site.LinkMutator) error {
	return c.do(ctx, http.MethodPut, entityPath(pathLinks, mutator.LinkID), mutator.Body, nil)
}

func (c *HTTPClient) DeleteLink(ctx context.Context, linkID site.LinkID) error {
	return c.do(ctx, http.MethodDelete, entityPath(pathLinks, linkID), nil, nil)
}

func (c *HTTPClient) CreateWorkflow(ctx context.Context, request site.CreateWorkflow) (site.WorkflowID, error) {
	id, err := c.create(ctx, pathWorkflows, request)
	return site.WorkflowID(id), err
}

func (c *HTTPClient) UpdateWorkflow(ctx context.Context, mutator site.WorkflowMutator) error {
	return c.do(ctx, http.MethodPut, entityPath(pathWorkflows, mutator.WorkflowID), mutator.Body, nil)
}

func (c *HTTPClient) DeleteWorkflow(ctx context.Context, workflowID site.WorkflowID) error {
	return c.do(ctx, http.MethodDelete, entityPath(pathWorkflows, workflowID), nil, nil)
}

func (c *HTTPClient) CreateLocale(ctx context.Context, request site.CreateLocale) (site.LocaleID, error) {
	id, err := c.create(ctx, pathLocales, request)
	return site.LocaleID(id), err
}

func (c *HTTPClient) UpdateLocale(ctx context.Context, mutator site.LocaleMutator) error {
	return c.do(ctx, http.MethodPut, entityPath(pathLocales, mutator.LocaleID), mutator.Body, nil)
}

func (c *HTTPClient) DeleteLocale(ctx context.Context, localeID site.LocaleID) error {
	return c.do(ctx, http.MethodDelete, entityPath(pathLocales, localeID), nil, nil)
}

func (c *HTTPClient) CreateRelease(ctx context.Context, request site.CreateRelease) (site.ReleaseID, error) {
	id, err := c.create(ctx, pathReleases, request)
	return site.ReleaseID(id), err
}

func (c *HTTPClient) DeleteRelease(ctx context.Context, releaseID site.ReleaseID) error {
	return c.do(ctx, http.MethodDelete, entityPath(pathReleases, releaseID), nil, nil)
}

func (c *HTTPClient) CreateTemplate(ctx context.Context, request site.CreateTemplate) (site.TemplateID, error) {
	id, err := c.create(ctx, pathTemplates, request)
	return site.TemplateID(id), err
}

func (c *HTTPClient) DeleteTemplate(ctx context.Context, templateID site.TemplateID) error {
	return c.do(ctx, http.MethodDelete, entityPath(pathTemplates, templateID), nil, nil)
}
