// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/stencilcms/composer/lib/schema/site"
)

// REST paths. Entity routes take the id as the last path segment.
const (
	pathSite      = "/api/site"
	pathVersion   = "/api/version"
	pathArticles  = "/api/articles"
	pathPages     = "/api/pages"
	pathLinks     = "/api/links"
	pathWorkflows = "/api/workflows"
	pathLocales   = "/api/locales"
	pathReleases  = "/api/releases"
	pathTemplates = "/api/templates"
)

// maxRequestBody bounds HTTP request bodies. Page content is the
// largest field a request carries.
const maxRequestBody = 8 * 1024 * 1024

// errorBody is the JSON body of a non-2xx response.
type errorBody struct {
	Error    string        `json:"error"`
	Category ErrorCategory `json:"category"`
}

// NewHTTPHandler exposes service as the REST API HTTPClient speaks.
func NewHTTPHandler(service Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	api := &restHandler{service: service, logger: logger}

	mux.HandleFunc("GET "+pathSite, api.wrap(func(request *http.Request) (any, error) {
		return service.LoadSite(request.Context())
	}))
	mux.HandleFunc("GET "+pathVersion, api.wrap(func(request *http.Request) (any, error) {
		return service.Version(request.Context())
	}))

	mux.HandleFunc("POST "+pathArticles, api.wrap(func(request *http.Request) (any, error) {
		var body site.CreateArticle
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return created[site.ArticleID](service.CreateArticle(request.Context(), body))
	}))
	mux.HandleFunc("PUT "+pathArticles+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		var body site.ArticleBody
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return nil, service.UpdateArticle(request.Context(), site.ArticleMutator{
			ArticleID: site.ArticleID(request.PathValue("id")),
			Body:      body,
		})
	}))
	mux.HandleFunc("DELETE "+pathArticles+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		return nil, service.DeleteArticle(request.Context(), site.ArticleID(request.PathValue("id")))
	}))

	mux.HandleFunc("POST "+pathPages, api.wrap(func(request *http.Request) (any, error) {
		var body site.CreatePage
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return created[site.PageID](service.CreatePage(request.Context(), body))
	}))
	mux.HandleFunc("PUT "+pathPages+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		var body site.PageMutator
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		body.PageID = site.PageID(request.PathValue("id"))
		return nil, service.UpdatePage(request.Context(), body)
	}))
	mux.HandleFunc("DELETE "+pathPages+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		return nil, service.DeletePage(request.Context(), site.PageID(request.PathValue("id")))
	}))

	mux.HandleFunc("POST "+pathLinks, api.wrap(func(request *http.Request) (any, error) {
		var body site.CreateLink
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return created[site.LinkID](service.CreateLink(request.Context(), body))
	}))
	mux.HandleFunc("PUT "+pathLinks+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		var body site.LinkBody
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return nil, service.UpdateLink(request.Context(), site.LinkMutator{
			LinkID: site.LinkID(request.PathValue("id")),
			Body:   body,
		})
	}))
	mux.HandleFunc("DELETE "+pathLinks+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		return nil, service.DeleteLink(request.Context(), site.LinkID(request.PathValue("id")))
	}))

	mux.HandleFunc("POST "+pathWorkflows, api.wrap(func(request *http.Request) (any, error) {
		var body site.CreateWorkflow
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return created[site.WorkflowID](service.CreateWorkflow(request.Context(), body))
	}))
	mux.HandleFunc("PUT "+pathWorkflows+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		var body site.WorkflowBody
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return nil, service.UpdateWorkflow(request.Context(), site.WorkflowMutator{
			WorkflowID: site.WorkflowID(request.PathValue("id")),
			Body:       body,
		})
	}))
	mux.HandleFunc("DELETE "+pathWorkflows+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		return nil, service.DeleteWorkflow(request.Context(), site.WorkflowID(request.PathValue("id")))
	}))

	mux.HandleFunc("POST "+pathLocales, api.wrap(func(request *http.Request) (any, error) {
		var body site.CreateLocale
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return created[site.LocaleID](service.CreateLocale(request.Context(), body))
	}))
	mux.HandleFunc("PUT "+pathLocales+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		var body site.LocaleBody
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return nil, service.UpdateLocale(request.Context(), site.LocaleMutator{
			LocaleID: site.LocaleID(request.PathValue("id")),
			Body:     body,
		})
	}))
	mux.HandleFunc("DELETE "+pathLocales+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		return nil, service.DeleteLocale(request.Context(), site.LocaleID(request.PathValue("id")))
	}))

	mux.HandleFunc("POST "+pathReleases, api.wrap(func(request *http.Request) (any, error) {
		var body site.CreateRelease
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return created[site.ReleaseID](service.CreateRelease(request.Context(), body))
	}))
	mux.HandleFunc("DELETE "+pathReleases+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		return nil, service.DeleteRelease(request.Context(), site.ReleaseID(request.PathValue("id")))
	}))

	mux.HandleFunc("POST "+pathTemplates, api.wrap(func(request *http.Request) (any, error) {
		var body site.CreateTemplate
		if err := decodeBody(request, &body); err != nil {
			return nil, err
		}
		return created[site.TemplateID](service.CreateTemplate(request.Context(), body))
	}))
	mux.HandleFunc("DELETE "+pathTemplates+"/{id}", api.wrap(func(request *http.Request) (any, error) {
		return nil, service.DeleteTemplate(request.Context(), site.TemplateID(request.PathValue("id")))
	}))

	return mux
}

type restHandler struct {
	service Service
	logger  *slog.Logger
}

// wrap turns a (result, error) function into a handler. Creates answer
// 201, other successes 200 with the result or 204 without one.
func (h *restHandler) wrap(fn func(request *http.Request) (any, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		result, err := fn(request)
		if err != nil {
			h.logger.Debug("request failed", "method", request.Method, "path", request.URL.Path, "error", err)
			writeJSON(writer, statusFromCategory(CategoryOf(err)), errorBody{Error: err.Error(), Category: CategoryOf(err)})
			return
		}
		switch {
		case result == nil:
			writer.WriteHeader(http.StatusNoContent)
		case request.Method == http.MethodPost:
			writeJSON(writer, http.StatusCreated, result)
		default:
			writeJSON(writer, http.StatusOK, result)
		}
	}
}

func decodeBody(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxRequestBody))
	if err := decoder.Decode(target); err != nil {
		return Validation("decoding request body: %w", err)
	}
	return nil
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

// HTTPServer serves an http.Handler on a TCP address until its context
// is cancelled, then shuts down gracefully.
type HTTPServer struct {
	address         string
	handler         http.Handler
	logger          *slog.Logger
	shutdownTimeout time.Duration

	ready chan struct{}
	addr  net.Addr
}

// NewHTTPServer creates a server for handler on address. Port 0 picks
// a free port; read it from Addr after Ready.
func NewHTTPServer(address string, handler http.Handler, logger *slog.Logger) *HTTPServer {
	return &HTTPServer{
		address:         address,
		handler:         handler,
		logger:          logger,
		shutdownTimeout: 10 * time.Second,
		ready:           make(chan struct{}),
	}
}

// Ready is closed once the listener is bound.
func (s *HTTPServer) Ready() <-chan struct{} { return s.ready }

// Addr is the bound address. Valid after Ready.
func (s *HTTPServer) Addr() net.Addr { return s.addr }

// Serve blocks until ctx is cancelled or the server fails.
func (s *HTTPServer) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.address, err)
	}
	s.addr = listener.Addr()
	close(s.ready)

	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("http server listening", "address", s.addr.String())

	serveDone := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveDone:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
