// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/stencilcms/composer/lib/codec"
	"github.com/stencilcms/composer/lib/schema/site"
)

// ActionFunc handles one socket request. params is the raw CBOR of the
// request's params field, empty when the request had none. A non-nil
// result is encoded into the response's data field.
type ActionFunc func(ctx context.Context, params []byte) (any, error)

// Request is the wire envelope of a socket request.
type Request struct {
	Action string           `cbor:"action"`
	Params codec.RawMessage `cbor:"params,omitempty"`
}

// Response is the wire envelope of a socket response. Category carries
// the ErrorCategory of a failure so the client can rebuild an *Error.
type Response struct {
	OK       bool             `cbor:"ok"`
	Error    string           `cbor:"error,omitempty"`
	Category ErrorCategory    `cbor:"category,omitempty"`
	Data     codec.RawMessage `cbor:"data,omitempty"`
}

// SocketServer serves the Stencil CBOR protocol on a Unix socket, one
// request and one response per connection. Register actions with
// Handle (or RegisterService) before Serve.
type SocketServer struct {
	socketPath string
	handlers   map[string]ActionFunc
	logger     *slog.Logger
	ready      chan struct{}

	activeConnections sync.WaitGroup
}

// NewSocketServer creates a server that will listen on socketPath.
func NewSocketServer(socketPath string, logger *slog.Logger) *SocketServer {
	return &SocketServer{
		socketPath: socketPath,
		handlers:   make(map[string]ActionFunc),
		logger:     logger,
		ready:      make(chan struct{}),
	}
}

// Handle registers handler for action. Panics on a duplicate.
func (s *SocketServer) Handle(action string, handler ActionFunc) {
	if _, exists := s.handlers[action]; exists {
		panic(fmt.Sprintf("stencil.SocketServer: duplicate handler for action %q", action))
	}
	s.handlers[action] = handler
}

// Ready is closed once the socket is listening.
func (s *SocketServer) Ready() <-chan struct{} { return s.ready }

// Serve accepts connections until ctx is cancelled, then waits for
// in-flight requests. A stale socket file is removed first, and the
// socket file is removed on return.
func (s *SocketServer) Serve(ctx context.Context) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("socket server listening", "path", s.socketPath, "actions", len(s.handlers))
	close(s.ready)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	s.activeConnections.Wait()
	return nil
}

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 10 * time.Second

	// maxMessageSize bounds requests and responses. A full site load
	// is the largest message.
	maxMessageSize = 64 * 1024 * 1024
)

func (s *SocketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))

	var request Request
	if err := codec.NewDecoder(io.LimitReader(conn, maxMessageSize)).Decode(&request); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.writeError(conn, Validation("invalid request: %w", err))
		return
	}
	if request.Action == "" {
		s.writeError(conn, Validation("missing required field: action"))
		return
	}

	handler, exists := s.handlers[request.Action]
	if !exists {
		s.writeError(conn, NotFound("unknown action %q", request.Action))
		return
	}

	result, err := handler(ctx, request.Params)
	if err != nil {
		s.logger.Debug("action failed", "action", request.Action, "category", CategoryOf(err), "error", err)
		s.writeError(conn, err)
		return
	}
	s.writeSuccess(conn, result)
}

func (s *SocketServer) writeError(conn net.Conn, err error) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if encodeErr := codec.NewEncoder(conn).Encode(Response{
		OK:       false,
		Error:    err.Error(),
		Category: CategoryOf(err),
	}); encodeErr != nil {
		s.logger.Debug("failed to write error response", "error", encodeErr)
	}
}

func (s *SocketServer) writeSuccess(conn net.Conn, result any) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	response := Response{OK: true}
	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			s.writeError(conn, Internal("marshaling response: %w", err))
			return
		}
		response.Data = data
	}
	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		s.logger.Debug("failed to write success response", "error", err)
	}
}

// handle registers a typed handler: params decode into P and the
// result is returned as the response data.
func handle[P any](server *SocketServer, action string, fn func(ctx context.Context, params P) (any, error)) {
	server.Handle(action, func(ctx context.Context, raw []byte) (any, error) {
		var params P
		if len(raw) > 0 {
			if err := codec.Unmarshal(raw, &params); err != nil {
				return nil, Validation("decoding %s params: %w", action, err)
			}
		}
		return fn(ctx, params)
	})
}

// created wraps a create result so the id travels as CreatedResponse.
func created[ID ~string](id ID, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return site.CreatedResponse{ID: string(id)}, nil
}

// RegisterService exposes every Service operation on server.
func RegisterService(server *SocketServer, service Service) {
	handle(server, site.ActionLoadSite, func(ctx context.Context, _ struct{}) (any, error) {
		return service.LoadSite(ctx)
	})
	handle(server, site.ActionVersion, func(ctx context.Context, _ struct{}) (any, error) {
		return service.Version(ctx)
	})

	handle(server, site.ActionCreateArticle, func(ctx context.Context, request site.CreateArticle) (any, error) {
		return created[site.ArticleID](service.CreateArticle(ctx, request))
	})
	handle(server, site.ActionUpdateArticle, func(ctx context.Context, mutator site.ArticleMutator) (any, error) {
		return nil, service.UpdateArticle(ctx, mutator)
	})
	handle(server, site.ActionDeleteArticle, func(ctx context.Context, request site.DeleteRequest) (any, error) {
		return nil, service.DeleteArticle(ctx, site.ArticleID(request.ID))
	})

	handle(server, site.ActionCreatePage, func(ctx context.Context, request site.CreatePage) (any, error) {
		return created[site.PageID](service.CreatePage(ctx, request))
	})
	handle(server, site.ActionUpdatePage, func(ctx context.Context, mutator site.PageMutator) (any, error) {
		return nil, service.UpdatePage(ctx, mutator)
	})
	handle(server, site.ActionDeletePage, func(ctx context.Context, request site.DeleteRequest) (any, error) {
		return nil, service.DeletePage(ctx, site.PageID(request.ID))
	})

	handle(server, site.ActionCreateLink, func(ctx context.Context, request site.CreateLink) (any, error) {
		return created[site.LinkID](service.CreateLink(ctx, request))
	})
	handle(server, site.ActionUpdateLink, func(ctx context.Context, mutator site.LinkMutator) (any, error) {
		return nil, service.UpdateLink(ctx, mutator)
	})
	handle(server, site.ActionDeleteLink, func(ctx context.Context, request site.DeleteRequest) (any, error) {
		return nil, service.DeleteLink(ctx, site.LinkID(request.ID))
	})

	handle(server, site.ActionCreateWorkflow, func(ctx context.Context, request site.CreateWorkflow) (any, error) {
		return created[site.WorkflowID](service.CreateWorkflow(ctx, request))
	})
	handle(server, site.ActionUpdateWorkflow, func(ctx context.Context, mutator site.WorkflowMutator) (any, error) {
		return nil, service.UpdateWorkflow(ctx, mutator)
	})
	handle(server, site.ActionDeleteWorkflow, func(ctx context.Context, request site.DeleteRequest) (any, error) {
		return nil, service.DeleteWorkflow(ctx, site.WorkflowID(request.ID))
	})

	handle(server, site.ActionCreateLocale, func(ctx context.Context, request site.CreateLocale) (any, error) {
		return created[site.LocaleID](service.CreateLocale(ctx, request))
	})
	handle(server, site.ActionUpdateLocale, func(ctx context.Context, mutator site.LocaleMutator) (any, error) {
		return nil, service.UpdateLocale(ctx, mutator)
	})
	handle(server, site.ActionDeleteLocale, func(ctx context.Context, request site.DeleteRequest) (any, error) {
		return nil, service.DeleteLocale(ctx, site.LocaleID(request.ID))
	})

	handle(server, site.ActionCreateRelease, func(ctx context.Context, request site.CreateRelease) (any, error) {
		return created[site.ReleaseID](service.CreateRelease(ctx, request))
	})
	handle(server, site.ActionDeleteRelease, func(ctx context.Context, request site.DeleteRequest) (any, error) {
		return nil, service.DeleteRelease(ctx, site.ReleaseID(request.ID))
	})

	handle(server, site.ActionCreateTemplate, func(ctx context.Context, request site.CreateTemplate) (any, error) {
		return created[site.TemplateID](service.CreateTemplate(ctx, request))
	})
	handle(server, site.ActionDeleteTemplate, func(ctx context.Context, request site.DeleteRequest) (any, error) {
		return nil, service.DeleteTemplate(ctx, site.TemplateID(request.ID))
	})
}
