// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/stencilcms/composer/lib/codec"
	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/testutil"
)

// startSocketServer serves a fixture Memory and returns a client for
// it along with the backing service.
func startSocketServer(t *testing.T) (*SocketClient, *Memory) {
	t.Helper()
	socketPath := filepath.Join(testutil.SocketDir(t), "stencil.sock")
	memory := newTestMemory(t)

	server := NewSocketServer(socketPath, discardLogger())
	RegisterService(server, memory)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := testutil.RequireReceive(t, done, 5*time.Second, "server shutdown"); err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server ready")

	return NewSocketClient(socketPath), memory
}

func TestSocketLoadSite(t *testing.T) {
	client, memory := startSocketServer(t)

	remote := mustLoad(t, client)
	local := mustLoad(t, memory)
	if diff := cmp.Diff(local, remote); diff != "" {
		t.Errorf("site over socket differs (-local +remote):\n%s", diff)
	}
}

func TestSocketMutations(t *testing.T) {
	client, memory := startSocketServer(t)
	ctx := context.Background()

	articleID, err := client.CreateArticle(ctx, site.CreateArticle{ParentID: "home", Name: "Team"})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	pageID, err := client.CreatePage(ctx, site.CreatePage{ArticleID: articleID, Locale: "en", Content: "# Team"})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if err := client.UpdatePage(ctx, site.PageMutator{PageID: pageID, Locale: "en", Content: "# The team"}); err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if content := mustLoad(t, memory).Pages[pageID].Body.Content; content != "# The team" {
		t.Errorf("page content = %q", content)
	}

	if err := client.DeleteArticle(ctx, articleID); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}
	if _, exists := mustLoad(t, memory).Pages[pageID]; exists {
		t.Error("page of deleted article still exists")
	}

	info, err := client.Version(ctx)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if info.Version == "" {
		t.Error("empty version")
	}
}

func TestSocketPreservesErrorCategory(t *testing.T) {
	client, _ := startSocketServer(t)
	ctx := context.Background()

	_, err := client.CreatePage(ctx, site.CreatePage{ArticleID: "home", Locale: "en"})
	requireCategory(t, err, CategoryConflict)

	var serviceError *ServiceError
	if !errors.As(err, &serviceError) {
		t.Fatalf("error %v does not wrap *ServiceError", err)
	}
	if serviceError.Action != site.ActionCreatePage {
		t.Errorf("action = %q", serviceError.Action)
	}

	requireCategory(t, client.DeleteTemplate(ctx, "missing"), CategoryNotFound)
	requireCategory(t, client.Call(ctx, "bogus/action", nil, nil), CategoryNotFound)
}

func TestSocketRejectsMissingAction(t *testing.T) {
	socketPath := filepath.Join(testutil.SocketDir(t), "raw.sock")
	server := NewSocketServer(socketPath, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.Serve(ctx)
	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server ready")

	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if err := codec.NewEncoder(conn).Encode(map[string]any{"params": []byte{}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var response Response
	if err := codec.NewDecoder(conn).Decode(&response); err != nil {
		t.Fatalf("read: %v", err)
	}
	if response.OK || response.Category != CategoryValidation {
		t.Errorf("response = %+v, want validation failure", response)
	}
}

func TestSocketClientUnavailable(t *testing.T) {
	client := NewSocketClient(filepath.Join(testutil.SocketDir(t), "nobody.sock"))
	_, err := client.LoadSite(context.Background())
	requireCategory(t, err, CategoryUnavailable)
}

func TestSocketServerDuplicateHandlerPanics(t *testing.T) {
	server := NewSocketServer("/unused", discardLogger())
	server.Handle("x", func(context.Context, []byte) (any, error) { return nil, nil })
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Handle did not panic")
		}
	}()
	server.Handle("x", func(context.Context, []byte) (any, error) { return nil, nil })
}
