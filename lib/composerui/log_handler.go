// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status bar record.
type logRecordFadeMsg struct{}

// logRecordFadeDelay is how long a record stays in the status bar.
const logRecordFadeDelay = 5 * time.Second

// programSender is the part of tea.Program the handler uses.
type programSender interface {
	Send(message tea.Msg)
}

// TUILogHandler is a slog.Handler that routes records into a
// bubbletea program, where they appear in the status bar. Records
// below the configured level are dropped, as are records arriving
// before SetProgram.
//
// Handlers derived with WithAttrs and WithGroup share the program
// pointer of their parent.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[programSender]
	attrs   []slog.Attr
	groups  []string
}

// NewTUILogHandler returns a handler delivering records at or above
// level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[programSender]{},
	}
}

// SetProgram sets the program that receives records. Safe to call from
// any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.setSender(program)
}

func (handler *TUILogHandler) setSender(sender programSender) {
	handler.program.Store(&sender)
}

// Enabled reports whether records at level are delivered.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record as "message (key=value, ...)" and sends it
// to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	sender := handler.program.Load()
	if sender == nil {
		return nil
	}

	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	(*sender).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a handler with attrs appended.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	derived := handler.derive()
	for _, attr := range attrs {
		attr.Key = prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return derived
}

// WithGroup returns a handler that qualifies later attributes with
// name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	derived := handler.derive()
	if name != "" {
		derived.groups = append(derived.groups, name)
	}
	return derived
}

func (handler *TUILogHandler) derive() *TUILogHandler {
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   slices.Clone(handler.attrs),
		groups:  slices.Clone(handler.groups),
	}
}
