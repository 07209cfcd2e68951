/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides centralized slog-based logging for the application.
// It wraps the standard slog with a small configuration surface: a compact
// one-line console handler for interactive use and an optional rotating JSON
// file handler for long editing sessions.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"goslidewriter/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
// Values can be provided directly or via environment variables:
//   - GSW_LOG_LEVEL=debug|info|warn|error
//   - GSW_LOG_FORMAT=console|json
//   - GSW_LOG_FILE=<path> (enables file logging with rotation)
//   - GSW_LOG_SOURCE=true|false (include source)
//
// Defaults: INFO level, console format, no source, no file.
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string // optional path for file logging (rotated)
}

var (
	globalMu sync.RWMutex
	global   *slog.Logger
)

// L returns the application logger, initializing from env on first use.
func L() *slog.Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	globalMu.RLock()
	l = global
	globalMu.RUnlock()
	return l
}

// Init configures the global logger and sets slog.Default as well.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)

	var handlers []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handlers = append(handlers, slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}))
	} else {
		handlers = append(handlers, &consoleHandler{lvl: lvl, addSource: opts.AddSource, w: os.Stderr})
	}

	if path := strings.TrimSpace(opts.File); path != "" {
		w := &lj.Logger{Filename: path, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}))
	}

	var h slog.Handler = handlers[0]
	if len(handlers) > 1 {
		h = &teeHandler{hs: handlers}
	}

	logger := slog.New(h).With(
		slog.String("app", "goslidewriter"),
		slog.String("ver", version.Version),
	)

	globalMu.Lock()
	global = logger
	globalMu.Unlock()
	slog.SetDefault(logger)
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("GSW_LOG_LEVEL", "info"),
		Format:    getenv("GSW_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("GSW_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("GSW_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// teeHandler fans out log records to multiple handlers.
type teeHandler struct{ hs []slog.Handler }

func (m *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m.hs {
		if err := h.Handle(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	res := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		res[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{hs: res}
}

func (m *teeHandler) WithGroup(name string) slog.Handler {
	res := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		res[i] = h.WithGroup(name)
	}
	return &teeHandler{hs: res}
}

// consoleHandler prints human-friendly one-line logs:
// ts level msg key=val... with accumulated attrs and dotted group prefixes.
type consoleHandler struct {
	lvl       slog.Level
	addSource bool
	w         io.Writer
	attrs     []slog.Attr
	groups    []string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	b := &strings.Builder{}
	b.Grow(256)
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteString(" ")
	b.WriteString(levelTag(r.Level))
	b.WriteString(" ")
	b.WriteString(r.Message)

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	write := func(a slog.Attr) {
		b.WriteString(" ")
		b.WriteString(prefix)
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(valueString(a.Value))
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	b.WriteString("\n")
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	na := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	na = append(na, h.attrs...)
	na = append(na, attrs...)
	return &consoleHandler{lvl: h.lvl, addSource: h.addSource, w: h.w, attrs: na, groups: append([]string(nil), h.groups...)}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	ng := append(append([]string(nil), h.groups...), name)
	return &consoleHandler{lvl: h.lvl, addSource: h.addSource, w: h.w, attrs: append([]slog.Attr(nil), h.attrs...), groups: ng}
}

func levelTag(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return l.String()
	}
}

func valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	default:
		return v.String()
	}
}
