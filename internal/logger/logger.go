// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the server and the client. Request and
// job scoped loggers travel in a context.Context (zerolog's log.Ctx) and are
// read back with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	zerolog.Logger
}

// client log rotation
const (
	clientLogMaxSizeMB  = 10
	clientLogMaxBackups = 3
	clientLogMaxAgeDays = 28
)

// NewLogger writes JSON entries to stdout. Every entry carries role, time
// and func (the caller's function name).
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stdout)
}

// NewClientLogger logs into a rotated file because the CLI owns stdout.
// logPath defaults to logs/client.log next to the executable.
func NewClientLogger(role, logPath string) *Logger {
	if logPath == "" {
		execPath, _ := os.Executable()
		logPath = filepath.Join(filepath.Dir(execPath), "logs", "client.log")
	}

	return newLogger(role, &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    clientLogMaxSizeMB,
		MaxBackups: clientLogMaxBackups,
		MaxAge:     clientLogMaxAgeDays,
	})
}

func newLogger(role string, w io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().Str("role", role).Timestamp().Caller().Logger()}
}

func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithStr returns a child logger with one more string field. The receiver
// is not changed.
func (l *Logger) WithStr(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}

// WithInt64 is WithStr for integer fields such as user_id.
func (l *Logger) WithInt64(key string, value int64) *Logger {
	return &Logger{l.With().Int64(key, value).Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext never returns nil: without an attached logger zerolog hands
// out its default (disabled) one.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
