// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging holds the process-wide zap logger.
package logging

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Env names a logger flavour.
type Env string

const (
	Local       Env = "local"
	Development Env = "development"
	Production  Env = "production"
)

type loggerKey struct{}

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// New builds the logger for env and installs it as the process
// logger. Local and Development log at debug level to the console;
// Production logs JSON at info level. Unknown envs are treated as
// Local.
func New(env Env) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case Production:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	Set(l)
	return l, nil
}

// Set replaces the process logger.
func Set(l *zap.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// WithContext returns the logger carried by ctx, or the process
// logger if ctx has none.
func WithContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return NoContext()
}

// NoContext returns the process logger.
func NoContext() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
