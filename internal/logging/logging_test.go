// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	prev := NoContext()
	defer Set(prev)

	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	WithContext(context.Background()).Info("global", zap.Int("n", 1))
	require.Equal(t, 1, logs.FilterMessage("global").Len())

	core2, logs2 := observer.New(zapcore.InfoLevel)
	ctx := NewContext(context.Background(), zap.New(core2))
	WithContext(ctx).Info("scoped")
	require.Equal(t, 1, logs2.Len())
	require.Equal(t, 0, logs.FilterMessage("scoped").Len())
}

func TestNew(t *testing.T) {
	prev := NoContext()
	defer Set(prev)

	for _, test := range []struct {
		env   Env
		debug bool
	}{
		{Local, true},
		{Development, true},
		{Production, false},
		{"bogus", true},
	} {
		l, err := New(test.env)
		require.NoError(t, err)
		require.Same(t, l, NoContext())
		require.Equal(t, test.debug, l.Core().Enabled(zapcore.DebugLevel), "env %q", test.env)
	}
}
