// SPDX-License-Identifier: MIT
package lvcone_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcone"
	"github.com/katalvlaran/lvcone/cone"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := lvcone.Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, l.Enabled(context.Background(), level), level.String())
	}
	assert.False(t, lvcone.Discard().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	orig := lvcone.Logger()
	t.Cleanup(func() { lvcone.SetLogger(orig) })

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lvcone.SetLogger(l)
	assert.Same(t, l, lvcone.Logger())

	// engines without their own logger write to the shared one
	c, err := cone.New(map[cone.InputType][][]int64{cone.Generators: {{1, 0}, {1, 2}}})
	require.NoError(t, err)
	require.NoError(t, c.Compute(context.Background(), cone.HilbertBasis))
	assert.Contains(t, buf.String(), "cone: stage done")

	lvcone.SetLogger(nil)
	require.NotNil(t, lvcone.Logger())
	assert.False(t, lvcone.Logger().Enabled(context.Background(), slog.LevelError))
}
