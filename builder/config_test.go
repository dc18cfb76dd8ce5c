// SPDX-License-Identifier: MIT
package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := newBuilderConfig()
	assert.Nil(t, cfg.rng)
	assert.Equal(t, defaultScale, cfg.scale)
}

func TestRNGOptions(t *testing.T) {
	t.Parallel()
	exp := rand.New(rand.NewSource(123))
	assert.Same(t, exp, newBuilderConfig(WithRand(exp)).rng)

	a := newBuilderConfig(WithSeed(42))
	b := newBuilderConfig(WithSeed(42))
	require.NotNil(t, a.rng)
	assert.Equal(t, a.rng.Int63(), b.rng.Int63())

	assert.Panics(t, func() { WithRand(nil) })
}

func TestScaleOption(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int64(3), newBuilderConfig(WithScale(2), WithScale(3)).scale)
	assert.Panics(t, func() { WithScale(0) })
}
