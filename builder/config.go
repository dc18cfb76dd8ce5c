// SPDX-License-Identifier: MIT
// Package: lvcone/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults (no surprises):
//   • rng   = nil (pure/deterministic unless seeded)
//   • scale = 1   (no dilation)

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Dilation factor applied to every emitted point (≥ 1).
	scale int64
}

const defaultScale = int64(1)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{scale: defaultScale}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
