// Package builder generates synthetic ranked trees and forests for tests,
// benchmarks, and the CLI's -synthetic mode.
//
// The key type is Option, a function that mutates a config. config holds
// an RNG, a maximum per-node arity, and an alphabet size; newConfig
// applies sensible defaults and then every supplied Option in order.
//
// Generalizes lvlath/builder's BuilderOption/builderConfig/WithSeed
// functional-option machinery from random graphs to random ranked trees.
package builder

import "math/rand"

const (
	defaultMaxArity      = 2
	defaultAlphabetSize  = 3
)

// Option customizes RandomTree/RandomForest by mutating a config before
// generation begins.
type Option func(*config)

type config struct {
	rng           *rand.Rand
	maxArity      int
	alphabetSize  int
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		rng:          rand.New(rand.NewSource(1)),
		maxArity:     defaultMaxArity,
		alphabetSize: defaultAlphabetSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSeed seeds the generator's RNG for reproducible trees.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMaxArity sets the maximum number of children any internal node may
// have. r must be at least 1; WithMaxArity(r<1) is a no-op, leaving the
// default in place, since a tree generator with arity 0 can never produce
// internal nodes.
func WithMaxArity(r int) Option {
	return func(c *config) {
		if r >= 1 {
			c.maxArity = r
		}
	}
}

// WithAlphabetSize sets how many distinct ranked symbols RandomTree draws
// from (symbols are named "sym0".."symN-1"). n must be at least 1.
func WithAlphabetSize(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.alphabetSize = n
		}
	}
}
