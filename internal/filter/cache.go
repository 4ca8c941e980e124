package filter

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of compiled patterns a PatternCache keeps.
const DefaultCacheSize = 512

type cacheKey struct {
	source  string
	literal bool
}

// PatternCache memoizes compiled patterns across generation passes. Patterns
// are immutable, so cached values are shared freely. Failed compilations are
// not cached.
type PatternCache struct {
	lru *lru.Cache[cacheKey, *Pattern]
}

// NewPatternCache creates a cache holding up to size patterns.
func NewPatternCache(size int) (*PatternCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, *Pattern](size)
	if err != nil {
		return nil, err
	}
	return &PatternCache{lru: c}, nil
}

// Compile returns the cached pattern for src or compiles and stores it.
// A nil cache compiles directly.
func (c *PatternCache) Compile(src string, opts Options) (*Pattern, error) {
	if c == nil {
		return Compile(src, opts)
	}
	key := cacheKey{source: src, literal: opts.LiteralSeparator}
	if p, ok := c.lru.Get(key); ok {
		return p, nil
	}
	p, err := Compile(src, opts)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, p)
	return p, nil
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
