// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package compiler

import (
	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"
)

// DefaultCacheSize is the number of compiled units kept by NewCache when the
// requested size is not positive.
const DefaultCacheSize = 16

// Cache keeps recently compiled units keyed by the Keccak-256 digest of their
// source text. Only successful compilations are cached.
type Cache struct {
	units *lru.ARCCache
}

// NewCache creates a cache holding up to size units.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	units, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cache{units: units}, nil
}

func sourceKey(source string) [32]byte {
	var key [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(source))
	h.Sum(key[:0])
	return key
}

// Compile returns the cached unit for source, compiling and caching it on a
// miss. opts is only used on a miss. A hit under another filename returns a
// copy named filename that shares the compiled program.
func (c *Cache) Compile(filename, source string, opts Options) (*Unit, error) {
	key := sourceKey(source)
	if v, ok := c.units.Get(key); ok {
		log.Debug("Compiled unit served from cache", "name", filename, "key", key[:4])
		unit := v.(*Unit)
		if unit.Name != filename {
			renamed := *unit
			renamed.Name = filename
			return &renamed, nil
		}
		return unit, nil
	}
	unit, err := Compile(filename, source, opts)
	if err != nil {
		return nil, err
	}
	c.units.Add(key, unit)
	return unit, nil
}

// Len returns the number of cached units.
func (c *Cache) Len() int {
	return c.units.Len()
}
