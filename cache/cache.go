// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/multihashd/digest"
)

const (
	cleanupMultiple = 2
	minimumCleanup  = time.Minute
)

// Key - identifies one (selector, input) pair
type Key string

// Cache - memory store of computed digests
type Cache interface {
	Get(Key) (digest.Digest, bool)
	Put(Key, digest.Digest)
	Flush()
	Count() int
}

type digestCache struct {
	items      *gocache.Cache
	expiration time.Duration
}

// NewKey - selector name plus the Keccak-256 of the input, so
// large inputs are not kept in memory
func NewKey(selector string, input []byte) Key {
	h := sha3.NewLegacyKeccak256()
	h.Write(input)
	return Key(selector + ":" + hex.EncodeToString(h.Sum(nil)))
}

// New - create a cache whose entries live for expiration
func New(expiration time.Duration) Cache {
	cleanup := cleanupMultiple * expiration
	if cleanup < minimumCleanup {
		cleanup = minimumCleanup
	}
	return &digestCache{
		items:      gocache.New(expiration, cleanup),
		expiration: expiration,
	}
}

func (c *digestCache) Get(key Key) (digest.Digest, bool) {
	obj, found := c.items.Get(string(key))
	if !found {
		return digest.Digest{}, false
	}
	return obj.(digest.Digest), true
}

func (c *digestCache) Put(key Key, d digest.Digest) {
	c.items.Set(string(key), d, c.expiration)
}

func (c *digestCache) Flush() {
	c.items.Flush()
}

func (c *digestCache) Count() int {
	return c.items.ItemCount()
}
