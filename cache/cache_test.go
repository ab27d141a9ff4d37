// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/cache"
	"github.com/bitmark-inc/multihashd/digest"
)

func TestKey(t *testing.T) {
	k1 := cache.NewKey("k12", []byte("one"))
	k2 := cache.NewKey("k12", []byte("two"))
	k3 := cache.NewKey("cryptonight", []byte("one"))

	assert.Equal(t, k1, cache.NewKey("k12", []byte("one")), "key not stable")
	assert.NotEqual(t, k1, k2, "different inputs share a key")
	assert.NotEqual(t, k1, k3, "different selectors share a key")
	assert.Equal(t, cache.Key("k12:c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"), cache.NewKey("k12", nil), "wrong empty key")
}

func TestPutGet(t *testing.T) {
	c := cache.New(time.Minute)

	key := cache.NewKey("k12", []byte("data"))
	_, found := c.Get(key)
	assert.False(t, found, "found in empty cache")

	d := digest.Digest{1, 2, 3}
	c.Put(key, d)

	actual, found := c.Get(key)
	assert.True(t, found, "not found after put")
	assert.Equal(t, d, actual, "wrong digest")
	assert.Equal(t, 1, c.Count(), "wrong count")

	c.Flush()
	_, found = c.Get(key)
	assert.False(t, found, "found after flush")
	assert.Equal(t, 0, c.Count(), "wrong count after flush")
}

func TestExpiration(t *testing.T) {
	c := cache.New(20 * time.Millisecond)

	key := cache.NewKey("k12", []byte("short lived"))
	c.Put(key, digest.Digest{9})

	time.Sleep(50 * time.Millisecond)

	_, found := c.Get(key)
	assert.False(t, found, "expired entry still returned")
}
