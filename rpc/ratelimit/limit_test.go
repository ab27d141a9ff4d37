// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/multihashd/rpc/ratelimit"
)

func TestNewDefaults(t *testing.T) {
	limiter := ratelimit.New(0, 0)
	assert.Equal(t, rate.Limit(ratelimit.DefaultLimit), limiter.Limit(), "wrong default limit")
	assert.Equal(t, ratelimit.DefaultBurst, limiter.Burst(), "wrong default burst")

	limiter = ratelimit.New(5, 2)
	assert.Equal(t, rate.Limit(5), limiter.Limit(), "wrong limit")
	assert.Equal(t, 2, limiter.Burst(), "wrong burst")
}

func TestLimitWithinBurst(t *testing.T) {
	limiter := ratelimit.New(1, 3)

	start := time.Now()
	for i := 0; i < 3; i += 1 {
		assert.Nil(t, ratelimit.Limit(limiter), "wrong Limit")
	}
	assert.True(t, time.Since(start) < 500*time.Millisecond, "burst requests were delayed")
}

func TestLimitBytesCapsAtBurst(t *testing.T) {
	limiter := ratelimit.New(1000, 4)

	// a huge input costs at most one full burst
	err := ratelimit.LimitBytes(limiter, 1<<20, 64)
	assert.Nil(t, err, "large input rejected")
}

func TestUpdate(t *testing.T) {
	limiter := ratelimit.New(10, 10)

	ratelimit.Update(limiter, 50, 7)
	assert.Equal(t, rate.Limit(50), limiter.Limit(), "limit not updated")
	assert.Equal(t, 7, limiter.Burst(), "burst not updated")

	ratelimit.Update(limiter, -1, 0)
	assert.Equal(t, rate.Limit(ratelimit.DefaultLimit), limiter.Limit(), "limit not reset")
	assert.Equal(t, ratelimit.DefaultBurst, limiter.Burst(), "burst not reset")
}
