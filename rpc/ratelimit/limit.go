// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/multihashd/fault"
)

// defaults when the configuration gives none
const (
	DefaultLimit = 200
	DefaultBurst = 100
)

// New - a limiter, zero values select the defaults
func New(limit float64, burst int) *rate.Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return rate.NewLimiter(rate.Limit(limit), burst)
}

// Limit - wait for a single request
func Limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

// LimitBytes - a request costs one token per started block of input
// so large inputs drain the limiter faster
func LimitBytes(limiter *rate.Limiter, length int, blockSize int) error {
	count := 1 + length/blockSize
	if count > limiter.Burst() {
		count = limiter.Burst()
	}
	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

// Update - change rate on a running limiter
func Update(limiter *rate.Limiter, limit float64, burst int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	limiter.SetLimit(rate.Limit(limit))
	limiter.SetBurst(burst)
}
