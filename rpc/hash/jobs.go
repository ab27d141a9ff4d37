// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hash

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/multihashd/hashing"
)

const (
	defaultJobExpiry = 10 * time.Minute
	jobCleanup       = time.Minute
)

// Jobs - submitted jobs kept for result polling
//
// an entry expires a fixed time after submission whether or not its
// result was read
type Jobs struct {
	items  *gocache.Cache
	expiry time.Duration
}

// NewJobs - create a registry, expiry <= 0 selects the default
func NewJobs(expiry time.Duration) *Jobs {
	if expiry <= 0 {
		expiry = defaultJobExpiry
	}
	return &Jobs{
		items:  gocache.New(expiry, jobCleanup),
		expiry: expiry,
	}
}

// Add - remember a job
func (j *Jobs) Add(job *hashing.Job) {
	j.items.Set(jobKey(job.ID), job, j.expiry)
}

// Get - find a job by its id
func (j *Jobs) Get(id uint64) (*hashing.Job, bool) {
	obj, found := j.items.Get(jobKey(id))
	if !found {
		return nil, false
	}
	return obj.(*hashing.Job), true
}

// Remove - forget a job
func (j *Jobs) Remove(id uint64) {
	j.items.Delete(jobKey(id))
}

// Count - number of remembered jobs
func (j *Jobs) Count() int {
	return j.items.ItemCount()
}

func jobKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
