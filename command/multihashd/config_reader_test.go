// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/cache"
	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/fixtures"
)

type fakePool struct {
	sync.Mutex
	sizes []int
}

func (p *fakePool) Resize(threads int) error {
	p.Lock()
	defer p.Unlock()
	p.sizes = append(p.sizes, threads)
	return nil
}

func (p *fakePool) resized() []int {
	p.Lock()
	defer p.Unlock()
	return append([]int{}, p.sizes...)
}

type rateCall struct {
	limit float64
	burst int
}

type fakeLimiter struct {
	sync.Mutex
	calls []rateCall
}

func (l *fakeLimiter) set(limit float64, burst int) {
	l.Lock()
	defer l.Unlock()
	l.calls = append(l.calls, rateCall{limit: limit, burst: burst})
}

func (l *fakeLimiter) count() int {
	l.Lock()
	defer l.Unlock()
	return len(l.calls)
}

func setupReader(t *testing.T, text string) (*ConfigReader, *fakePool, *fakeLimiter, cache.Cache, string, func()) {
	fixtures.SetupTestLogger()

	fileName, remove := writeConfiguration(t, text)
	current, err := getConfiguration(fileName)
	if nil != err {
		t.Fatalf("configuration error: %s", err)
	}

	pool := &fakePool{}
	limiter := &fakeLimiter{}
	digests := cache.New(time.Minute)

	reader := newConfigReader(fileName, current, newWatcherChannel(), logger.New(fixtures.LogCategory))
	reader.threadCount = func(maxCPUUsage int) int {
		return maxCPUUsage / 10
	}
	reader.SetTargets(pool, digests, limiter.set)

	return reader, pool, limiter, digests, fileName, func() {
		remove()
		fixtures.TeardownTestLogger()
	}
}

const readerConfiguration = `
return {
    data_directory = ".",
    max_cpu_usage = 20,
    reload_delay = "1ms",
    client_rpc = { request_rate = 50, request_burst = 10 },
}
`

const changedConfiguration = `
return {
    data_directory = ".",
    max_cpu_usage = 80,
    reload_delay = "1ms",
    client_rpc = { request_rate = 7, request_burst = 3 },
}
`

func TestRefreshAppliesChanges(t *testing.T) {
	reader, pool, limiter, digests, fileName, teardown := setupReader(t, readerConfiguration)
	defer teardown()

	digests.Put(cache.NewKey("k12", []byte("x")), digest.Digest{1})

	err := ioutil.WriteFile(fileName, []byte(changedConfiguration), 0600)
	assert.Nil(t, err, "wrong write")

	err = reader.Refresh()
	assert.Nil(t, err, "wrong Refresh")

	assert.Equal(t, []int{8}, pool.resized(), "wrong resize")
	assert.Equal(t, []rateCall{{limit: 7, burst: 3}}, limiter.calls, "wrong rate limit")
	assert.Equal(t, 0, digests.Count(), "cache not flushed")
	assert.Equal(t, 80, reader.GetConfig().MaxCPUUsage, "configuration not replaced")
}

func TestRefreshSameUsageKeepsPool(t *testing.T) {
	reader, pool, limiter, _, _, teardown := setupReader(t, readerConfiguration)
	defer teardown()

	err := reader.Refresh()
	assert.Nil(t, err, "wrong Refresh")
	assert.Equal(t, 0, len(pool.resized()), "pool resized without change")
	assert.Equal(t, 1, limiter.count(), "rate limit not applied")
}

func TestRefreshKeepsRunningOnError(t *testing.T) {
	reader, pool, limiter, _, fileName, teardown := setupReader(t, readerConfiguration)
	defer teardown()

	before := reader.GetConfig()

	err := ioutil.WriteFile(fileName, []byte("return {\n"), 0600)
	assert.Nil(t, err, "wrong write")

	err = reader.Refresh()
	assert.NotNil(t, err, "bad file accepted")
	assert.Equal(t, before, reader.GetConfig(), "configuration replaced")
	assert.Equal(t, 0, len(pool.resized()), "pool resized")
	assert.Equal(t, 0, limiter.count(), "rate limit changed")
}

func TestRunReloadsOnChangeEvent(t *testing.T) {
	reader, pool, _, _, fileName, teardown := setupReader(t, readerConfiguration)
	defer teardown()

	shutdown := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		reader.Run(nil, shutdown)
		close(finished)
	}()

	err := ioutil.WriteFile(fileName, []byte(changedConfiguration), 0600)
	assert.Nil(t, err, "wrong write")
	reader.channels.change <- struct{}{}

	deadline := time.After(5 * time.Second)
wait:
	for {
		select {
		case <-deadline:
			t.Error("timeout waiting for reload")
			break wait
		case <-time.After(5 * time.Millisecond):
			if 80 == reader.GetConfig().MaxCPUUsage {
				break wait
			}
		}
	}

	close(shutdown)
	<-finished
	assert.Equal(t, []int{8}, pool.resized(), "wrong resize")
}
