// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/fixtures"
)

func TestNewInvalidSize(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := New(logger.New(fixtures.LogCategory), 0, 10)
	assert.Equal(t, fault.InvalidPoolSize, err, "wrong error for zero threads")
}

func TestEnqueueRunsEveryTask(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p, err := New(logger.New(fixtures.LogCategory), 3, 0)
	assert.Nil(t, err, "wrong New")

	var count int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i += 1 {
		wg.Add(1)
		err := p.Enqueue(func() {
			atomic.AddInt32(&count, 1)
			wg.Done()
		})
		assert.Nil(t, err, "wrong Enqueue")
	}
	wg.Wait()
	p.Stop()

	assert.Equal(t, int32(100), atomic.LoadInt32(&count), "wrong task count")
}

func TestStopDrainsQueue(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p, _ := New(logger.New(fixtures.LogCategory), 1, 10)

	var count int32
	for i := 0; i < 10; i += 1 {
		_ = p.Enqueue(func() {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&count, 1)
		})
	}
	p.Stop()

	assert.Equal(t, int32(10), atomic.LoadInt32(&count), "queued tasks were dropped")
	assert.Equal(t, fault.PoolStopped, p.Enqueue(func() {}), "enqueue after stop")
	assert.Equal(t, fault.PoolStopped, p.Resize(2), "resize after stop")

	// a second stop is harmless
	p.Stop()
}

func TestStopReleasesBlockedEnqueue(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p, _ := New(logger.New(fixtures.LogCategory), 1, 1)

	release := make(chan struct{})
	_ = p.Enqueue(func() { <-release })
	_ = p.Enqueue(func() {})

	result := make(chan error, 1)
	go func() {
		result <- p.Enqueue(func() {})
	}()

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case err := <-result:
		assert.True(t, nil == err || fault.PoolStopped == err, "unexpected error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("blocked enqueue was not released")
	}

	close(release)
	<-stopped
}

func TestResize(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p, _ := New(logger.New(fixtures.LogCategory), 2, 10)
	defer p.Stop()

	assert.Equal(t, 2, p.Threads(), "wrong initial threads")
	assert.Nil(t, p.Resize(5), "wrong grow")
	assert.Equal(t, 5, p.Threads(), "wrong threads after grow")
	assert.Nil(t, p.Resize(1), "wrong shrink")
	assert.Equal(t, 1, p.Threads(), "wrong threads after shrink")
	assert.Equal(t, fault.InvalidPoolSize, p.Resize(0), "wrong error for zero threads")

	done := make(chan struct{})
	_ = p.Enqueue(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run after shrink")
	}
}

func TestResizeWhileEnqueueBlocked(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p, _ := New(logger.New(fixtures.LogCategory), 1, 1)

	release := make(chan struct{})
	_ = p.Enqueue(func() { <-release })
	_ = p.Enqueue(func() { <-release })

	blocked := make(chan error, 1)
	go func() {
		blocked <- p.Enqueue(func() {})
	}()
	time.Sleep(50 * time.Millisecond)

	done := make(chan int, 1)
	go func() {
		_ = p.Resize(2)
		done <- p.Threads()
	}()

	select {
	case n := <-done:
		assert.Equal(t, 2, n, "wrong threads after resize")
	case <-time.After(time.Second):
		t.Fatal("resize blocked by a waiting enqueue")
	}

	close(release)
	select {
	case err := <-blocked:
		assert.Nil(t, err, "wrong blocked enqueue")
	case <-time.After(time.Second):
		t.Fatal("blocked enqueue never completed")
	}
	p.Stop()
}

func TestPanicDoesNotKillThread(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p, _ := New(logger.New(fixtures.LogCategory), 1, 10)
	defer p.Stop()

	_ = p.Enqueue(func() { panic("boom") })

	done := make(chan struct{})
	_ = p.Enqueue(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("thread died after panic")
	}
}

func TestThreadCount(t *testing.T) {
	expected := []struct {
		usage   int
		cpus    int
		threads int
	}{
		{25, 4, 1},    // 25% of 4 cpu is 1 thread
		{0, 8, 1},     // minimum 1 thread
		{200, 12, 12}, // maximum to # of cpu core
		{30, 16, 4},   // round down
	}
	for i, s := range expected {
		actual := threadCountFor(s.usage, s.cpus)
		if s.threads != actual {
			t.Errorf("%d: expected thread count %d different from calculated %d", i, s.threads, actual)
		}
	}
	assert.True(t, ThreadCount(50) >= 1, "wrong ThreadCount")
}
