// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/fixtures"
)

const eventTimeout = 5 * time.Second

func setupTestFileWatcher(t *testing.T) (*FileWatcher, WatcherChannel, string, func()) {
	fixtures.SetupTestLogger()

	fileName, remove := writeConfiguration(t, "return {}\n")
	channels := newWatcherChannel()
	w, err := newFileWatcher(fileName, logger.New(fixtures.LogCategory), channels)
	if nil != err {
		remove()
		fixtures.TeardownTestLogger()
		t.Fatalf("new file watcher error: %s", err)
	}

	return w, channels, fileName, func() {
		remove()
		fixtures.TeardownTestLogger()
	}
}

func waitEvent(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(eventTimeout):
		return false
	}
}

func TestFileWatcherChange(t *testing.T) {
	w, channels, fileName, teardown := setupTestFileWatcher(t)
	defer teardown()

	shutdown := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		w.Run(nil, shutdown)
		close(finished)
	}()

	err := ioutil.WriteFile(fileName, []byte("return { max_cpu_usage = 10 }\n"), 0600)
	assert.Nil(t, err, "wrong write")
	assert.True(t, waitEvent(channels.change), "no change event")

	err = os.Remove(fileName)
	assert.Nil(t, err, "wrong remove")
	assert.True(t, waitEvent(channels.remove), "no remove event")

	close(shutdown)
	<-finished
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	w, channels, fileName, teardown := setupTestFileWatcher(t)
	defer teardown()

	shutdown := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		w.Run(nil, shutdown)
		close(finished)
	}()

	other := filepath.Join(filepath.Dir(fileName), "other.txt")
	err := ioutil.WriteFile(other, []byte("data"), 0600)
	assert.Nil(t, err, "wrong write")

	select {
	case <-channels.change:
		t.Error("change event for another file")
	case <-time.After(200 * time.Millisecond):
	}

	close(shutdown)
	<-finished
}

func TestNewFileWatcherMissingFile(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newFileWatcher("/no/such/multihashd.conf", logger.New(fixtures.LogCategory), newWatcherChannel())
	assert.Equal(t, fault.ConfigurationFileNotFound, err, "wrong error")
}

func TestSendEventDiscardsWhenFull(t *testing.T) {
	w, channels, _, teardown := setupTestFileWatcher(t)
	defer teardown()
	defer w.watcher.Close()

	w.sendEvent(channels.change, "change")
	w.sendEvent(channels.change, "change")
	assert.Equal(t, 1, len(channels.change), "wrong queued events")
}

func TestWatcherEventClassification(t *testing.T) {
	assert.True(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Write}), "write")
	assert.True(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Create}), "create")
	assert.True(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Chmod}), "chmod")
	assert.False(t, watcherEventFileChange(fsnotify.Event{Op: fsnotify.Remove}), "remove as change")

	assert.True(t, watcherEventFileRemove(fsnotify.Event{Op: fsnotify.Remove}), "remove")
	assert.True(t, watcherEventFileRemove(fsnotify.Event{Op: fsnotify.Rename}), "rename")
	assert.False(t, watcherEventFileRemove(fsnotify.Event{Op: fsnotify.Write}), "write as remove")
}
