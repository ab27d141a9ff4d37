// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/multihashd/fault"
)

const (
	fileWatcherLoggerPrefix = "file-watcher"
)

// WatcherChannel - events delivered to the configuration reader
type WatcherChannel struct {
	change chan struct{}
	remove chan struct{}
}

func newWatcherChannel() WatcherChannel {
	return WatcherChannel{
		change: make(chan struct{}, 1),
		remove: make(chan struct{}, 1),
	}
}

// FileWatcher - background process turning file system events on
// the configuration file into channel events
type FileWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	channels WatcherChannel
	filePath string
}

func newFileWatcher(targetFile string, log *logger.L, channels WatcherChannel) (*FileWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fault.ConfigurationFileNotFound
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	// watch the directory so editors that replace the file are seen
	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		_ = watcher.Close()
		return nil, err
	}

	return &FileWatcher{
		log:      log,
		watcher:  watcher,
		channels: channels,
		filePath: filePath,
	}, nil
}

// Run - forward events until shutdown
func (w *FileWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("watching: %q", w.filePath)

	defer func() {
		_ = w.watcher.Close()
		log.Info("stopped")
	}()

	for {
		select {
		case <-shutdown:
			return

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch error: %s", err)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue
			}
			log.Debugf("file event: %v", event)

			switch {
			case watcherEventFileRemove(event):
				log.Warnf("file %s removed", w.filePath)
				w.sendEvent(w.channels.remove, "remove")
			case watcherEventFileChange(event):
				w.sendEvent(w.channels.change, "change")
			}
		}
	}
}

// drop the event when one is already queued
func (w *FileWatcher) sendEvent(ch chan<- struct{}, name string) {
	select {
	case ch <- struct{}{}:
	default:
		w.log.Debugf("event channel %s full, discard event", name)
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
