// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/background"
)

type recorder struct {
	sync.Mutex
	order []string
}

func (r *recorder) add(s string) {
	r.Lock()
	r.order = append(r.order, s)
	r.Unlock()
}

type listener struct {
	name   string
	ticks  int
	record *recorder
}

func (l *listener) Run(args interface{}, shutdown <-chan struct{}) {
	t := args.(*testing.T)
	t.Logf("%s: started", l.name)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			l.ticks += 1
		}
	}
	l.record.add(l.name)
}

func TestStartStop(t *testing.T) {
	record := &recorder{}
	rpc := &listener{name: "rpc", record: record}
	zmq := &listener{name: "zmq", record: record}

	p := background.Start(background.Processes{rpc, zmq}, t)
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	assert.True(t, rpc.ticks > 0, "first process did not run")
	assert.True(t, zmq.ticks > 0, "second process did not run")
	assert.Equal(t, []string{"zmq", "rpc"}, record.order, "wrong stop order")

	// repeat stop is ignored
	p.Stop()
	assert.Equal(t, 2, len(record.order), "process stopped twice")
}

func TestStartEmpty(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
