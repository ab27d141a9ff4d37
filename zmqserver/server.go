// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqserver

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/zmqutil"
)

const (
	zapDomain       = "multihashd"
	pollTimeout     = 500 * time.Millisecond
	replyQueueDepth = 1000
)

// Configuration - configuration file data for the ZMQ endpoint
//
// keys are tagged hex as written by generate-identity, leave both
// empty for plain traffic
type Configuration struct {
	Listen     []string `gluamapper:"listen" json:"listen"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Request - one digest request
type Request struct {
	ID        string      `json:"id"`
	Algorithm string      `json:"algorithm"`
	Input     string      `json:"input"`
	Mode      interface{} `json:"mode"`
}

// Reply - the outcome of one request
type Reply struct {
	ID     string         `json:"id"`
	OK     bool           `json:"ok"`
	Job    uint64         `json:"job,omitempty"`
	Digest *digest.Digest `json:"digest,omitempty"`
	Error  string         `json:"error,omitempty"`
	Class  string         `json:"class,omitempty"`
}

type pending struct {
	identity []byte
	reply    Reply
}

// Server - a background process answering ROUTER requests
type Server struct {
	log      *logger.L
	hasher   *hashing.Hasher
	socket   *zmq.Socket
	push     *zmq.Socket
	pull     *zmq.Socket
	replies  chan pending
	requests counter.Counter
	wg       sync.WaitGroup
}

var signalCount counter.Counter

// New - bind the ROUTER socket
func New(configuration *Configuration, hasher *hashing.Hasher) (*Server, error) {
	log := logger.New("zmq")

	if 0 == len(configuration.Listen) {
		log.Error("missing listen")
		return nil, fault.MissingParameters
	}

	var privateKey []byte
	var publicKey []byte
	if "" != configuration.PrivateKey || "" != configuration.PublicKey {
		var err error
		privateKey, err = zmqutil.ReadPrivateKey(configuration.PrivateKey)
		if nil != err {
			log.Errorf("read private key error: %s", err)
			return nil, err
		}
		publicKey, err = zmqutil.ReadPublicKey(configuration.PublicKey)
		if nil != err {
			log.Errorf("read public key error: %s", err)
			return nil, err
		}
		err = zmqutil.StartAuthentication()
		if nil != err {
			log.Errorf("start authentication error: %s", err)
			return nil, err
		}
	}

	socket, err := zmqutil.NewBind(log, zmq.ROUTER, zapDomain, privateKey, publicKey, configuration.Listen)
	if nil != err {
		return nil, err
	}

	signal := fmt.Sprintf("inproc://zmqserver-replies-%d", signalCount.Increment())
	push, pull, err := zmqutil.NewSignalPair(signal)
	if nil != err {
		socket.Close()
		return nil, err
	}

	return &Server{
		log:     log,
		hasher:  hasher,
		socket:  socket,
		push:    push,
		pull:    pull,
		replies: make(chan pending, replyQueueDepth),
	}, nil
}

// Requests - number of requests received
func (s *Server) Requests() uint64 {
	return s.requests.Uint64()
}

// Run - serve until shutdown, then close all sockets
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log
	log.Info("starting…")

	forwarderDone := make(chan struct{})
	go s.forward(shutdown, forwarderDone)

	poller := zmq.NewPoller()
	poller.Add(s.socket, zmq.POLLIN)
	poller.Add(s.pull, zmq.POLLIN)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}

		polled, err := poller.Poll(pollTimeout)
		if nil != err {
			log.Errorf("poll error: %s", err)
			continue loop
		}

		for _, p := range polled {
			switch p.Socket {
			case s.socket:
				s.receive(shutdown)
			case s.pull:
				s.send()
			}
		}
	}

	log.Info("shutting down…")

	s.wg.Wait()
	<-forwarderDone

	s.push.Close()
	s.pull.Close()
	s.socket.Close()
	log.Info("stopped")
}

// ROUTER side: read one request and either queue it or reject it
func (s *Server) receive(shutdown <-chan struct{}) {
	data, err := s.socket.RecvMessageBytes(0)
	if nil != err {
		s.log.Errorf("receive error: %s", err)
		return
	}
	s.requests.Increment()

	if len(data) < 2 {
		s.log.Warnf("short message: %d frames", len(data))
		return
	}
	identity := data[0]
	payload := data[len(data)-1]

	var request Request
	err = json.Unmarshal(payload, &request)
	if nil != err {
		s.reply(identity, failure("", fault.InvalidJob))
		return
	}

	algorithm, err := hashing.ParseAlgorithm(request.Algorithm)
	if nil != err {
		s.reply(identity, failure(request.ID, err))
		return
	}

	input, err := hex.DecodeString(request.Input)
	if nil != err {
		s.reply(identity, failure(request.ID, fault.InvalidHexInput))
		return
	}
	if nil == input {
		input = []byte{}
	}

	args := []interface{}{input}
	if nil != request.Mode {
		args = append(args, request.Mode)
	}

	completion := make(chan hashing.Result, 1)
	job, err := s.hasher.CallAsync(algorithm, completion, args...)
	if nil != err {
		s.reply(identity, failure(request.ID, err))
		return
	}
	s.log.Debugf("id: %q  job: %d  %s", request.ID, job.ID, job.Selector)

	s.wg.Add(1)
	go s.await(identity, request.ID, completion, shutdown)
}

// wait for one job then hand its reply to the forwarder
func (s *Server) await(identity []byte, id string, completion <-chan hashing.Result, shutdown <-chan struct{}) {
	defer s.wg.Done()

	var result hashing.Result
	select {
	case result = <-completion:
	case <-shutdown:
		return
	}

	var reply Reply
	if nil == result.Err {
		d := result.Digest
		reply = Reply{
			ID:     id,
			OK:     true,
			Job:    result.Job,
			Digest: &d,
		}
	} else {
		reply = failure(id, result.Err)
		reply.Job = result.Job
	}

	select {
	case s.replies <- pending{identity: identity, reply: reply}:
	case <-shutdown:
	}
}

// owns the push socket: passes finished replies to the poll loop
func (s *Server) forward(shutdown <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-shutdown:
			return
		case p := <-s.replies:
			buffer, err := json.Marshal(p.reply)
			if nil != err {
				s.log.Errorf("encode reply error: %s", err)
				continue
			}
			_, err = s.push.SendMessage(p.identity, buffer)
			if nil != err {
				s.log.Errorf("signal send error: %s", err)
			}
		}
	}
}

// pull side: copy one finished reply to its client
func (s *Server) send() {
	data, err := s.pull.RecvMessageBytes(0)
	if nil != err {
		s.log.Errorf("signal receive error: %s", err)
		return
	}
	if 2 != len(data) {
		s.log.Errorf("signal frames: %d", len(data))
		return
	}
	_, err = s.socket.SendMessage(data[0], "", data[1])
	if nil != err {
		s.log.Errorf("send error: %s", err)
	}
}

// immediate reply from the poll loop
func (s *Server) reply(identity []byte, reply Reply) {
	buffer, err := json.Marshal(reply)
	if nil != err {
		s.log.Errorf("encode reply error: %s", err)
		return
	}
	s.log.Debugf("id: %q  rejected: %s", reply.ID, reply.Error)
	_, err = s.socket.SendMessage(identity, "", buffer)
	if nil != err {
		s.log.Errorf("send error: %s", err)
	}
}

func failure(id string, err error) Reply {
	return Reply{
		ID:    id,
		OK:    false,
		Error: err.Error(),
		Class: fault.Class(err),
	}
}
