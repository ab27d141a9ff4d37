// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strconv"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/multihashd/command/multihash-cli/rpccalls"
	"github.com/bitmark-inc/multihashd/zmqserver"
	"github.com/bitmark-inc/multihashd/zmqutil"
)

const zmqTimeout = 5 * time.Minute

// one request over a DEALER socket, CURVE when a server key is given
func zmqDigest(m *metadata, data *rpccalls.DigestData) (*digestResult, error) {
	client := zmqutil.NewClient(zmq.DEALER, zmqTimeout)

	if "" != m.serverKey {
		text, err := ioutil.ReadFile(m.serverKey)
		if nil != err {
			return nil, err
		}
		serverPublicKey, err := zmqutil.ReadPublicKey(string(text))
		if nil != err {
			return nil, err
		}

		// an ephemeral client key is enough, the server does not
		// restrict clients
		public, private, err := zmq.NewCurveKeypair()
		if nil != err {
			return nil, err
		}
		err = client.UseCurve([]byte(zmq.Z85decode(private)), []byte(zmq.Z85decode(public)), serverPublicKey)
		if nil != err {
			return nil, err
		}
	}

	err := client.Connect(m.zmq)
	if nil != err {
		return nil, err
	}
	defer client.Close()

	request := zmqserver.Request{
		ID:        strconv.FormatInt(time.Now().UnixNano(), 36),
		Algorithm: data.Algorithm.String(),
		Input:     hex.EncodeToString(data.Input),
		Mode:      data.Mode,
	}
	buffer, err := json.Marshal(request)
	if nil != err {
		return nil, err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "zmq request: %s\n", buffer)
	}

	err = client.Send("", buffer)
	if nil != err {
		return nil, err
	}

	frames, err := client.Receive(0)
	if nil != err {
		return nil, err
	}
	if 0 == len(frames) {
		return nil, fmt.Errorf("empty reply")
	}
	if m.verbose {
		fmt.Fprintf(m.e, "zmq reply: %s\n", frames[len(frames)-1])
	}

	var reply zmqserver.Reply
	err = json.Unmarshal(frames[len(frames)-1], &reply)
	if nil != err {
		return nil, err
	}
	if reply.ID != request.ID {
		return nil, fmt.Errorf("reply id: %q does not match request: %q", reply.ID, request.ID)
	}
	if !reply.OK || nil == reply.Digest {
		return nil, fmt.Errorf("%s error: %s", reply.Class, reply.Error)
	}

	return &digestResult{
		Algorithm: data.Algorithm.String(),
		Via:       "zmq",
		Job:       reply.Job,
		Digest:    *reply.Digest,
	}, nil
}
