// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"strings"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/multihashd/fault"
)

const (
	publicKeySize  = 32
	privateKeySize = 32
	identifierSize = 32
)

// Client - one connection to a server, not safe for concurrent use
type Client struct {
	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	socketType      zmq.Type
	socket          *zmq.Socket
	timeout         time.Duration
}

// NewClient - create a client, usually of type zmq.DEALER or zmq.REQ
//
// zero timeout means block forever
func NewClient(socketType zmq.Type, timeout time.Duration) *Client {
	return &Client{
		socketType: socketType,
		timeout:    timeout,
	}
}

// UseCurve - encrypt the connection, must be called before Connect
func (client *Client) UseCurve(privateKey []byte, publicKey []byte, serverPublicKey []byte) error {
	if len(publicKey) != publicKeySize || len(serverPublicKey) != publicKeySize {
		return fault.InvalidPublicKey
	}
	if len(privateKey) != privateKeySize {
		return fault.InvalidPrivateKey
	}
	client.privateKey = append([]byte{}, privateKey...)
	client.publicKey = append([]byte{}, publicKey...)
	client.serverPublicKey = append([]byte{}, serverPublicKey...)
	return nil
}

// Connect - disconnect any old address and connect to a new one
func (client *Client) Connect(address string) error {
	err := client.closeSocket()
	if nil != err {
		return err
	}
	client.address = address
	return client.openSocket()
}

func (client *Client) openSocket() error {
	socket, err := zmq.NewSocket(client.socketType)
	if nil != err {
		return err
	}

	// random identity so the server can route replies
	randomIDBytes := make([]byte, identifierSize)
	_, err = rand.Read(randomIDBytes)
	if nil != err {
		goto failure
	}
	err = socket.SetIdentity(string(randomIDBytes))
	if nil != err {
		goto failure
	}

	if nil != client.privateKey {
		if err = socket.SetCurveServer(0); nil != err {
			goto failure
		}
		if err = socket.SetCurvePublickey(string(client.publicKey)); nil != err {
			goto failure
		}
		if err = socket.SetCurveSecretkey(string(client.privateKey)); nil != err {
			goto failure
		}
		if err = socket.SetCurveServerkey(string(client.serverPublicKey)); nil != err {
			goto failure
		}
	}

	if 0 != client.timeout {
		if err = socket.SetSndtimeo(client.timeout); nil != err {
			goto failure
		}
		if err = socket.SetRcvtimeo(client.timeout); nil != err {
			goto failure
		}
	}
	if err = socket.SetLinger(lingerTime); nil != err {
		goto failure
	}
	if err = socket.SetIpv6(strings.Contains(client.address, "[")); nil != err {
		goto failure
	}

	if err = socket.Connect(client.address); nil != err {
		goto failure
	}

	client.socket = socket
	return nil

failure:
	socket.Close()
	return err
}

func (client *Client) closeSocket() error {
	if nil == client.socket {
		return nil
	}
	err := client.socket.Close()
	client.socket = nil
	return err
}

// Close - disconnect and release the socket
func (client *Client) Close() error {
	client.address = ""
	return client.closeSocket()
}

// Send - send strings and byte slices as one multipart message
func (client *Client) Send(items ...interface{}) error {
	if nil == client.socket {
		return fault.NotConnected
	}

	last := len(items) - 1
	for i, item := range items {
		flag := zmq.SNDMORE
		if i == last {
			flag = 0
		}
		switch it := item.(type) {
		case string:
			if _, err := client.socket.Send(it, flag); nil != err {
				return err
			}
		case []byte:
			if _, err := client.socket.SendBytes(it, flag); nil != err {
				return err
			}
		}
	}
	return nil
}

// Receive - read one multipart message
func (client *Client) Receive(flags zmq.Flag) ([][]byte, error) {
	if nil == client.socket {
		return nil, fault.NotConnected
	}
	return client.socket.RecvMessageBytes(flags)
}

// String - the connected address
func (client Client) String() string {
	return client.address
}
