// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/multihashd/command/multihash-cli/rpccalls"
	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/hashing"
)

const (
	pollInterval = 100 * time.Millisecond
	waitTimeout  = 5 * time.Minute
)

type digestResult struct {
	Algorithm string        `json:"algorithm"`
	Via       string        `json:"via"`
	Job       uint64        `json:"job,omitempty"`
	Digest    digest.Digest `json:"digest"`
}

func runCryptonight(c *cli.Context) error {
	var mode interface{}
	if c.Bool("fast") {
		mode = true
	}
	return runDigest(c, hashing.Cryptonight, mode)
}

func runCryptonightLight(c *cli.Context) error {
	var mode interface{}
	variant := c.Int("variant")
	switch {
	case c.Bool("fast") && variant >= 0:
		return fmt.Errorf("only one of --fast and --variant is allowed")
	case c.Bool("fast"):
		mode = true
	case variant >= 0:
		mode = uint32(variant)
	}
	return runDigest(c, hashing.CryptonightLight, mode)
}

func runK12(c *cli.Context) error {
	var mode interface{}
	if c.Bool("fast") {
		mode = true // rejected: k12 has no mode
	}
	return runDigest(c, hashing.K12, mode)
}

func runDigest(c *cli.Context, algorithm hashing.Algorithm, mode interface{}) error {
	m := c.App.Metadata["config"].(*metadata)

	input, err := getInput(c)
	if nil != err {
		return err
	}

	data := &rpccalls.DigestData{
		Algorithm: algorithm,
		Input:     input,
		Mode:      mode,
	}

	if m.verbose {
		fmt.Fprintf(m.e, "algorithm: %s  input length: %d\n", algorithm, len(input))
	}

	var result *digestResult
	switch {
	case c.Bool("local"):
		result, err = localDigest(data, c.Bool("async"))
	case "" != m.zmq:
		result, err = zmqDigest(m, data)
	default:
		result, err = rpcDigest(m, data, c.Bool("async"))
	}
	if nil != err {
		return err
	}

	return printJson(m.w, result)
}

func rpcDigest(m *metadata, data *rpccalls.DigestData, async bool) (*digestResult, error) {
	client, err := rpccalls.NewClient(m.connect, m.useTLS, m.verbose, m.e)
	if nil != err {
		return nil, err
	}
	defer client.Close()

	result := &digestResult{
		Algorithm: data.Algorithm.String(),
		Via:       "rpc",
	}

	if !async {
		result.Digest, err = client.Digest(data)
		if nil != err {
			return nil, err
		}
		return result, nil
	}

	job, err := client.Submit(data)
	if nil != err {
		return nil, err
	}
	result.Job = job

	reply, err := client.Wait(job, pollInterval, waitTimeout)
	if nil != err {
		return nil, err
	}
	if "" != reply.Error {
		return nil, fmt.Errorf("job: %d %s error: %s", job, reply.Class, reply.Error)
	}
	result.Digest = *reply.Digest
	return result, nil
}

// input from --input or stdin, optionally hex decoded
func getInput(c *cli.Context) ([]byte, error) {
	var input []byte
	if c.IsSet("input") {
		input = []byte(c.String("input"))
	} else {
		data, err := ioutil.ReadAll(os.Stdin)
		if nil != err {
			return nil, err
		}
		input = data
	}

	if !c.Bool("hex") {
		return input, nil
	}

	decoded, err := hex.DecodeString(strings.TrimSpace(string(input)))
	if nil != err {
		return nil, fmt.Errorf("input is not valid hex: %s", err)
	}
	return decoded, nil
}
