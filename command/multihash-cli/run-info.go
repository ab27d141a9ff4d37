// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/multihashd/command/multihash-cli/rpccalls"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/primitive"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.useTLS, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.GetInfo()
	if nil != err {
		return err
	}

	return printJson(m.w, info)
}

func runResult(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if !c.IsSet("job") {
		return fmt.Errorf("job id is required")
	}

	client, err := rpccalls.NewClient(m.connect, m.useTLS, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Result(c.Uint64("job"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

type functionItem struct {
	Name        string `json:"name"`
	Algorithm   string `json:"algorithm"`
	Async       bool   `json:"async"`
	DefaultMode string `json:"defaultMode"`
}

type functionsReply struct {
	LocalBackend string         `json:"localBackend"`
	Functions    []functionItem `json:"functions"`
}

func runFunctions(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	reply := functionsReply{
		LocalBackend: primitive.Backend,
	}
	for _, f := range hashing.Functions() {
		reply.Functions = append(reply.Functions, functionItem{
			Name:        f.Name,
			Algorithm:   f.Algorithm.String(),
			Async:       f.Async,
			DefaultMode: f.Algorithm.DefaultMode().String(),
		})
	}

	return printJson(m.w, reply)
}
