// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect   string
	useTLS    bool
	zmq       string
	serverKey string
	verbose   bool
	e         io.Writer
	w         io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func digestFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "input, i",
			Value: "",
			Usage: " input `STRING` (default: read stdin)",
		},
		cli.BoolFlag{
			Name:  "hex, x",
			Usage: " input is hex encoded",
		},
		cli.BoolFlag{
			Name:  "fast, f",
			Usage: " fast mode",
		},
		cli.BoolFlag{
			Name:  "async, a",
			Usage: " queue the digest and wait for the result",
		},
		cli.BoolFlag{
			Name:  "local, l",
			Usage: " compute in this process instead of on a server",
		},
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "multihash-cli"
	app.Usage = "compute proof-of-work digests"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2150",
			Usage:  " multihashd JSON-RPC `HOST:PORT`",
			EnvVar: "MULTIHASHD_CONNECT",
		},
		cli.BoolFlag{
			Name:  "tls, t",
			Usage: " use TLS for JSON-RPC",
		},
		cli.StringFlag{
			Name:  "zmq, z",
			Value: "",
			Usage: " use the ZeroMQ `ENDPOINT` instead of JSON-RPC",
		},
		cli.StringFlag{
			Name:  "server-key, k",
			Value: "",
			Usage: " server public key `FILE` to encrypt ZeroMQ traffic",
		},
	}

	lightFlags := append(digestFlags(),
		cli.IntFlag{
			Name:  "variant, n",
			Value: -1,
			Usage: " variant `NUMBER` (variant 1 and above need 43 input bytes)",
		},
	)

	app.Commands = []cli.Command{
		{
			Name:      "cryptonight",
			Aliases:   []string{"cn"},
			Usage:     "CryptoNight digest",
			ArgsUsage: "\n   (* = required)",
			Flags:     digestFlags(),
			Action:    runCryptonight,
		},
		{
			Name:      "cryptonight-light",
			Aliases:   []string{"cnl"},
			Usage:     "CryptoNight-light digest",
			ArgsUsage: "\n   (* = required)",
			Flags:     lightFlags,
			Action:    runCryptonightLight,
		},
		{
			Name:      "k12",
			Usage:     "KangarooTwelve digest",
			ArgsUsage: "\n   (* = required)",
			Flags:     digestFlags(),
			Action:    runK12,
		},
		{
			Name:      "result",
			Usage:     "poll a submitted job",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "job, j",
					Value: 0,
					Usage: "*job `ID` returned by an async request",
				},
			},
			Action: runResult,
		},
		{
			Name:   "info",
			Usage:  "display multihashd status",
			Action: runInfo,
		},
		{
			Name:   "functions",
			Usage:  "list the digest functions",
			Action: runFunctions,
		},
		{
			Name:  "version",
			Usage: "display multihash-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:   c.GlobalString("connect"),
			useTLS:    c.GlobalBool("tls"),
			zmq:       c.GlobalString("zmq"),
			serverKey: c.GlobalString("server-key"),
			verbose:   c.GlobalBool("verbose"),
			e:         c.App.ErrWriter,
			w:         c.App.Writer,
		}
		return nil
	}

	return app
}
