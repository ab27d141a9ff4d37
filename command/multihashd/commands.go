// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/multihashd/configuration"
	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/primitive"
	"github.com/bitmark-inc/multihashd/rpc/certificate"
	"github.com/bitmark-inc/multihashd/zmqutil"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"

	zmqPublicKeyFilename  = "zmq.public"
	zmqPrivateKeyFilename = "zmq.private"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal state or the configuration
// file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "generate-certificate", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "generate-identity", "id":
		publicKeyFilename := getFilenameWithDirectory(arguments, zmqPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, zmqPrivateKeyFilename)

		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "functions", "f":
		printFunctions()

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "start", "run":
		return false // continue processing

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                          (h)    - display this message\n\n")
		fmt.Printf("  version                       (v)    - display version sting\n\n")

		fmt.Printf("  generate-certificate [DIR]    (rpc)  - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                         and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  generate-certificate DIR [IPs...]    - as above with extra host addresses\n")
		fmt.Printf("\n")

		fmt.Printf("  generate-identity [DIR]       (id)   - create private key in: %q\n", "DIR/"+zmqPrivateKeyFilename)
		fmt.Printf("                                         and the public key in: %q\n", "DIR/"+zmqPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  functions                     (f)    - list the digest functions\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                   (cfg)  - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  start                         (run)  - just run the program, same as no arguments\n")
		fmt.Printf("                                         for convienience when passing script arguments\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}
	return true
}

// configuration command handler
//
// commands that only inspect the parsed configuration
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		buffer, err := json.MarshalIndent(options, "", "  ")
		if nil != err {
			exitwithstatus.Message("configuration encode error: %s", err)
		}
		fmt.Printf("%s\n", buffer)
		return true
	}
	return false
}

func printFunctions() {
	fmt.Printf("backend: %s\n", primitive.Backend)
	if len(primitive.Unavailable) > 0 {
		fmt.Printf("unavailable in this build: %s\n", strings.Join(primitive.Unavailable, ", "))
	}
	for _, f := range hashing.Functions() {
		kind := "sync"
		if f.Async {
			kind = "async"
		}
		fmt.Printf("  %-18s %-6s %s (default mode: %s)\n", f.Name, kind, f.Algorithm, f.Algorithm.DefaultMode())
	}
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, extraHosts []string) error {

	if configuration.EnsureFileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if configuration.EnsureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	cert, key, err := certificate.SelfSigned(name, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		_ = os.Remove(certificateFileName)
		return err
	}

	return nil
}
