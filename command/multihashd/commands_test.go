// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/fault"
)

func TestGetFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, "rpc.crt", getFilenameWithDirectory(nil, "rpc.crt"), "wrong default")
	assert.Equal(t, "/etc/multihashd/rpc.crt", getFilenameWithDirectory([]string{"/etc/multihashd", "127.0.0.1"}, "rpc.crt"), "wrong directory")
}

func TestMakeSelfSignedCertificate(t *testing.T) {
	dir, err := ioutil.TempDir("", "certificate")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	certificateFile := filepath.Join(dir, rpcCertificateFilename)
	keyFile := filepath.Join(dir, rpcPrivateKeyFilename)

	err = makeSelfSignedCertificate("test", certificateFile, keyFile, []string{"127.0.0.1"})
	assert.Nil(t, err, "wrong makeSelfSignedCertificate")

	_, err = tls.LoadX509KeyPair(certificateFile, keyFile)
	assert.Nil(t, err, "generated pair does not load")

	info, err := os.Stat(keyFile)
	if assert.Nil(t, err, "missing key file") {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "wrong key permissions")
	}

	err = makeSelfSignedCertificate("test", certificateFile, keyFile, nil)
	assert.Equal(t, fault.CertificateFileAlreadyExists, err, "overwrote certificate")

	_ = os.Remove(certificateFile)
	err = makeSelfSignedCertificate("test", certificateFile, keyFile, nil)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "overwrote key")
}

func TestProcessConfigCommand(t *testing.T) {
	assert.False(t, processConfigCommand([]string{"start"}, &Configuration{}), "start handled as config command")
}
