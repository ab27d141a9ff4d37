// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/configuration"
	"github.com/bitmark-inc/multihashd/fault"
)

type listenType struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections"`
	Listen             []string `gluamapper:"listen"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	MaxCPUUsage   int               `gluamapper:"max_cpu_usage"`
	RequestRate   float64           `gluamapper:"request_rate"`
	Client        listenType        `gluamapper:"client_rpc"`
	Levels        map[string]string `gluamapper:"levels"`
	Argument      string            `gluamapper:"argument"`
}

const testScript = `
local M = {}

M.data_directory = "."
M.max_cpu_usage = 40 + 10
M.request_rate = 12.5

M.client_rpc = {
    maximum_connections = 5,
    listen = {
        "127.0.0.1:2150",
        "[::1]:2150",
    },
}

M.levels = {
    main = "info",
    hasher = "debug",
}

M.argument = arg[0]

return M
`

func writeScript(t *testing.T, text string) (string, func()) {
	dir, err := ioutil.TempDir("", "configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "test.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		t.Fatalf("write error: %s", err)
	}
	return fileName, func() {
		_ = os.RemoveAll(dir)
	}
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, remove := writeScript(t, testScript)
	defer remove()

	options := &testConfiguration{
		MaxCPUUsage: 1,
	}
	err := configuration.ParseConfigurationFile(fileName, options)
	assert.Nil(t, err, "wrong parse")

	assert.Equal(t, ".", options.DataDirectory, "wrong data directory")
	assert.Equal(t, 50, options.MaxCPUUsage, "wrong cpu usage")
	assert.Equal(t, 12.5, options.RequestRate, "wrong request rate")
	assert.Equal(t, uint64(5), options.Client.MaximumConnections, "wrong connections")
	assert.Equal(t, []string{"127.0.0.1:2150", "[::1]:2150"}, options.Client.Listen, "wrong listen")
	assert.Equal(t, map[string]string{"main": "info", "hasher": "debug"}, options.Levels, "wrong levels")
	assert.Equal(t, fileName, options.Argument, "wrong arg[0]")
}

func TestParseConfigurationFileDefaultsKept(t *testing.T) {
	fileName, remove := writeScript(t, "return { max_cpu_usage = 75 }\n")
	defer remove()

	options := &testConfiguration{
		DataDirectory: "/var/lib/multihashd",
		RequestRate:   200,
	}
	err := configuration.ParseConfigurationFile(fileName, options)
	assert.Nil(t, err, "wrong parse")
	assert.Equal(t, "/var/lib/multihashd", options.DataDirectory, "default overwritten")
	assert.Equal(t, 200.0, options.RequestRate, "default overwritten")
	assert.Equal(t, 75, options.MaxCPUUsage, "wrong cpu usage")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	options := &testConfiguration{}

	err := configuration.ParseConfigurationFile("/no/such/file.conf", options)
	assert.NotNil(t, err, "missing file accepted")

	fileName, remove := writeScript(t, "return {\n")
	defer remove()
	err = configuration.ParseConfigurationFile(fileName, options)
	assert.NotNil(t, err, "syntax error accepted")

	notTable, removeNotTable := writeScript(t, "return 42\n")
	defer removeNotTable()
	err = configuration.ParseConfigurationFile(notTable, options)
	assert.Equal(t, fault.InvalidConfiguration, err, "wrong error")
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data", "log"), "relative not joined")
	assert.Equal(t, "/var/log", configuration.EnsureAbsolute("/data", "/var/log"), "absolute changed")
	assert.Equal(t, "/data/x", configuration.EnsureAbsolute("/data/", "./y/../x"), "not cleaned")

	assert.False(t, configuration.EnsureFileExists("/no/such/file"), "missing file exists")
	assert.True(t, configuration.EnsureFileExists(os.TempDir()), "temp dir missing")
}
