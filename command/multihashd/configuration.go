// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/configuration"
	"github.com/bitmark-inc/multihashd/rpc"
	"github.com/bitmark-inc/multihashd/rpc/ratelimit"
	"github.com/bitmark-inc/multihashd/zmqserver"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLogDirectory = "log"
	defaultLogFile      = "multihashd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultMaxCPUUsage   = 50
	defaultRPCClients    = 10
	defaultResultExpiry  = "10m"
	defaultCacheExpiry   = "5m"
	defaultReloadDelay   = "2s"
	maximumMaxCPUUsage   = 100
	minimumQueueDepth    = 0
	disabledCacheSetting = "0"
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// CacheType - digest memo settings, expiry "0" disables the cache
type CacheType struct {
	Expiry string `gluamapper:"expiry" json:"expiry"`
}

// Configuration - everything read from the Lua configuration file
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`
	ProfileHTTP   string `gluamapper:"profile_http" json:"profile_http"`
	MaxCPUUsage   int    `gluamapper:"max_cpu_usage" json:"max_cpu_usage"`
	QueueDepth    int    `gluamapper:"queue_depth" json:"queue_depth"`
	ReloadDelay   string `gluamapper:"reload_delay" json:"reload_delay"`

	Cache     CacheType               `gluamapper:"cache" json:"cache"`
	ClientRPC rpc.Configuration       `gluamapper:"client_rpc" json:"client_rpc"`
	ZMQ       zmqserver.Configuration `gluamapper:"zmq" json:"zmq"`
	Logging   logger.Configuration    `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		MaxCPUUsage:   defaultMaxCPUUsage,
		ReloadDelay:   defaultReloadDelay,

		Cache: CacheType{
			Expiry: defaultCacheExpiry,
		},

		ClientRPC: rpc.Configuration{
			MaximumConnections: defaultRPCClients,
			RequestRate:        ratelimit.DefaultLimit,
			RequestBurst:       ratelimit.DefaultBurst,
			ResultExpiry:       defaultResultExpiry,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if options.MaxCPUUsage <= 0 || options.MaxCPUUsage > maximumMaxCPUUsage {
		options.MaxCPUUsage = defaultMaxCPUUsage
	}

	if options.QueueDepth < minimumQueueDepth {
		return nil, fmt.Errorf("QueueDepth: %d is negative", options.QueueDepth)
	}

	if options.ClientRPC.RequestRate <= 0 {
		options.ClientRPC.RequestRate = ratelimit.DefaultLimit
	}
	if options.ClientRPC.RequestBurst <= 0 {
		options.ClientRPC.RequestBurst = ratelimit.DefaultBurst
	}

	for _, d := range []struct {
		name  string
		value string
	}{
		{"reload_delay", options.ReloadDelay},
		{"cache.expiry", options.Cache.Expiry},
		{"client_rpc.result_expiry", options.ClientRPC.ResultExpiry},
	} {
		if "" == d.value {
			continue
		}
		if _, err := time.ParseDuration(d.value); nil != err {
			return nil, fmt.Errorf("Duration: %s = %q is invalid: %s", d.name, d.value, err)
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator
	mustNotBePaths := []*string{
		&options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Logging.Directory,
	} {
		*d = configuration.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// cacheExpiry - zero when the digest cache is disabled
func (c *Configuration) cacheExpiry() time.Duration {
	if "" == c.Cache.Expiry || disabledCacheSetting == c.Cache.Expiry {
		return 0
	}
	d, _ := time.ParseDuration(c.Cache.Expiry)
	return d
}

func (c *Configuration) reloadDelay() time.Duration {
	d, _ := time.ParseDuration(c.ReloadDelay)
	return d
}
