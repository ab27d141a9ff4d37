// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Proof-of-work digest daemon
//
// This program serves the cryptonight, cryptonight-light and k12
// digests over JSON-RPC and a ZeroMQ ROUTER socket.  Digests are
// computed on a pool of worker threads sized from max_cpu_usage and
// the configuration file is watched so the pool, rate limit and
// digest cache follow edits without a restart.
package main
