// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command line client for multihashd
//
// Digests can be computed on a running daemon over JSON-RPC or the
// ZeroMQ endpoint, or in process with --local.
package main
