// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqserver - asynchronous digests over a ZeroMQ ROUTER socket
//
// request:  [identity, "", {"id": ..., "algorithm": ..., "input": hex, "mode": ...}]
// reply:    [identity, "", {"id": ..., "ok": true, "job": n, "digest": hex}]
//       or  [identity, "", {"id": ..., "ok": false, "error": ..., "class": ...}]
//
// a request that fails validation is answered at once, otherwise the
// reply is sent when the job completes; replies to one client are not
// ordered
package zmqserver
