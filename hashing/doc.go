// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashing - validate, dispatch and run digest requests
//
// a request is checked once at the boundary by Validate, which turns
// the loosely typed call arguments into a Request holding an explicit
// Selector; nothing downstream inspects argument types again
//
// a Hasher runs requests either on the calling goroutine (Invoke and
// the per-algorithm methods) or as a Job on a worker pool (Submit and
// the ...Async methods); every job delivers exactly one Result
package hashing
