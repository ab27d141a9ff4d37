// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// errors are grouped into classes so a caller can decide how to
// report a failure without inspecting the message, e.g. a JSON RPC
// client receives an arity, type or precondition failure
// before any digest computation was attempted
package fault
