// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !cgo || !cncrypto
// +build !cgo !cncrypto

package primitive

// Backend - name of the compiled in primitives
const Backend = "portable"

// Unavailable - algorithm families that always fail with
// fault.PrimitiveUnavailable in this build
var Unavailable = []string{"cryptonight-light"}

// Default - the primitives selected at build time
func Default() Primitives {
	return NewPortable()
}
