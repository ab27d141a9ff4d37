// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build cgo && cncrypto
// +build cgo,cncrypto

package primitive

// Backend - name of the compiled in primitives
const Backend = "native"

// Unavailable - every family is compiled in
var Unavailable = []string{}

// Default - the primitives selected at build time
func Default() Primitives {
	return NewNative()
}
