// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build cgo && cncrypto
// +build cgo,cncrypto

package primitive

// #cgo CFLAGS: -std=c11 -D_GNU_SOURCE
// #cgo LDFLAGS: -lmultihashing -lstdc++
// #include <stdlib.h>
// #include <stdint.h>
//
// void cryptonight_hash(const char* input, char* output, uint32_t len);
// void cryptonight_fast_hash(const char* input, char* output, uint32_t len);
// void cryptonight_light_hash(const char* input, char* output, uint32_t len, int variant);
// void k12_hash(const char* input, char* output, uint32_t len);
import "C"

import (
	"math"
	"unsafe"

	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/fault"
)

var errInputTooLong = fault.PrimitiveError("input exceeds 4 GiB")

type native struct{}

// NewNative - primitives from the C library libmultihashing
func NewNative() Primitives {
	return native{}
}

// a zero length slice has no first element to point at
func inputPointer(input []byte) *C.char {
	if 0 == len(input) {
		return nil
	}
	return (*C.char)(unsafe.Pointer(&input[0]))
}

func outputPointer(d *digest.Digest) *C.char {
	return (*C.char)(unsafe.Pointer(&d[0]))
}

func checkLength(input []byte) error {
	if uint64(len(input)) > math.MaxUint32 {
		return errInputTooLong
	}
	return nil
}

func (native) Cryptonight(input []byte) (digest.Digest, error) {
	var d digest.Digest
	if err := checkLength(input); nil != err {
		return d, err
	}
	C.cryptonight_hash(inputPointer(input), outputPointer(&d), C.uint32_t(len(input)))
	return d, nil
}

func (native) CryptonightFast(input []byte) (digest.Digest, error) {
	var d digest.Digest
	if err := checkLength(input); nil != err {
		return d, err
	}
	C.cryptonight_fast_hash(inputPointer(input), outputPointer(&d), C.uint32_t(len(input)))
	return d, nil
}

func (native) CryptonightLight(input []byte, variant uint32) (digest.Digest, error) {
	var d digest.Digest
	if err := checkLength(input); nil != err {
		return d, err
	}
	C.cryptonight_light_hash(inputPointer(input), outputPointer(&d), C.uint32_t(len(input)), C.int(variant))
	return d, nil
}

func (native) K12(input []byte) (digest.Digest, error) {
	var d digest.Digest
	if err := checkLength(input); nil != err {
		return d, err
	}
	C.k12_hash(inputPointer(input), outputPointer(&d), C.uint32_t(len(input)))
	return d, nil
}
