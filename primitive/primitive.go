// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package primitive - the digest functions themselves
//
// each function is pure: the same input always gives the same 32
// byte digest, no state is shared between calls and any number of
// goroutines may call them at once
package primitive

//go:generate mockgen -destination=../mocks/primitive.go -package=mocks github.com/bitmark-inc/multihashd/primitive Primitives

import (
	"github.com/bitmark-inc/multihashd/digest"
)

// names used in log messages and errors
const (
	CryptonightName      = "cryptonight"
	CryptonightFastName  = "cryptonight_fast"
	CryptonightLightName = "cryptonight_light"
	K12Name              = "k12"
)

// Primitives - the four digest functions the hasher dispatches to
type Primitives interface {
	Cryptonight(input []byte) (digest.Digest, error)
	CryptonightFast(input []byte) (digest.Digest, error)
	CryptonightLight(input []byte, variant uint32) (digest.Digest, error)
	K12(input []byte) (digest.Digest, error)
}
