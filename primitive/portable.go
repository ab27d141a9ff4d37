// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitive

import (
	"ekyu.moe/cryptonight"
	"github.com/cloudflare/circl/xof/k12"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/fault"
)

// original CryptoNight, variant 0
const portableCryptonightVariant = 0

type portable struct{}

// NewPortable - pure Go primitives
//
// CryptoNight-light has no pure Go implementation and always returns
// fault.PrimitiveUnavailable; build with the cncrypto tag to link the
// native library instead
func NewPortable() Primitives {
	return portable{}
}

func (portable) Cryptonight(input []byte) (digest.Digest, error) {
	return digest.FromBytes(cryptonight.Sum(input, portableCryptonightVariant))
}

// the fast hash is the Keccak-256 stage of CryptoNight on its own
func (portable) CryptonightFast(input []byte) (digest.Digest, error) {
	var d digest.Digest
	h := sha3.NewLegacyKeccak256()
	h.Write(input)
	h.Sum(d[:0])
	return d, nil
}

func (portable) CryptonightLight(_ []byte, _ uint32) (digest.Digest, error) {
	return digest.Digest{}, fault.PrimitiveUnavailable
}

// KangarooTwelve with an empty customisation string
func (portable) K12(input []byte) (digest.Digest, error) {
	var d digest.Digest
	k12.Draft10Sum(d[:], input, nil)
	return d, nil
}
