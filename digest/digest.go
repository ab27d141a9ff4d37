// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/hex"

	"github.com/bitmark-inc/multihashd/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - fixed size output of every supported primitive
//
// stored in the order the primitive wrote it
// represented as hex text for print and JSON encoding
type Digest [Length]byte

// ErrLength - a byte slice could not be converted
var ErrLength = fault.InvalidError("digest length is invalid")

// FromBytes - convert and validate a byte slice to a digest
func FromBytes(buffer []byte) (Digest, error) {
	var d Digest
	if Length != len(buffer) {
		return d, ErrLength
	}
	copy(d[:], buffer)
	return d, nil
}

// Bytes - a freshly allocated copy of the digest
func (d Digest) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, d[:])
	return b
}

// IsZero - true if no byte was ever written
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String - hex string for use by the fmt package (for %s)
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// GoString - for use by the fmt package (for %#v)
func (d Digest) GoString() string {
	return "<digest:" + hex.EncodeToString(d[:]) + ">"
}

// MarshalText - convert digest to hex text
func (d Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, d[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (d *Digest) UnmarshalText(s []byte) error {
	if hex.EncodedLen(Length) != len(s) {
		return ErrLength
	}
	_, err := hex.Decode(d[:], s)
	return err
}
