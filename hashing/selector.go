// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"fmt"

	"github.com/bitmark-inc/multihashd/fault"
)

// Algorithm - a digest family
type Algorithm int

// the supported families, zero is invalid
const (
	invalidAlgorithm Algorithm = iota
	Cryptonight
	CryptonightLight
	K12
)

// ModeKind - how an algorithm is run
type ModeKind int

// mode kinds
const (
	ModeNone ModeKind = iota
	ModeStandard
	ModeFast
	ModeVariant
)

// Mode - tagged mode value, Variant is only meaningful for ModeVariant
type Mode struct {
	Kind    ModeKind
	Variant uint32
}

// Selector - algorithm together with its mode
type Selector struct {
	Algorithm Algorithm
	Mode      Mode
}

// minimum input size for CryptoNight-light variants 1 and above
const MinimumVariantInputLength = 43

// Standard - plain CryptoNight
func Standard() Mode { return Mode{Kind: ModeStandard} }

// Fast - the Keccak stage only
func Fast() Mode { return Mode{Kind: ModeFast} }

// Variant - a numbered CryptoNight-light revision
func Variant(n uint32) Mode { return Mode{Kind: ModeVariant, Variant: n} }

// ParseAlgorithm - accepts the family names and the exported
// function names
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "cryptonight", "CNAsync":
		return Cryptonight, nil
	case "cryptonight-light", "cryptonight_light", "CNLAsync":
		return CryptonightLight, nil
	case "k12", "K12Async":
		return K12, nil
	default:
		return invalidAlgorithm, fault.InvalidAlgorithm
	}
}

func (a Algorithm) String() string {
	switch a {
	case Cryptonight:
		return "cryptonight"
	case CryptonightLight:
		return "cryptonight-light"
	case K12:
		return "k12"
	default:
		return "invalid"
	}
}

// MarshalText - algorithms travel as their names
func (a Algorithm) MarshalText() ([]byte, error) {
	if invalidAlgorithm == a {
		return nil, fault.InvalidAlgorithm
	}
	return []byte(a.String()), nil
}

// UnmarshalText - convert a name back to an algorithm
func (a *Algorithm) UnmarshalText(s []byte) error {
	algorithm, err := ParseAlgorithm(string(s))
	if nil != err {
		return err
	}
	*a = algorithm
	return nil
}

// DefaultMode - the mode used when a call gives none
func (a Algorithm) DefaultMode() Mode {
	switch a {
	case Cryptonight:
		return Standard()
	case CryptonightLight:
		return Variant(0)
	default:
		return Mode{}
	}
}

func (m Mode) String() string {
	switch m.Kind {
	case ModeStandard:
		return "standard"
	case ModeFast:
		return "fast"
	case ModeVariant:
		return fmt.Sprintf("variant-%d", m.Variant)
	default:
		return "none"
	}
}

// String - used in log lines and as the cache key prefix
func (s Selector) String() string {
	if ModeNone == s.Mode.Kind {
		return s.Algorithm.String()
	}
	return s.Algorithm.String() + "/" + s.Mode.String()
}

// valid - the mode must belong to the algorithm
func (s Selector) valid() bool {
	switch s.Algorithm {
	case Cryptonight:
		return ModeStandard == s.Mode.Kind || ModeFast == s.Mode.Kind
	case CryptonightLight:
		return ModeFast == s.Mode.Kind || ModeVariant == s.Mode.Kind
	case K12:
		return ModeNone == s.Mode.Kind
	default:
		return false
	}
}

// needs a minimum length input
func (s Selector) minimumLength() int {
	if ModeVariant == s.Mode.Kind && s.Mode.Variant >= 1 {
		return MinimumVariantInputLength
	}
	return 0
}
