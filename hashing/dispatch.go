// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"fmt"

	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/primitive"
)

// dispatch - call exactly one primitive for a validated selector
//
// any failure inside a primitive, including a panic, is returned as
// a fault.PrimitiveError
func dispatch(p primitive.Primitives, selector Selector, input []byte) (d digest.Digest, err error) {
	name := primitiveName(selector)

	defer func() {
		if r := recover(); nil != r {
			d = digest.Digest{}
			err = fault.PrimitiveError(fmt.Sprintf("%s: %v", name, r))
		}
	}()

	switch selector.Algorithm {
	case Cryptonight:
		if ModeFast == selector.Mode.Kind {
			d, err = p.CryptonightFast(input)
		} else {
			d, err = p.Cryptonight(input)
		}
	case CryptonightLight:
		if ModeFast == selector.Mode.Kind {
			d, err = p.CryptonightFast(input)
		} else {
			d, err = p.CryptonightLight(input, selector.Mode.Variant)
		}
	case K12:
		d, err = p.K12(input)
	default:
		return digest.Digest{}, fault.InvalidAlgorithm
	}

	if nil != err {
		if !fault.IsErrPrimitive(err) {
			err = fault.PrimitiveError(fmt.Sprintf("%s: %s", name, err))
		}
		return digest.Digest{}, err
	}
	return d, nil
}

func primitiveName(selector Selector) string {
	switch selector.Algorithm {
	case Cryptonight, CryptonightLight:
		if ModeFast == selector.Mode.Kind {
			return primitive.CryptonightFastName
		}
		if CryptonightLight == selector.Algorithm {
			return primitive.CryptonightLightName
		}
		return primitive.CryptonightName
	case K12:
		return primitive.K12Name
	default:
		return "none"
	}
}
