// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/bitmark-inc/multihashd/fault"
)

// Buffer - any byte buffer like value
type Buffer interface {
	Bytes() []byte
}

// Request - a validated input and selector
//
// Input is not copied, it must not be changed while the request is
// in use
type Request struct {
	Selector Selector
	Input    []byte
}

// NewRequest - check an already typed selector against an input
func NewRequest(selector Selector, input []byte) (Request, error) {
	if nil == input {
		return Request{}, fault.MissingBuffer
	}
	if !selector.valid() {
		return Request{}, fault.InvalidAlgorithm
	}
	if len(input) < selector.minimumLength() {
		return Request{}, fault.MinimumVariantInputLength
	}
	return Request{
		Selector: selector,
		Input:    input,
	}, nil
}

// Validate - convert raw call arguments into a request
//
// args[0] is the input buffer, args[1] the optional mode: a boolean
// for cryptonight (true is fast), a boolean or unsigned integer for
// cryptonight-light (true is fast, otherwise the variant id) and
// nothing at all for k12
func Validate(algorithm Algorithm, args ...interface{}) (Request, error) {
	maximum := 2
	switch algorithm {
	case Cryptonight, CryptonightLight:
	case K12:
		maximum = 1
	default:
		return Request{}, fault.InvalidAlgorithm
	}

	if 0 == len(args) || nil == args[0] {
		return Request{}, fault.MissingBuffer
	}
	if len(args) > maximum {
		return Request{}, fault.TooManyArguments
	}

	input, err := bufferArgument(args[0])
	if nil != err {
		return Request{}, err
	}

	mode := algorithm.DefaultMode()
	if len(args) > 1 && nil != args[1] {
		switch algorithm {
		case Cryptonight:
			mode, err = cryptonightMode(args[1])
		case CryptonightLight:
			mode, err = lightMode(args[1])
		}
		if nil != err {
			return Request{}, err
		}
	}

	return NewRequest(Selector{Algorithm: algorithm, Mode: mode}, input)
}

func bufferArgument(arg interface{}) ([]byte, error) {
	switch b := arg.(type) {
	case []byte:
		if nil == b {
			return nil, fault.MissingBuffer
		}
		return b, nil
	case Buffer:
		if isNilValue(b) {
			return nil, fault.MissingBuffer
		}
		buffer := b.Bytes()
		if nil == buffer {
			return []byte{}, nil
		}
		return buffer, nil
	default:
		return nil, fault.ExpectedBuffer
	}
}

// a typed nil inside an interface, e.g. (*bytes.Buffer)(nil)
func isNilValue(b Buffer) bool {
	v := reflect.ValueOf(b)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// integers are rejected with the same error as any other non-boolean
func cryptonightMode(arg interface{}) (Mode, error) {
	fast, ok := arg.(bool)
	if !ok {
		return Mode{}, fault.ExpectedBooleanOrUnsigned
	}
	if fast {
		return Fast(), nil
	}
	return Standard(), nil
}

// false selects variant 0, the same as giving no mode
func lightMode(arg interface{}) (Mode, error) {
	if fast, ok := arg.(bool); ok {
		if fast {
			return Fast(), nil
		}
		return Variant(0), nil
	}
	n, ok := unsignedArgument(arg)
	if !ok {
		return Mode{}, fault.ExpectedBooleanOrUnsigned
	}
	return Variant(n), nil
}

// integers of any width, plus the integral floats and numbers that
// JSON decoding produces
func unsignedArgument(arg interface{}) (uint32, bool) {
	var i int64
	switch n := arg.(type) {
	case int:
		i = int64(n)
	case int8:
		i = int64(n)
	case int16:
		i = int64(n)
	case int32:
		i = int64(n)
	case int64:
		i = n
	case uint:
		return fitUnsigned(uint64(n))
	case uint8:
		return uint32(n), true
	case uint16:
		return uint32(n), true
	case uint32:
		return n, true
	case uint64:
		return fitUnsigned(n)
	case float32:
		return integralFloat(float64(n))
	case float64:
		return integralFloat(n)
	case json.Number:
		v, err := n.Int64()
		if nil != err {
			return 0, false
		}
		i = v
	default:
		return 0, false
	}
	if i < 0 {
		return 0, false
	}
	return fitUnsigned(uint64(i))
}

func fitUnsigned(n uint64) (uint32, bool) {
	if n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

func integralFloat(f float64) (uint32, bool) {
	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, false
	}
	return uint32(f), true
}
