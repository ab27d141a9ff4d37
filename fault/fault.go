// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ArityError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PreconditionError GenericError
type PrimitiveError GenericError
type ProcessError GenericError
type TypeError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ConfigurationFileNotFound    = NotFoundError("configuration file not found")
	ExpectedBooleanOrUnsigned    = TypeError("expected boolean or unsigned integer")
	ExpectedBuffer               = TypeError("expected buffer")
	InvalidAlgorithm             = InvalidError("invalid algorithm")
	InvalidConfiguration         = InvalidError("configuration must return a table")
	InvalidHexInput              = TypeError("input is not valid hex")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidJob                   = InvalidError("invalid job")
	InvalidPoolSize              = InvalidError("invalid pool size")
	InvalidPrivateKey            = InvalidError("invalid private key")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKey             = InvalidError("invalid public key")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	JobNotFound                  = NotFoundError("job not found")
	JobTimeout                   = ProcessError("timed out waiting for job")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MinimumVariantInputLength    = PreconditionError("minimum 43 bytes for variant ≥ 1")
	MissingBuffer                = ArityError("missing buffer argument")
	MissingParameters            = InvalidError("missing parameters")
	NotConnected                 = NotFoundError("not connected")
	NotInitialised               = NotFoundError("not initialised")
	PoolStopped                  = ProcessError("hashing pool is stopped")
	PrimitiveUnavailable         = PrimitiveError("digest primitive is not available in this build")
	RateLimiting                 = InvalidError("rate limit exceeded")
	TooManyArguments             = ArityError("too many arguments")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ArityError) Error() string        { return string(e) }
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e PreconditionError) Error() string { return string(e) }
func (e PrimitiveError) Error() string    { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e TypeError) Error() string         { return string(e) }

// determine the class of an error
func IsErrArity(e error) bool        { _, ok := e.(ArityError); return ok }
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrPrecondition(e error) bool { _, ok := e.(PreconditionError); return ok }
func IsErrPrimitive(e error) bool    { _, ok := e.(PrimitiveError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }
func IsErrType(e error) bool         { _, ok := e.(TypeError); return ok }

// IsErrValidation - true for any failure detected before a digest
// primitive was invoked
func IsErrValidation(e error) bool {
	return IsErrArity(e) || IsErrType(e) || IsErrPrecondition(e)
}

// Class - short name of the error class, used on the wire
func Class(e error) string {
	switch e.(type) {
	case nil:
		return ""
	case ArityError:
		return "arity"
	case ExistsError:
		return "exists"
	case InvalidError:
		return "invalid"
	case NotFoundError:
		return "not-found"
	case PreconditionError:
		return "precondition"
	case PrimitiveError:
		return "primitive"
	case ProcessError:
		return "process"
	case TypeError:
		return "type"
	default:
		return "generic"
	}
}
