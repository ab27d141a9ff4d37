// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"time"

	"github.com/bitmark-inc/certgen"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// validity of generated certificates
const selfSignedValidity = 10 * 365 * 24 * time.Hour

// Get - build a server TLS configuration from PEM data, the
// fingerprint identifies the certificate to clients
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = Fingerprint(keyPair.Certificate[0])
	log.Infof("%s: SHA3-256 fingerprint: %x", name, fin)

	return tlsConfiguration, fin, nil
}

// SelfSigned - create a PEM certificate and key pair
func SelfSigned(name string, extraHosts []string) (certificate []byte, key []byte, err error) {
	org := "multihashd self signed cert for: " + name
	validUntil := time.Now().Add(selfSignedValidity)
	return certgen.NewTLSCertPair(org, validUntil, false, extraHosts)
}

// Fingerprint - SHA3-256 of a DER certificate
//
// openssl x509 -outform DER -in multihashd-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
