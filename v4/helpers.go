// Licensed to SolID under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. SolID licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package v4

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"go.paseto4.dev/paseto/internal/common"
)

const (
	nonceLength             = 32
	macLength               = 32
	encryptionKDFLength     = KeyLength + 24 // Ek (32) || n2 (24)
	authenticationKeyLength = 32

	encryptionDomain     = "paseto-encryption-key"
	authenticationDomain = "paseto-auth-key-for-aead"
)

// kdf derives the encryption key Ek, the XChaCha20 nonce n2, and the
// authentication key Ak from a LocalKey and a 32-byte per-message nonce,
// per the v4.local key-derivation schedule.
func kdf(key *LocalKey, n []byte) (ek, n2, ak []byte, err error) {
	if key == nil {
		return nil, nil, nil, fmt.Errorf("paseto: unable to derive keys from a nil key")
	}

	// Domain separation: the same key derives two independent subkeys.
	encKDF, err := blake2b.New(encryptionKDFLength, key[:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paseto: unable to initialize encryption kdf: %w", err)
	}
	encKDF.Write([]byte(encryptionDomain))
	encKDF.Write(n)
	tmp := encKDF.Sum(nil)

	ek = tmp[:KeyLength]
	n2 = tmp[KeyLength:]

	authKDF, err := blake2b.New(authenticationKeyLength, key[:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paseto: unable to initialize authentication kdf: %w", err)
	}
	authKDF.Write([]byte(authenticationDomain))
	authKDF.Write(n)
	ak = authKDF.Sum(nil)

	return ek, n2, ak, nil
}

// mac computes the BLAKE2b-keyed tag over PAE([h, n, c, f, i]).
func mac(ak []byte, h string, n, c, f, i []byte) ([]byte, error) {
	preAuth, err := common.PreAuthenticationEncoding([]byte(h), n, c, f, i)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	hash, err := blake2b.New(macLength, ak)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to initialize MAC: %w", err)
	}
	hash.Write(preAuth)

	return hash.Sum(nil), nil
}
