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

package paserk

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/internal/common"
	"go.paseto4.dev/paseto/v4"
)

// PIE wrapping derives a one-time encryption/authentication subkey pair
// from the wrapping key and a random nonce, the same two-domain scheme
// v4.local uses for message encryption, but keyed by a LocalKey acting
// as a key-encryption-key rather than a content-encryption-key.
const (
	wrapKDFLength   = v4.KeyLength + 24 // Ek (32) || n2 (24)
	wrapAuthLength  = 32
	wrapNonceLength = 32
)

// Domain-separation tags for the two PIE wrap subkeys (spec §4.6).
var (
	wrapEncryptionDomain     = []byte{0x80}
	wrapAuthenticationDomain = []byte{0x81}
)

// WrapLocal implements k4.local-wrap.pie: wrap a LocalKey under another
// LocalKey acting as a key-encryption-key.
func WrapLocal(target *v4.LocalKey, wrappingKey *v4.LocalKey) (string, error) {
	return wrapPie(LocalWrapPiePrefix, target.Bytes(), wrappingKey)
}

// UnwrapLocal reverses WrapLocal.
func UnwrapLocal(token string, wrappingKey *v4.LocalKey) (*v4.LocalKey, error) {
	raw, err := unwrapPie(LocalWrapPiePrefix, token, wrappingKey)
	if err != nil {
		return nil, err
	}
	return v4.LocalKeyFromBytes(raw)
}

// WrapSecret implements k4.secret-wrap.pie: wrap a SecretKey under a
// LocalKey acting as a key-encryption-key.
func WrapSecret(target *v4.SecretKey, wrappingKey *v4.LocalKey) (string, error) {
	return wrapPie(SecretWrapPiePrefix, target[:], wrappingKey)
}

// UnwrapSecret reverses WrapSecret.
func UnwrapSecret(token string, wrappingKey *v4.LocalKey) (*v4.SecretKey, error) {
	raw, err := unwrapPie(SecretWrapPiePrefix, token, wrappingKey)
	if err != nil {
		return nil, err
	}
	return v4.SecretKeyFromBytes(raw)
}

func wrapKDF(wrappingKey *v4.LocalKey, n []byte) (ek, n2, ak []byte, err error) {
	encKDF, err := blake2b.New(wrapKDFLength, wrappingKey.Bytes())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paserk: unable to initialize wrap encryption kdf: %w", err)
	}
	encKDF.Write(wrapEncryptionDomain)
	encKDF.Write(n)
	tmp := encKDF.Sum(nil)
	ek = tmp[:v4.KeyLength]
	n2 = tmp[v4.KeyLength:]

	authKDF, err := blake2b.New(wrapAuthLength, wrappingKey.Bytes())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paserk: unable to initialize wrap authentication kdf: %w", err)
	}
	authKDF.Write(wrapAuthenticationDomain)
	authKDF.Write(n)
	ak = authKDF.Sum(nil)

	return ek, n2, ak, nil
}

// wrapPie encrypts payload under wrappingKey and authenticates the
// header, nonce, and ciphertext directly (no PAE framing -- the header
// is a fixed constant here, not attacker-influenced).
func wrapPie(header string, payload []byte, wrappingKey *v4.LocalKey) (string, error) {
	if wrappingKey == nil {
		return "", fmt.Errorf("paserk: wrapping key is nil: %w", errs.ErrLengthViolation)
	}

	var n [wrapNonceLength]byte
	if _, err := io.ReadFull(rand.Reader, n[:]); err != nil {
		return "", fmt.Errorf("paserk: unable to generate random nonce: %w", err)
	}

	ek, n2, ak, err := wrapKDF(wrappingKey, n[:])
	if err != nil {
		return "", err
	}
	defer common.Zero(ek)
	defer common.Zero(n2)
	defer common.Zero(ak)

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return "", fmt.Errorf("paserk: unable to initialize XChaCha20 cipher: %w", err)
	}
	c := make([]byte, len(payload))
	ciph.XORKeyStream(c, payload)

	tag, err := blake2b.New(wrapAuthLength, ak)
	if err != nil {
		return "", fmt.Errorf("paserk: unable to initialize wrap MAC: %w", err)
	}
	tag.Write([]byte(header))
	tag.Write(n[:])
	tag.Write(c)
	t := tag.Sum(nil)

	body := make([]byte, 0, len(t)+len(n)+len(c))
	body = append(body, t...)
	body = append(body, n[:]...)
	body = append(body, c...)

	return header + encodeRaw(body), nil
}

// unwrapPie reverses wrapPie, rejecting the payload unless the MAC
// verifies in constant time.
func unwrapPie(header, token string, wrappingKey *v4.LocalKey) ([]byte, error) {
	if wrappingKey == nil {
		return nil, fmt.Errorf("paserk: wrapping key is nil: %w", errs.ErrLengthViolation)
	}

	body, err := decodeWithPrefix(token, header)
	if err != nil {
		return nil, err
	}
	if len(body) < wrapAuthLength+wrapNonceLength {
		return nil, fmt.Errorf("paserk: wrapped key body too short: %w", errs.ErrLengthViolation)
	}

	t := body[:wrapAuthLength]
	n := body[wrapAuthLength : wrapAuthLength+wrapNonceLength]
	c := body[wrapAuthLength+wrapNonceLength:]

	ek, n2, ak, err := wrapKDF(wrappingKey, n)
	if err != nil {
		return nil, err
	}
	defer common.Zero(ek)
	defer common.Zero(n2)
	defer common.Zero(ak)

	tag, err := blake2b.New(wrapAuthLength, ak)
	if err != nil {
		return nil, fmt.Errorf("paserk: unable to initialize wrap MAC: %w", err)
	}
	tag.Write([]byte(header))
	tag.Write(n)
	tag.Write(c)
	t2 := tag.Sum(nil)

	if !common.SecureCompare(t, t2) {
		return nil, fmt.Errorf("paserk: invalid wrap authentication tag: %w", errs.ErrAuthenticationFailed)
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return nil, fmt.Errorf("paserk: unable to initialize XChaCha20 cipher: %w", err)
	}
	m := make([]byte, len(c))
	ciph.XORKeyStream(m, c)

	return m, nil
}
