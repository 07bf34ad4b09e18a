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
	"io"

	"golang.org/x/crypto/chacha20"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/internal/common"
)

// Encrypt implements the v4.local AEAD construction: derive per-message
// subkeys, encrypt with XChaCha20, and authenticate the result (plus
// footer and implicit assertion) with a BLAKE2b-keyed tag.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version4.md#encrypt
func Encrypt(r io.Reader, key *LocalKey, content, footer, implicit []byte) (string, error) {
	if key == nil {
		return "", fmt.Errorf("paseto: key is nil: %w", errs.ErrLengthViolation)
	}

	header := Header{Purpose: Local}

	var n [nonceLength]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return "", fmt.Errorf("paseto: unable to generate random nonce: %w", err)
	}

	ek, n2, ak, err := kdf(key, n[:])
	if err != nil {
		return "", fmt.Errorf("paseto: unable to derive keys from nonce: %w", err)
	}
	defer common.Zero(ek)
	defer common.Zero(n2)
	defer common.Zero(ak)

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to initialize XChaCha20 cipher: %w", err)
	}

	c := make([]byte, len(content))
	ciph.XORKeyStream(c, content)

	t, err := mac(ak, header.String(), n[:], c, footer, implicit)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to compute MAC: %w", err)
	}

	payload := make([]byte, 0, nonceLength+len(c)+macLength)
	payload = append(payload, n[:]...)
	payload = append(payload, c...)
	payload = append(payload, t...)

	tok := Token{Header: header, Payload: payload, Footer: footer}
	return tok.Serialize(), nil
}

// Decrypt implements the v4.local decryption and verification primitive.
// Plaintext is never returned unless the MAC check passes; failure paths
// never expose partial content.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version4.md#decrypt
func Decrypt(key *LocalKey, token string, implicit []byte) (content, footer []byte, err error) {
	if key == nil {
		return nil, nil, fmt.Errorf("paseto: key is nil: %w", errs.ErrLengthViolation)
	}

	tok, err := Parse(token)
	if err != nil {
		return nil, nil, err
	}
	if tok.Header.Purpose != Local {
		return nil, nil, fmt.Errorf("paseto: expected a local token: %w", errs.ErrUnsupported)
	}

	raw := tok.Payload
	n := raw[:nonceLength]
	t := raw[len(raw)-macLength:]
	c := raw[nonceLength : len(raw)-macLength]

	ek, n2, ak, err := kdf(key, n)
	if err != nil {
		return nil, nil, fmt.Errorf("paseto: unable to derive keys from nonce: %w", err)
	}
	defer common.Zero(ek)
	defer common.Zero(n2)
	defer common.Zero(ak)

	t2, err := mac(ak, tok.Header.String(), n, c, tok.Footer, implicit)
	if err != nil {
		return nil, nil, fmt.Errorf("paseto: unable to compute MAC: %w", err)
	}

	if !common.SecureCompare(t, t2) {
		return nil, nil, fmt.Errorf("paseto: invalid authentication tag: %w", errs.ErrAuthenticationFailed)
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, n2)
	if err != nil {
		return nil, nil, fmt.Errorf("paseto: unable to initialize XChaCha20 cipher: %w", err)
	}

	m := make([]byte, len(c))
	ciph.XORKeyStream(m, c)

	return m, tok.Footer, nil
}
