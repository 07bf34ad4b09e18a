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
	"crypto/ed25519"
	"fmt"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/internal/common"
)

// Sign implements the v4.public signature primitive: Ed25519 over the
// PAE-encoded header, message, footer, and implicit assertion.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version4.md#sign
func Sign(content []byte, sk *SecretKey, footer, implicit []byte) (string, error) {
	if sk == nil {
		return "", fmt.Errorf("paseto: secret key is nil: %w", errs.ErrLengthViolation)
	}

	header := Header{Purpose: Public}

	preAuth, err := common.PreAuthenticationEncoding([]byte(header.String()), content, footer, implicit)
	if err != nil {
		return "", fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	sig := ed25519.Sign(sk.Ed25519(), preAuth)

	payload := make([]byte, 0, len(content)+ed25519.SignatureSize)
	payload = append(payload, content...)
	payload = append(payload, sig...)

	tok := Token{Header: header, Payload: payload, Footer: footer}
	return tok.Serialize(), nil
}

// Verify implements the v4.public verification primitive.
// https://github.com/paseto-standard/paseto-spec/blob/master/docs/01-Protocol-Versions/Version4.md#verify
func Verify(token string, pk *PublicKey, implicit []byte) (content, footer []byte, err error) {
	if pk == nil {
		return nil, nil, fmt.Errorf("paseto: public key is nil: %w", errs.ErrLengthViolation)
	}

	tok, err := Parse(token)
	if err != nil {
		return nil, nil, err
	}
	if tok.Header.Purpose != Public {
		return nil, nil, fmt.Errorf("paseto: expected a public token: %w", errs.ErrUnsupported)
	}

	raw := tok.Payload
	m := raw[:len(raw)-ed25519.SignatureSize]
	sig := raw[len(raw)-ed25519.SignatureSize:]

	preAuth, err := common.PreAuthenticationEncoding([]byte(tok.Header.String()), m, tok.Footer, implicit)
	if err != nil {
		return nil, nil, fmt.Errorf("paseto: unable to compute pre-authentication content: %w", err)
	}

	if !ed25519.Verify(pk.Ed25519(), preAuth, sig) {
		return nil, nil, fmt.Errorf("paseto: invalid signature: %w", errs.ErrAuthenticationFailed)
	}

	return m, tok.Footer, nil
}
