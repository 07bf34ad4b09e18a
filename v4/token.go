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
	"encoding/base64"
	"fmt"
	"strings"

	"go.paseto4.dev/paseto/errs"
)

// Purpose is the second component of a token header.
type Purpose string

const (
	// Local marks an authenticated-encrypted (v4.local) token.
	Local Purpose = "local"
	// Public marks a digitally signed (v4.public) token.
	Public Purpose = "public"
)

// minimum wire payload lengths per purpose, from the PASERK/PASETO v4
// layouts: local is nonce(32) || ciphertext(n>=0) || mac(32); public is
// message(n>=0) || signature(64).
const (
	minLocalPayload  = nonceLength + macLength
	minPublicPayload = ed25519.SignatureSize
)

// Header identifies a PASETO version and purpose. Only v4 is supported.
type Header struct {
	Purpose Purpose
}

// String renders the header's wire prefix, e.g. "v4.local.".
func (h Header) String() string {
	return "v4." + string(h.Purpose) + "."
}

// Token is a parsed PASETO string: its header, the raw (already
// base64url-decoded) payload bytes, and an optional footer.
type Token struct {
	Header  Header
	Payload []byte
	Footer  []byte
}

// Serialize renders the token to its wire string form:
// version.purpose.b64u(payload)[.b64u(footer)].
func (t Token) Serialize() string {
	var b strings.Builder
	b.WriteString(t.Header.String())
	b.WriteString(base64.RawURLEncoding.EncodeToString(t.Payload))
	if len(t.Footer) > 0 {
		b.WriteByte('.')
		b.WriteString(base64.RawURLEncoding.EncodeToString(t.Footer))
	}
	return b.String()
}

// Parse splits a token string into its header, payload, and footer,
// rejecting unknown versions/purposes, non-base64url characters, padding,
// and payloads shorter than the purpose's minimum wire length.
func Parse(s string) (Token, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 3 || len(parts) > 4 {
		return Token{}, fmt.Errorf("paseto: expected 3 or 4 dot-separated segments: %w", errs.ErrMalformedInput)
	}

	if parts[0] != "v4" {
		return Token{}, fmt.Errorf("paseto: unsupported version %q: %w", parts[0], errs.ErrUnsupported)
	}

	var purpose Purpose
	switch parts[1] {
	case string(Local):
		purpose = Local
	case string(Public):
		purpose = Public
	default:
		return Token{}, fmt.Errorf("paseto: unsupported purpose %q: %w", parts[1], errs.ErrUnsupported)
	}

	payload, err := decodeStrict(parts[2])
	if err != nil {
		return Token{}, fmt.Errorf("paseto: invalid payload encoding: %w", errs.ErrMalformedInput)
	}

	var footer []byte
	if len(parts) == 4 {
		footer, err = decodeStrict(parts[3])
		if err != nil {
			return Token{}, fmt.Errorf("paseto: invalid footer encoding: %w", errs.ErrMalformedInput)
		}
	}

	minLen := minLocalPayload
	if purpose == Public {
		minLen = minPublicPayload
	}
	if len(payload) < minLen {
		return Token{}, fmt.Errorf("paseto: payload too short for %s: %w", purpose, errs.ErrLengthViolation)
	}

	return Token{
		Header:  Header{Purpose: purpose},
		Payload: payload,
		Footer:  footer,
	}, nil
}

// decodeStrict rejects '=' padding and anything base64.RawURLEncoding
// itself would not already reject (whitespace, '+', '/').
func decodeStrict(s string) ([]byte, error) {
	if strings.ContainsAny(s, "=") {
		return nil, fmt.Errorf("paseto: padding is not allowed")
	}
	// RawURLEncoding silently skips CR and LF, so reject them here.
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("paseto: whitespace is not allowed")
	}
	return base64.RawURLEncoding.DecodeString(s)
}
