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

// Package paserk implements the PASERK v4 key-serialization family:
// plain key encoding, key identifiers (lid/pid/sid), PIE symmetric
// wrapping, Argon2id password wrapping, and Ed25519/X25519 asymmetric
// sealing. It composes the v4 package's typed keys plus
// golang.org/x/crypto primitives; it does not depend on token encoding.
package paserk

import (
	"encoding/base64"
	"fmt"
	"strings"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/v4"
)

// Prefixes for every k4.* PASERK string form (spec §6, exhaustive).
const (
	LocalPrefix          = "k4.local."
	PublicPrefix         = "k4.public."
	SecretPrefix         = "k4.secret."
	LidPrefix            = "k4.lid."
	PidPrefix            = "k4.pid."
	SidPrefix            = "k4.sid."
	LocalWrapPiePrefix   = "k4.local-wrap.pie."
	SecretWrapPiePrefix  = "k4.secret-wrap.pie."
	LocalPasswordPrefix  = "k4.local-pw."
	SecretPasswordPrefix = "k4.secret-pw."
	SealPrefix           = "k4.seal."
)

// encodeRaw base64url-encodes raw without padding, the form every
// PASERK string body uses.
func encodeRaw(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// EncodeLocal renders a LocalKey as k4.local.<b64u(raw)>.
func EncodeLocal(key *v4.LocalKey) string {
	return LocalPrefix + encodeRaw(key.Bytes())
}

// DecodeLocal parses a k4.local. PASERK string back into a LocalKey.
func DecodeLocal(s string) (*v4.LocalKey, error) {
	raw, err := decodeWithPrefix(s, LocalPrefix)
	if err != nil {
		return nil, err
	}
	return v4.LocalKeyFromBytes(raw)
}

// EncodePublic renders a PublicKey as k4.public.<b64u(raw)>.
func EncodePublic(key *v4.PublicKey) string {
	return PublicPrefix + encodeRaw(key.Bytes())
}

// DecodePublic parses a k4.public. PASERK string back into a PublicKey.
func DecodePublic(s string) (*v4.PublicKey, error) {
	raw, err := decodeWithPrefix(s, PublicPrefix)
	if err != nil {
		return nil, err
	}
	return v4.PublicKeyFromBytes(raw)
}

// EncodeSecret renders a SecretKey as k4.secret.<b64u(seed||public)>.
func EncodeSecret(key *v4.SecretKey) string {
	return SecretPrefix + encodeRaw(key[:])
}

// DecodeSecret parses a k4.secret. PASERK string back into a SecretKey.
func DecodeSecret(s string) (*v4.SecretKey, error) {
	raw, err := decodeWithPrefix(s, SecretPrefix)
	if err != nil {
		return nil, err
	}
	return v4.SecretKeyFromBytes(raw)
}

// decodeWithPrefix strips the expected PASERK prefix and strictly
// base64url-decodes the remainder, rejecting padding.
func decodeWithPrefix(s, prefix string) ([]byte, error) {
	if !strings.HasPrefix(s, prefix) {
		return nil, fmt.Errorf("paserk: expected prefix %q: %w", prefix, errs.ErrMalformedInput)
	}
	body := s[len(prefix):]
	if strings.ContainsAny(body, "=") {
		return nil, fmt.Errorf("paserk: padding is not allowed: %w", errs.ErrMalformedInput)
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("paserk: invalid base64url: %w", errs.ErrMalformedInput)
	}
	return raw, nil
}
