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

// Package paseto is the top-level entry point: encrypt/decrypt and
// sign/verify tokens, and wrap or seal the keys that protect them. It
// composes the v4 and paserk packages so callers who only need the
// common path don't have to reach into either.
package paseto

import (
	"crypto/rand"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/paserk"
	"go.paseto4.dev/paseto/v4"
)

// Re-exported key types and errors so callers depend on a single
// import path for the common path.
type (
	LocalKey  = v4.LocalKey
	SecretKey = v4.SecretKey
	PublicKey = v4.PublicKey
)

var (
	ErrMalformedInput       = errs.ErrMalformedInput
	ErrLengthViolation      = errs.ErrLengthViolation
	ErrAuthenticationFailed = errs.ErrAuthenticationFailed
	ErrParameterOutOfRange  = errs.ErrParameterOutOfRange
	ErrUnsupported          = errs.ErrUnsupported
)

// GenerateLocalKey generates a random v4.local encryption key.
func GenerateLocalKey() (*LocalKey, error) {
	return v4.GenerateLocalKey(rand.Reader)
}

// GenerateSecretKey generates a random Ed25519 signing key pair.
func GenerateSecretKey() (*SecretKey, error) {
	return v4.GenerateSecretKey(rand.Reader)
}

// Encrypt produces a v4.local token: content is confidential, footer
// is authenticated but travels in clear, implicit never appears on
// the wire and must be supplied identically on decrypt.
func Encrypt(key *LocalKey, content, footer, implicit []byte) (string, error) {
	return v4.Encrypt(rand.Reader, key, content, footer, implicit)
}

// Decrypt verifies and opens a v4.local token, returning its content
// and footer. The footer is part of the returned value, not a
// caller-supplied expectation: its authenticity is established by the
// token's own MAC.
func Decrypt(key *LocalKey, token string, implicit []byte) (content, footer []byte, err error) {
	return v4.Decrypt(key, token, implicit)
}

// Sign produces a v4.public token.
func Sign(content []byte, sk *SecretKey, footer, implicit []byte) (string, error) {
	return v4.Sign(content, sk, footer, implicit)
}

// Verify checks a v4.public token's signature, returning its content
// and footer.
func Verify(token string, pk *PublicKey, implicit []byte) (content, footer []byte, err error) {
	return v4.Verify(token, pk, implicit)
}

// WrapLocalKey protects a LocalKey under another LocalKey, producing a
// k4.local-wrap.pie. string.
func WrapLocalKey(target, wrappingKey *LocalKey) (string, error) {
	return paserk.WrapLocal(target, wrappingKey)
}

// UnwrapLocalKey reverses WrapLocalKey.
func UnwrapLocalKey(token string, wrappingKey *LocalKey) (*LocalKey, error) {
	return paserk.UnwrapLocal(token, wrappingKey)
}

// WrapSecretKey protects a SecretKey under a LocalKey, producing a
// k4.secret-wrap.pie. string.
func WrapSecretKey(target *SecretKey, wrappingKey *LocalKey) (string, error) {
	return paserk.WrapSecret(target, wrappingKey)
}

// UnwrapSecretKey reverses WrapSecretKey.
func UnwrapSecretKey(token string, wrappingKey *LocalKey) (*SecretKey, error) {
	return paserk.UnwrapSecret(token, wrappingKey)
}

// SealLocalKey seals a LocalKey for a specific Ed25519 recipient,
// producing a k4.seal. string that only that recipient's SecretKey can
// open.
func SealLocalKey(target *LocalKey, recipient *PublicKey) (string, error) {
	return paserk.SealLocal(target, recipient)
}

// UnsealLocalKey reverses SealLocalKey.
func UnsealLocalKey(token string, recipient *SecretKey) (*LocalKey, error) {
	return paserk.UnsealLocal(token, recipient)
}

// ProtectLocalKeyWithPassword wraps a LocalKey behind an Argon2id
// password-derived key, producing a k4.local-pw. string. Use
// paserk.DefaultArgon2Params for a reasonable default cost.
func ProtectLocalKeyWithPassword(target *LocalKey, password []byte, params paserk.Argon2Params) (string, error) {
	return paserk.WrapLocalPassword(target, password, params)
}

// RecoverLocalKeyWithPassword reverses ProtectLocalKeyWithPassword.
func RecoverLocalKeyWithPassword(token string, password []byte) (*LocalKey, error) {
	return paserk.UnwrapLocalPassword(token, password)
}

// Identify returns the deterministic k4.lid. identifier of a LocalKey.
func Identify(key *LocalKey) (string, error) {
	return paserk.Lid(key)
}
