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
	"io"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/internal/common"
)

// KeyLength is the requested symmetric encryption key size.
const KeyLength = 32

// SeedLength is the Ed25519 seed size embedded at the front of a SecretKey.
const SeedLength = ed25519.SeedSize

// SecretKeyLength is seed (32) || public key (32).
const SecretKeyLength = ed25519.PrivateKeySize

// PublicKeyLength is the Ed25519 public key size.
const PublicKeyLength = ed25519.PublicKeySize

// LocalKey is 32 bytes of uniformly random material used for v4.local
// encryption. Its length is fixed; a nil or wrong-length value does not
// exist as a LocalKey.
type LocalKey [KeyLength]byte

// GenerateLocalKey generates a key for local encryption from r.
func GenerateLocalKey(r io.Reader) (*LocalKey, error) {
	var key LocalKey
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return nil, fmt.Errorf("paseto: unable to generate a random key: %w", err)
	}
	return &key, nil
}

// LocalKeyFromBytes copies raw into a LocalKey, enforcing the length
// invariant.
func LocalKeyFromBytes(raw []byte) (*LocalKey, error) {
	if len(raw) != KeyLength {
		return nil, fmt.Errorf("paseto: invalid local key length: %w", errs.ErrLengthViolation)
	}
	var key LocalKey
	copy(key[:], raw)
	return &key, nil
}

// Bytes returns the raw key material. The caller must not retain the
// returned slice past the key's lifetime.
func (k *LocalKey) Bytes() []byte {
	return k[:]
}

// Destroy zeroizes the key buffer.
func (k *LocalKey) Destroy() {
	common.Zero(k[:])
}

// SecretKey is 64 bytes: a 32-byte Ed25519 seed followed by the 32-byte
// Ed25519 public key it derives.
type SecretKey [SecretKeyLength]byte

// GenerateSecretKey generates an Ed25519 key pair from r and packs it as
// seed || public key.
func GenerateSecretKey(r io.Reader) (*SecretKey, error) {
	pub, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, fmt.Errorf("paseto: unable to generate a secret key: %w", err)
	}
	var sk SecretKey
	copy(sk[:SeedLength], priv.Seed())
	copy(sk[SeedLength:], pub)
	return &sk, nil
}

// SecretKeyFromSeed derives a SecretKey from a 32-byte Ed25519 seed.
func SecretKeyFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) != SeedLength {
		return nil, fmt.Errorf("paseto: invalid seed length: %w", errs.ErrLengthViolation)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var sk SecretKey
	copy(sk[:SeedLength], seed)
	copy(sk[SeedLength:], priv.Public().(ed25519.PublicKey))
	return &sk, nil
}

// SecretKeyFromBytes copies raw (seed || public key) into a SecretKey,
// enforcing both the length invariant and that the public key half
// matches the Ed25519 public key derived from the seed half.
func SecretKeyFromBytes(raw []byte) (*SecretKey, error) {
	if len(raw) != SecretKeyLength {
		return nil, fmt.Errorf("paseto: invalid secret key length: %w", errs.ErrLengthViolation)
	}
	priv := ed25519.NewKeyFromSeed(raw[:SeedLength])
	if !common.SecureCompare(priv.Public().(ed25519.PublicKey), raw[SeedLength:]) {
		return nil, fmt.Errorf("paseto: secret key public half does not match its seed: %w", errs.ErrLengthViolation)
	}
	var sk SecretKey
	copy(sk[:], raw)
	return &sk, nil
}

// Seed returns the 32-byte Ed25519 seed half.
func (k *SecretKey) Seed() []byte {
	return k[:SeedLength]
}

// PublicKey returns the public key half as a standalone PublicKey.
func (k *SecretKey) PublicKey() *PublicKey {
	var pk PublicKey
	copy(pk[:], k[SeedLength:])
	return &pk
}

// Ed25519 returns the standard library private key view of this key,
// suitable for crypto/ed25519.Sign.
func (k *SecretKey) Ed25519() ed25519.PrivateKey {
	return ed25519.PrivateKey(k[:])
}

// Destroy zeroizes the key buffer.
func (k *SecretKey) Destroy() {
	common.Zero(k[:])
}

// PublicKey is a 32-byte Ed25519 public key.
type PublicKey [PublicKeyLength]byte

// PublicKeyFromBytes copies raw into a PublicKey, enforcing the length
// invariant.
func PublicKeyFromBytes(raw []byte) (*PublicKey, error) {
	if len(raw) != PublicKeyLength {
		return nil, fmt.Errorf("paseto: invalid public key length: %w", errs.ErrLengthViolation)
	}
	var pk PublicKey
	copy(pk[:], raw)
	return &pk, nil
}

// Bytes returns the raw key material.
func (k *PublicKey) Bytes() []byte {
	return k[:]
}

// Ed25519 returns the standard library public key view of this key,
// suitable for crypto/ed25519.Verify.
func (k *PublicKey) Ed25519() ed25519.PublicKey {
	return ed25519.PublicKey(k[:])
}
