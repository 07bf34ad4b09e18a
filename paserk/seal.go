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
	"golang.org/x/crypto/curve25519"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/internal/common"
	"go.paseto4.dev/paseto/v4"
)

const (
	sealTagLength   = 32
	sealEpkLength   = curve25519.PointSize
	sealNonceLength = 24
)

// Seal implements k4.seal: wrap a key (LocalKey bytes or SecretKey
// bytes) for a specific Ed25519 recipient using an ephemeral X25519
// Diffie-Hellman exchange, then erase the shared secret and the
// ephemeral private scalar.
func Seal(payload []byte, recipient *v4.PublicKey) (string, error) {
	if recipient == nil {
		return "", fmt.Errorf("paserk: recipient public key is nil: %w", errs.ErrLengthViolation)
	}

	xpk, err := ed25519PublicToX25519(recipient)
	if err != nil {
		return "", err
	}

	var esk [32]byte
	if _, err := io.ReadFull(rand.Reader, esk[:]); err != nil {
		return "", fmt.Errorf("paserk: unable to generate ephemeral key: %w", err)
	}
	defer common.Zero(esk[:])

	epk, err := curve25519.X25519(esk[:], curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("paserk: unable to derive ephemeral public key: %w", err)
	}

	xk, err := curve25519.X25519(esk[:], xpk)
	if err != nil {
		return "", fmt.Errorf("paserk: ECDH exchange failed: %w", errs.ErrLengthViolation)
	}
	defer common.Zero(xk)

	ek, ak, nonce, err := sealSubkeys(xk, epk, xpk)
	if err != nil {
		return "", err
	}
	defer common.Zero(ek)
	defer common.Zero(ak)

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce)
	if err != nil {
		return "", fmt.Errorf("paserk: unable to initialize XChaCha20 cipher: %w", err)
	}
	c := make([]byte, len(payload))
	ciph.XORKeyStream(c, payload)

	tag, err := blake2b.New(sealTagLength, ak)
	if err != nil {
		return "", fmt.Errorf("paserk: unable to initialize seal MAC: %w", err)
	}
	tag.Write([]byte(SealPrefix))
	tag.Write(epk)
	tag.Write(c)
	t := tag.Sum(nil)

	body := make([]byte, 0, sealTagLength+sealEpkLength+len(c))
	body = append(body, t...)
	body = append(body, epk...)
	body = append(body, c...)

	return SealPrefix + encodeRaw(body), nil
}

// Unseal reverses Seal using the recipient's Ed25519 secret key.
func Unseal(token string, recipient *v4.SecretKey) ([]byte, error) {
	if recipient == nil {
		return nil, fmt.Errorf("paserk: recipient secret key is nil: %w", errs.ErrLengthViolation)
	}

	body, err := decodeWithPrefix(token, SealPrefix)
	if err != nil {
		return nil, err
	}
	if len(body) < sealTagLength+sealEpkLength {
		return nil, fmt.Errorf("paserk: sealed key body too short: %w", errs.ErrLengthViolation)
	}

	t := body[:sealTagLength]
	epk := body[sealTagLength : sealTagLength+sealEpkLength]
	c := body[sealTagLength+sealEpkLength:]

	xsk := ed25519SeedToX25519(recipient.Seed())
	defer common.Zero(xsk)

	xpk, err := ed25519PublicToX25519(recipient.PublicKey())
	if err != nil {
		return nil, err
	}

	xk, err := curve25519.X25519(xsk, epk)
	if err != nil {
		return nil, fmt.Errorf("paserk: ECDH exchange failed: %w", errs.ErrLengthViolation)
	}
	defer common.Zero(xk)

	ek, ak, nonce, err := sealSubkeys(xk, epk, xpk)
	if err != nil {
		return nil, err
	}
	defer common.Zero(ek)
	defer common.Zero(ak)

	tag, err := blake2b.New(sealTagLength, ak)
	if err != nil {
		return nil, fmt.Errorf("paserk: unable to initialize seal MAC: %w", err)
	}
	tag.Write([]byte(SealPrefix))
	tag.Write(epk)
	tag.Write(c)
	t2 := tag.Sum(nil)

	if !common.SecureCompare(t, t2) {
		return nil, fmt.Errorf("paserk: invalid seal authentication tag: %w", errs.ErrAuthenticationFailed)
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce)
	if err != nil {
		return nil, fmt.Errorf("paserk: unable to initialize XChaCha20 cipher: %w", err)
	}
	m := make([]byte, len(c))
	ciph.XORKeyStream(m, c)

	return m, nil
}

// SealLocal seals a LocalKey for an Ed25519 recipient.
func SealLocal(target *v4.LocalKey, recipient *v4.PublicKey) (string, error) {
	return Seal(target.Bytes(), recipient)
}

// UnsealLocal reverses SealLocal.
func UnsealLocal(token string, recipient *v4.SecretKey) (*v4.LocalKey, error) {
	raw, err := Unseal(token, recipient)
	if err != nil {
		return nil, err
	}
	return v4.LocalKeyFromBytes(raw)
}

// sealSubkeys derives the encryption key, authentication key, and
// XChaCha20 nonce shared by Seal and Unseal from the ECDH secret and
// the two X25519 public points.
func sealSubkeys(xk, epk, xpk []byte) (ek, ak, nonce []byte, err error) {
	encHash, err := blake2b.New(v4.KeyLength, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paserk: unable to initialize seal encryption hash: %w", err)
	}
	encHash.Write([]byte{0x01})
	encHash.Write([]byte(SealPrefix))
	encHash.Write(xk)
	encHash.Write(epk)
	encHash.Write(xpk)
	ek = encHash.Sum(nil)

	authHash, err := blake2b.New(v4.KeyLength, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paserk: unable to initialize seal authentication hash: %w", err)
	}
	authHash.Write([]byte{0x02})
	authHash.Write([]byte(SealPrefix))
	authHash.Write(xk)
	authHash.Write(epk)
	authHash.Write(xpk)
	ak = authHash.Sum(nil)

	nonceHash, err := blake2b.New(sealNonceLength, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paserk: unable to initialize seal nonce hash: %w", err)
	}
	nonceHash.Write(epk)
	nonceHash.Write(xpk)
	nonce = nonceHash.Sum(nil)

	return ek, ak, nonce, nil
}
