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
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/v4"
)

// ed25519PublicToX25519 performs the birational map from an Ed25519
// public key's twisted Edwards point to its Montgomery u-coordinate,
// the conversion k4.seal needs to turn a signing key into a Diffie-
// Hellman key.
func ed25519PublicToX25519(pub *v4.PublicKey) ([]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(pub.Bytes())
	if err != nil {
		return nil, fmt.Errorf("paserk: invalid Ed25519 public key point: %w", errs.ErrLengthViolation)
	}
	return p.BytesMontgomery(), nil
}

// ed25519SeedToX25519 derives the X25519 private scalar from an
// Ed25519 seed: SHA-512 the seed and clamp the first half, exactly as
// Ed25519 derives its own signing scalar.
func ed25519SeedToX25519(seed []byte) []byte {
	h := sha512.Sum512(seed)
	x := h[:32]
	x[0] &= 248
	x[31] &= 127
	x[31] |= 64
	return x
}
