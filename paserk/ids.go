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
	"fmt"

	"golang.org/x/crypto/blake2b"

	"go.paseto4.dev/paseto/v4"
)

// idLength is the digest size of a PASERK key identifier (33 bytes,
// per the k4.lid/k4.pid/k4.sid definition).
const idLength = 33

// Lid computes the k4.lid. identifier of a LocalKey: a BLAKE2b-264
// digest of the key's k4.local. PASERK string.
func Lid(key *v4.LocalKey) (string, error) {
	return identifier(LidPrefix, EncodeLocal(key))
}

// Pid computes the k4.pid. identifier of a PublicKey.
func Pid(key *v4.PublicKey) (string, error) {
	return identifier(PidPrefix, EncodePublic(key))
}

// Sid computes the k4.sid. identifier of a SecretKey.
func Sid(key *v4.SecretKey) (string, error) {
	return identifier(SidPrefix, EncodeSecret(key))
}

// identifier hashes "<idPrefix><paserk>" with BLAKE2b-264 and renders
// the digest as "<idPrefix><b64u(digest)>".
func identifier(idPrefix, paserk string) (string, error) {
	h, err := blake2b.New(idLength, nil)
	if err != nil {
		return "", fmt.Errorf("paserk: unable to initialize identifier hash: %w", err)
	}
	h.Write([]byte(idPrefix))
	h.Write([]byte(paserk))

	return idPrefix + encodeRaw(h.Sum(nil)), nil
}
