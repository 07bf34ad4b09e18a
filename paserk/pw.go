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
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"

	"go.paseto4.dev/paseto/errs"
	"go.paseto4.dev/paseto/internal/common"
	"go.paseto4.dev/paseto/v4"
)

// Password-wrap fixed sizes and defaults (spec §4.7).
const (
	pwSaltLength  = 16
	pwNonceLength = 24
	pwTagLength   = 32

	// DefaultMemoryCost is the default Argon2id memory cost in KiB (64 MiB).
	DefaultMemoryCost = 64 * 1024
	// DefaultTimeCost is the default Argon2id iteration count.
	DefaultTimeCost = 2
	// DefaultParallelism is the default Argon2id lane count.
	DefaultParallelism = 1
)

// Argon2Params configures the Argon2id KDF used to derive a pre-key
// from a password. MemoryCost is in KiB and must be a positive
// multiple of 1024.
type Argon2Params struct {
	MemoryCost  uint32
	TimeCost    uint32
	Parallelism uint8
}

// DefaultArgon2Params returns the recommended baseline cost.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		MemoryCost:  DefaultMemoryCost,
		TimeCost:    DefaultTimeCost,
		Parallelism: DefaultParallelism,
	}
}

func (p Argon2Params) validate() error {
	if p.MemoryCost == 0 || p.MemoryCost%1024 != 0 {
		return fmt.Errorf("paserk: memory cost must be a positive multiple of 1024: %w", errs.ErrParameterOutOfRange)
	}
	if p.TimeCost == 0 {
		return fmt.Errorf("paserk: time cost must be positive: %w", errs.ErrParameterOutOfRange)
	}
	if p.Parallelism == 0 {
		return fmt.Errorf("paserk: parallelism must be positive: %w", errs.ErrParameterOutOfRange)
	}
	return nil
}

// WrapLocalPassword implements k4.local-pw: protect a LocalKey with a
// password-derived Argon2id pre-key.
func WrapLocalPassword(target *v4.LocalKey, password []byte, params Argon2Params) (string, error) {
	return wrapPw(LocalPasswordPrefix, target.Bytes(), password, params)
}

// UnwrapLocalPassword reverses WrapLocalPassword.
func UnwrapLocalPassword(token string, password []byte) (*v4.LocalKey, error) {
	raw, err := unwrapPw(LocalPasswordPrefix, token, password)
	if err != nil {
		return nil, err
	}
	return v4.LocalKeyFromBytes(raw)
}

// WrapSecretPassword implements k4.secret-pw: protect a SecretKey with
// a password-derived Argon2id pre-key.
func WrapSecretPassword(target *v4.SecretKey, password []byte, params Argon2Params) (string, error) {
	return wrapPw(SecretPasswordPrefix, target[:], password, params)
}

// UnwrapSecretPassword reverses WrapSecretPassword.
func UnwrapSecretPassword(token string, password []byte) (*v4.SecretKey, error) {
	raw, err := unwrapPw(SecretPasswordPrefix, token, password)
	if err != nil {
		return nil, err
	}
	return v4.SecretKeyFromBytes(raw)
}

// pwSubkeys derives the encryption and authentication subkeys from an
// Argon2id pre-key, using single-byte domain-separation prefixes.
func pwSubkeys(preKey []byte) (ek, ak []byte, err error) {
	encHash, err := blake2b.New(v4.KeyLength, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("paserk: unable to initialize pw encryption hash: %w", err)
	}
	encHash.Write([]byte{0xff})
	encHash.Write(preKey)
	ek = encHash.Sum(nil)

	authHash, err := blake2b.New(v4.KeyLength, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("paserk: unable to initialize pw authentication hash: %w", err)
	}
	authHash.Write([]byte{0xfe})
	authHash.Write(preKey)
	ak = authHash.Sum(nil)

	return ek, ak, nil
}

func wrapPw(header string, payload, password []byte, params Argon2Params) (string, error) {
	if err := params.validate(); err != nil {
		return "", err
	}

	var salt [pwSaltLength]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return "", fmt.Errorf("paserk: unable to generate random salt: %w", err)
	}
	var nonce [pwNonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("paserk: unable to generate random nonce: %w", err)
	}

	preKey := argon2.IDKey(password, salt[:], params.TimeCost, params.MemoryCost, params.Parallelism, v4.KeyLength)
	defer common.Zero(preKey)

	ek, ak, err := pwSubkeys(preKey)
	if err != nil {
		return "", err
	}
	defer common.Zero(ek)
	defer common.Zero(ak)

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce[:])
	if err != nil {
		return "", fmt.Errorf("paserk: unable to initialize XChaCha20 cipher: %w", err)
	}
	c := make([]byte, len(payload))
	ciph.XORKeyStream(c, payload)

	params64 := pwParamBytes(params)

	tag, err := blake2b.New(pwTagLength, ak)
	if err != nil {
		return "", fmt.Errorf("paserk: unable to initialize pw MAC: %w", err)
	}
	tag.Write([]byte(header))
	tag.Write(salt[:])
	tag.Write(params64)
	tag.Write(nonce[:])
	tag.Write(c)
	t := tag.Sum(nil)

	body := make([]byte, 0, pwSaltLength+len(params64)+pwNonceLength+len(c)+pwTagLength)
	body = append(body, salt[:]...)
	body = append(body, params64...)
	body = append(body, nonce[:]...)
	body = append(body, c...)
	body = append(body, t...)

	return header + encodeRaw(body), nil
}

func unwrapPw(header, token string, password []byte) ([]byte, error) {
	body, err := decodeWithPrefix(token, header)
	if err != nil {
		return nil, err
	}
	const fixed = pwSaltLength + 8 + 4 + 4 + pwNonceLength + pwTagLength
	if len(body) < fixed {
		return nil, fmt.Errorf("paserk: password-wrapped key body too short: %w", errs.ErrLengthViolation)
	}

	salt := body[0:pwSaltLength]
	params64 := body[pwSaltLength : pwSaltLength+16]
	nonce := body[pwSaltLength+16 : pwSaltLength+16+pwNonceLength]
	c := body[pwSaltLength+16+pwNonceLength : len(body)-pwTagLength]
	t := body[len(body)-pwTagLength:]

	params, err := parsePwParams(params64)
	if err != nil {
		// Altered parameters are reported like any other tampering.
		return nil, fmt.Errorf("paserk: invalid password-wrapped key parameters: %w", errs.ErrAuthenticationFailed)
	}

	preKey := argon2.IDKey(password, salt, params.TimeCost, params.MemoryCost, params.Parallelism, v4.KeyLength)
	defer common.Zero(preKey)

	ek, ak, err := pwSubkeys(preKey)
	if err != nil {
		return nil, err
	}
	defer common.Zero(ek)
	defer common.Zero(ak)

	tag, err := blake2b.New(pwTagLength, ak)
	if err != nil {
		return nil, fmt.Errorf("paserk: unable to initialize pw MAC: %w", err)
	}
	tag.Write([]byte(header))
	tag.Write(salt)
	tag.Write(params64)
	tag.Write(nonce)
	tag.Write(c)
	t2 := tag.Sum(nil)

	if !common.SecureCompare(t, t2) {
		return nil, fmt.Errorf("paserk: invalid password authentication tag: %w", errs.ErrAuthenticationFailed)
	}

	ciph, err := chacha20.NewUnauthenticatedCipher(ek, nonce)
	if err != nil {
		return nil, fmt.Errorf("paserk: unable to initialize XChaCha20 cipher: %w", err)
	}
	m := make([]byte, len(c))
	ciph.XORKeyStream(m, c)

	return m, nil
}

// pwParamBytes encodes mem(8,BE) || time(4,BE) || par(4,BE), the
// network-order layout PaserkPw uses (PAE's length prefixes are
// little-endian; this framing deliberately is not PAE).
func pwParamBytes(p Argon2Params) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], uint64(p.MemoryCost))
	binary.BigEndian.PutUint32(buf[8:12], p.TimeCost)
	binary.BigEndian.PutUint32(buf[12:16], uint32(p.Parallelism))
	return buf
}

func parsePwParams(buf []byte) (Argon2Params, error) {
	p := Argon2Params{
		MemoryCost:  uint32(binary.BigEndian.Uint64(buf[0:8])),
		TimeCost:    binary.BigEndian.Uint32(buf[8:12]),
		Parallelism: uint8(binary.BigEndian.Uint32(buf[12:16])),
	}
	if err := p.validate(); err != nil {
		return Argon2Params{}, err
	}
	return p, nil
}
