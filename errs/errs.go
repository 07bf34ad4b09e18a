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

// Package errs declares the error kinds shared by the token and PASERK
// operations so that callers can classify a failure with errors.Is instead
// of parsing messages.
package errs

import "errors"

var (
	// ErrMalformedInput reports bad base64, an unknown version/purpose, or
	// the wrong number of dot-separated segments.
	ErrMalformedInput = errors.New("paseto: malformed input")

	// ErrLengthViolation reports a fixed-length invariant violation (key,
	// nonce, tag, or wire payload too short).
	ErrLengthViolation = errors.New("paseto: length violation")

	// ErrAuthenticationFailed reports a MAC or signature mismatch. It is
	// also what a key unwrap or unseal returns when the wrapped key does
	// not authenticate (including altered Argon2id parameters in a
	// password-wrapped key), so a caller cannot distinguish a wrong key
	// from tampered ciphertext. A bad prefix or base64 body and a body
	// that is too short keep their own kinds.
	ErrAuthenticationFailed = errors.New("paseto: authentication failed")

	// ErrParameterOutOfRange reports an invalid tunable, such as an
	// Argon2id memory cost that is not a positive multiple of 1024.
	ErrParameterOutOfRange = errors.New("paseto: parameter out of range")

	// ErrUnsupported reports a non-v4 version or an unrecognized purpose.
	ErrUnsupported = errors.New("paseto: unsupported")
)
