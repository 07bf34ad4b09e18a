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
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// https://github.com/paseto-standard/test-vectors/blob/master/v4.json
func Test_Paseto_PublicVector(t *testing.T) {
	testCases := []struct {
		name              string
		publicKey         string
		secretKeySeed     string
		token             string
		payload           []byte
		footer            string
		implicitAssertion string
	}{
		{
			name:              "4-S-1",
			publicKey:         "1eb9dbbbbc047c03fd70604e0071f0987e16b28b757225c11f00415d0e20b1a2",
			secretKeySeed:     "b4cbfb43df4ce210727d953e4a713307fa19bb7d9f85041438d9e11b942a3774",
			token:             "v4.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAyMi0wMS0wMVQwMDowMDowMCswMDowMCJ9bg_XBBzds8lTZShVlwwKSgeKpLT3yukTw6JUz3W4h_ExsQV-P0V54zemZDcAxFaSeef1QlXEFtkqxT1ciiQEDA",
			payload:           []byte("{\"data\":\"this is a signed message\",\"exp\":\"2022-01-01T00:00:00+00:00\"}"),
			footer:            "",
			implicitAssertion: "",
		},
		{
			name:              "4-S-2",
			publicKey:         "1eb9dbbbbc047c03fd70604e0071f0987e16b28b757225c11f00415d0e20b1a2",
			secretKeySeed:     "b4cbfb43df4ce210727d953e4a713307fa19bb7d9f85041438d9e11b942a3774",
			token:             "v4.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAyMi0wMS0wMVQwMDowMDowMCswMDowMCJ9v3Jt8mx_TdM2ceTGoqwrh4yDFn0XsHvvV_D0DtwQxVrJEBMl0F2caAdgnpKlt4p7xBnx1HcO-SPo8FPp214HDw.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
			payload:           []byte("{\"data\":\"this is a signed message\",\"exp\":\"2022-01-01T00:00:00+00:00\"}"),
			footer:            "{\"kid\":\"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN\"}",
			implicitAssertion: "",
		},
		{
			name:              "4-S-3",
			publicKey:         "1eb9dbbbbc047c03fd70604e0071f0987e16b28b757225c11f00415d0e20b1a2",
			secretKeySeed:     "b4cbfb43df4ce210727d953e4a713307fa19bb7d9f85041438d9e11b942a3774",
			token:             "v4.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAyMi0wMS0wMVQwMDowMDowMCswMDowMCJ9NPWciuD3d0o5eXJXG5pJy-DiVEoyPYWs1YSTwWHNJq6DZD3je5gf-0M4JR9ipdUSJbIovzmBECeaWmaqcaP0DQ.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9",
			payload:           []byte("{\"data\":\"this is a signed message\",\"exp\":\"2022-01-01T00:00:00+00:00\"}"),
			footer:            "{\"kid\":\"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN\"}",
			implicitAssertion: "{\"test-vector\":\"4-S-3\"}",
		},
	}

	for _, tc := range testCases {
		testCase := tc
		t.Run(testCase.name, func(t *testing.T) {
			wantPublicKey, err := hex.DecodeString(testCase.publicKey)
			require.NoError(t, err)
			seed, err := hex.DecodeString(testCase.secretKeySeed)
			require.NoError(t, err)

			sk, err := SecretKeyFromSeed(seed)
			require.NoError(t, err)
			assert.Equal(t, wantPublicKey, sk.PublicKey().Bytes())

			token, err := Sign(testCase.payload, sk, []byte(testCase.footer), []byte(testCase.implicitAssertion))
			require.NoError(t, err)
			assert.Equal(t, testCase.token, token)

			message, footer, err := Verify(testCase.token, sk.PublicKey(), []byte(testCase.implicitAssertion))
			require.NoError(t, err)
			assert.Equal(t, testCase.payload, message)
			assert.Equal(t, []byte(testCase.footer), footer)
		})
	}
}

func Test_Paseto_Public_BadSignature(t *testing.T) {
	seed, err := hex.DecodeString("b4cbfb43df4ce210727d953e4a713307fa19bb7d9f85041438d9e11b942a3774")
	require.NoError(t, err)
	sk, err := SecretKeyFromSeed(seed)
	require.NoError(t, err)

	other, err := SecretKeyFromSeed(make([]byte, SeedLength))
	require.NoError(t, err)

	token, err := Sign([]byte("hello"), sk, nil, nil)
	require.NoError(t, err)

	_, _, err = Verify(token, other.PublicKey(), nil)
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func benchmarkSign(m []byte, sk *SecretKey, f, i []byte, b *testing.B) {
	for n := 0; n < b.N; n++ {
		_, err := Sign(m, sk, f, i)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Paseto_Sign(b *testing.B) {
	seed, err := hex.DecodeString("b4cbfb43df4ce210727d953e4a713307fa19bb7d9f85041438d9e11b942a3774")
	assert.NoError(b, err)
	sk, err := SecretKeyFromSeed(seed)
	assert.NoError(b, err)

	m := []byte("{\"data\":\"this is a signed message\",\"exp\":\"2022-01-01T00:00:00+00:00\"}")
	f := []byte("{\"kid\":\"zVhMiPBP9fRf2snEcT7gFTioeA9COcNy9DfgL1W60haN\"}")
	i := []byte("{\"test-vector\":\"4-S-3\"}")

	b.ReportAllocs()
	b.ResetTimer()

	benchmarkSign(m, sk, f, i, b)
}

func benchmarkVerify(token string, pk *PublicKey, i []byte, b *testing.B) {
	for n := 0; n < b.N; n++ {
		_, _, err := Verify(token, pk, i)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Paseto_Verify(b *testing.B) {
	pkBytes, err := hex.DecodeString("1eb9dbbbbc047c03fd70604e0071f0987e16b28b757225c11f00415d0e20b1a2")
	assert.NoError(b, err)
	pk, err := PublicKeyFromBytes(pkBytes)
	assert.NoError(b, err)

	token := "v4.public.eyJkYXRhIjoidGhpcyBpcyBhIHNpZ25lZCBtZXNzYWdlIiwiZXhwIjoiMjAyMi0wMS0wMVQwMDowMDowMCswMDowMCJ9NPWciuD3d0o5eXJXG5pJy-DiVEoyPYWs1YSTwWHNJq6DZD3je5gf-0M4JR9ipdUSJbIovzmBECeaWmaqcaP0DQ.eyJraWQiOiJ6VmhNaVBCUDlmUmYyc25FY1Q3Z0ZUaW9lQTlDT2NOeTlEZmdMMVc2MGhhTiJ9"
	i := []byte("{\"test-vector\":\"4-S-3\"}")

	b.ReportAllocs()
	b.ResetTimer()

	benchmarkVerify(token, pk, i, b)
}
