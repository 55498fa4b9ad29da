/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package auth

import (
	"crypto/rsa"
	"os"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// ParseRSAPrivateKeyPEM parses a PEM-encoded RSA private key (PKCS#1 or
// PKCS#8) for use with the RSA-SHA1 signature method and secure AuthSub.
func ParseRSAPrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	key, err := jwk.ParseKey(data, jwk.WithPEM(true))
	if err != nil {
		return nil, ErrorInvalidRSAKey.WithError(err)
	}
	return rawRSAKey(key)
}

// ParseRSAPrivateKeyJWK parses a JWK document holding an RSA private key.
func ParseRSAPrivateKeyJWK(data []byte) (*rsa.PrivateKey, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, ErrorInvalidRSAKey.WithError(err)
	}
	return rawRSAKey(key)
}

// LoadRSAPrivateKey reads and parses an RSA private key file. Files starting
// with a PEM boundary are parsed as PEM; anything else is parsed as JWK.
func LoadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrorInvalidRSAKey.WithError(err)
	}
	if len(data) > 0 && data[0] == '-' {
		return ParseRSAPrivateKeyPEM(data)
	}
	return ParseRSAPrivateKeyJWK(data)
}

func rawRSAKey(key jwk.Key) (*rsa.PrivateKey, error) {
	var rsaKey rsa.PrivateKey
	if err := key.Raw(&rsaKey); err != nil {
		return nil, ErrorInvalidRSAKey.WithError(err)
	}
	return &rsaKey, nil
}
