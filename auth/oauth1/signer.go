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

// Package oauth1 implements OAuth 1.0a request signing: the three signature
// engines, signature base string construction, and parameter normalization
// per RFC 5849.
package oauth1

import (
	"crypto"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // SHA1 is mandated by the OAuth 1.0a protocol.
	"encoding/base64"
	"encoding/hex"
)

// SignerInterface defines a stateless OAuth 1.0a signature engine. Engines are
// pure functions of the base string and are safe for concurrent use.
type SignerInterface interface {
	// Method returns the oauth_signature_method identifier of the engine.
	Method() string
	// Sign computes the signature for the given base string.
	Sign(baseString string) (string, error)
}

// HMACSHA1Signer implements the HMAC-SHA1 signature method. The signing key is
// the percent-encoded consumer secret and token secret joined by an ampersand;
// the token secret is empty for request token fetches and for 2-legged requests.
type HMACSHA1Signer struct {
	ConsumerSecret string
	TokenSecret    string
}

// Method returns the HMAC-SHA1 signature method identifier.
func (s *HMACSHA1Signer) Method() string {
	return SignatureMethodHMACSHA1
}

// Sign computes the base64-encoded HMAC-SHA1 signature of the base string.
func (s *HMACSHA1Signer) Sign(baseString string) (string, error) {
	key := Encode(s.ConsumerSecret) + "&" + Encode(s.TokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// RSASHA1Signer implements the RSA-SHA1 signature method using a PKCS#1
// private key.
type RSASHA1Signer struct {
	PrivateKey *rsa.PrivateKey
}

// Method returns the RSA-SHA1 signature method identifier.
func (s *RSASHA1Signer) Method() string {
	return SignatureMethodRSASHA1
}

// Sign computes the base64-encoded RSA-SHA1 signature of the base string.
func (s *RSASHA1Signer) Sign(baseString string) (string, error) {
	if s.PrivateKey == nil {
		return "", errMissingRSAKey
	}
	digest := sha1.Sum([]byte(baseString)) //nolint:gosec
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.PrivateKey, crypto.SHA1, digest[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

// PlaintextSigner implements the PLAINTEXT signature method. The "signature"
// is the percent-encoded secrets joined by an ampersand. Only valid over TLS.
type PlaintextSigner struct {
	ConsumerSecret string
	TokenSecret    string
}

// Method returns the PLAINTEXT signature method identifier.
func (s *PlaintextSigner) Method() string {
	return SignatureMethodPlaintext
}

// Sign returns the plaintext signature; the base string is not used.
func (s *PlaintextSigner) Sign(_ string) (string, error) {
	return Encode(s.ConsumerSecret) + "&" + Encode(s.TokenSecret), nil
}

// NewSigner creates a signature engine for the given oauth_signature_method
// identifier. The RSA private key is required only for RSA-SHA1.
func NewSigner(method, consumerSecret, tokenSecret string, privateKey *rsa.PrivateKey) (SignerInterface, error) {
	switch method {
	case SignatureMethodHMACSHA1:
		return &HMACSHA1Signer{ConsumerSecret: consumerSecret, TokenSecret: tokenSecret}, nil
	case SignatureMethodRSASHA1:
		if privateKey == nil {
			return nil, errMissingRSAKey
		}
		return &RSASHA1Signer{PrivateKey: privateKey}, nil
	case SignatureMethodPlaintext:
		return &PlaintextSigner{ConsumerSecret: consumerSecret, TokenSecret: tokenSecret}, nil
	default:
		return nil, errUnknownSignatureMethod(method)
	}
}

// GenerateNonce returns a fresh random nonce: 16 random bytes rendered as
// lowercase hex.
func GenerateNonce() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("nonce generation failed: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
