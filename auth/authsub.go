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
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // SHA1 is mandated by the secure AuthSub protocol.
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/gdata-go-client/auth/oauth1"
	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/utils"
)

// AuthSubToken is an AuthSub credential. A single-use token becomes a session
// token after the upgrade exchange. When a private key is present the token is
// a secure AuthSub token and every request additionally carries an RSA-SHA1
// signature over the AuthSub data string.
type AuthSubToken struct {
	token      string
	scopes     []string
	session    bool
	privateKey *rsa.PrivateKey

	// clock and nonce are injectable for reproducible secure signatures.
	clock func() time.Time
	nonce func() string
}

// NewAuthSubToken creates a single-use AuthSub token for the given scope URLs.
func NewAuthSubToken(token string, scopes []string) (*AuthSubToken, error) {
	return newAuthSubToken(token, scopes, false, nil)
}

// NewAuthSubSessionToken creates a session AuthSub token for the given scope URLs.
func NewAuthSubSessionToken(token string, scopes []string) (*AuthSubToken, error) {
	return newAuthSubToken(token, scopes, true, nil)
}

// NewSecureAuthSubToken creates an AuthSub token whose requests are signed
// with the given RSA private key.
func NewSecureAuthSubToken(token string, scopes []string, privateKey *rsa.PrivateKey) (*AuthSubToken, error) {
	if privateKey == nil {
		return nil, ErrorInvalidRSAKey.WithDescription("a private key is required for a secure AuthSub token")
	}
	return newAuthSubToken(token, scopes, false, privateKey)
}

func newAuthSubToken(token string, scopes []string, session bool, privateKey *rsa.PrivateKey) (*AuthSubToken, error) {
	if token == "" {
		return nil, &ErrorMissingTokenValue
	}
	if len(scopes) == 0 {
		return nil, &ErrorMissingScope
	}
	return &AuthSubToken{
		token:      token,
		scopes:     utils.CopyStringSlice(scopes),
		session:    session,
		privateKey: privateKey,
		clock:      time.Now,
		nonce:      oauth1.GenerateNonce,
	}, nil
}

// Type returns the credential scheme of the token.
func (t *AuthSubToken) Type() TokenType {
	return TokenTypeAuthSub
}

// Scopes returns the scope URLs the token was issued for.
func (t *AuthSubToken) Scopes() []string {
	return t.scopes
}

// Value returns the opaque credential string.
func (t *AuthSubToken) Value() string {
	return t.token
}

// IsSession reports whether the token has been upgraded to a session token.
func (t *AuthSubToken) IsSession() bool {
	return t.session
}

// Attach sets the AuthSub authorization header on the request. Secure tokens
// additionally sign the data string "method url timestamp nonce" with
// RSA-SHA1.
func (t *AuthSubToken) Attach(req *http.Request) error {
	value := authSubAuthLabel + t.token
	if t.privateKey != nil {
		timestamp := t.clock().Unix()
		nonce := t.nonce()
		data := req.Method + " " + req.URL.String() + " " +
			strconv.FormatInt(timestamp, 10) + " " + nonce
		digest := sha1.Sum([]byte(data)) //nolint:gosec
		signature, err := rsa.SignPKCS1v15(rand.Reader, t.privateKey, crypto.SHA1, digest[:])
		if err != nil {
			return ErrorInvalidRSAKey.WithError(err)
		}
		value += fmt.Sprintf(" sigalg=%q data=%q sig=%q",
			authSubSigAlg, data, base64.StdEncoding.EncodeToString(signature))
	}
	req.Header.Set(constants.AuthorizationHeaderName, value)
	return nil
}

// Serialize returns the compact wire form of the token. The private key of a
// secure token is not serialized; it is reattached at load time.
func (t *AuthSubToken) Serialize() (string, error) {
	w := newWireWriter(TokenTypeAuthSub)
	w.add(wireKeyToken, t.token)
	w.addScopes(t.scopes)
	if t.session {
		w.add(wireKeySession, "true")
	}
	return w.String(), nil
}

func (t *AuthSubToken) isToken() {}
