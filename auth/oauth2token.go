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
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/utils"
)

// OAuth2Token is an OAuth 2.0 bearer credential. The access token and its
// expiry are the only mutable token state in the package: a refresh replaces
// both atomically while the token keeps a stable identity in the store.
type OAuth2Token struct {
	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time

	refreshToken string
	clientID     string
	clientSecret string
	tokenURI     string
	scopes       []string
}

// OAuth2TokenConfig carries the fields of an OAuth 2.0 token. A zero ExpiresAt
// means the expiry is unknown and the token is treated as valid until the
// service rejects it.
type OAuth2TokenConfig struct {
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string
	TokenURI     string
	Scopes       []string
	ExpiresAt    time.Time
}

// NewOAuth2Token creates an OAuth 2.0 token.
func NewOAuth2Token(config OAuth2TokenConfig) (*OAuth2Token, error) {
	if config.AccessToken == "" && config.RefreshToken == "" {
		return nil, &ErrorMissingTokenValue
	}
	if len(config.Scopes) == 0 {
		return nil, &ErrorMissingScope
	}
	return &OAuth2Token{
		accessToken:  config.AccessToken,
		expiresAt:    config.ExpiresAt,
		refreshToken: config.RefreshToken,
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		tokenURI:     config.TokenURI,
		scopes:       utils.CopyStringSlice(config.Scopes),
	}, nil
}

// Type returns the credential scheme of the token.
func (t *OAuth2Token) Type() TokenType {
	return TokenTypeOAuth2
}

// Scopes returns the scope URLs the token was issued for.
func (t *OAuth2Token) Scopes() []string {
	return t.scopes
}

// AccessToken returns the current access token.
func (t *OAuth2Token) AccessToken() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.accessToken
}

// RefreshToken returns the refresh token.
func (t *OAuth2Token) RefreshToken() string {
	return t.refreshToken
}

// ClientID returns the OAuth 2.0 client identifier.
func (t *OAuth2Token) ClientID() string {
	return t.clientID
}

// ClientSecret returns the OAuth 2.0 client secret.
func (t *OAuth2Token) ClientSecret() string {
	return t.clientSecret
}

// TokenURI returns the token endpoint used for exchange and refresh.
func (t *OAuth2Token) TokenURI() string {
	return t.tokenURI
}

// ExpiresAt returns the current access token expiry. The zero time means the
// expiry is unknown.
func (t *OAuth2Token) ExpiresAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expiresAt
}

// Expired reports whether the access token is missing or expires within the
// skew allowance.
func (t *OAuth2Token) Expired(now time.Time, skew time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.accessToken == "" {
		return true
	}
	if t.expiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(t.expiresAt)
}

// RefreshWith serializes refreshes on the token. The lock is held across the
// exchange so that a concurrent attach either sees the pre-refresh access
// token or waits for the replacement; it never sees a half-updated pair.
func (t *OAuth2Token) RefreshWith(exchange func(refreshToken string) (accessToken string, expiresAt time.Time, err error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	accessToken, expiresAt, err := exchange(t.refreshToken)
	if err != nil {
		return err
	}
	t.accessToken = accessToken
	t.expiresAt = expiresAt
	return nil
}

// Attach sets the Bearer authorization header on the request.
func (t *OAuth2Token) Attach(req *http.Request) error {
	t.mu.Lock()
	accessToken := t.accessToken
	t.mu.Unlock()
	if accessToken == "" {
		return ErrorMissingTokenValue.WithDescription("the access token is empty; refresh it first")
	}
	req.Header.Set(constants.AuthorizationHeaderName, constants.TokenTypeBearer+" "+accessToken)
	return nil
}

// Serialize returns the compact wire form of the token. ExpiresAt serializes
// as Unix seconds; zero means unknown.
func (t *OAuth2Token) Serialize() (string, error) {
	t.mu.Lock()
	accessToken := t.accessToken
	expiresAt := t.expiresAt
	t.mu.Unlock()

	var expires int64
	if !expiresAt.IsZero() {
		expires = expiresAt.Unix()
	}
	w := newWireWriter(TokenTypeOAuth2)
	w.add(wireKeyAccessToken, accessToken)
	w.add(wireKeyRefreshToken, t.refreshToken)
	w.add(wireKeyClientID, t.clientID)
	w.add(wireKeyClientSecret, t.clientSecret)
	w.add(wireKeyTokenURI, t.tokenURI)
	w.addScopes(t.scopes)
	w.add(wireKeyExpiresAt, strconv.FormatInt(expires, 10))
	return w.String(), nil
}

func (t *OAuth2Token) isToken() {}
