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
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/google/gdata-go-client/auth/oauth1"
	"github.com/google/gdata-go-client/internal/system/constants"
)

var calendarScopes = []string{"https://www.google.com/calendar/feeds/"}

type TokenTestSuite struct {
	suite.Suite
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(TokenTestSuite))
}

func (suite *TokenTestSuite) TestClientLoginTokenRequiresValueAndScope() {
	_, err := NewClientLoginToken("", calendarScopes)
	assert.ErrorIs(suite.T(), err, &ErrorMissingTokenValue)

	_, err = NewClientLoginToken("DQAA...", nil)
	assert.ErrorIs(suite.T(), err, &ErrorMissingScope)
}

func (suite *TokenTestSuite) TestClientLoginTokenAttach() {
	token, err := NewClientLoginToken("DQAAtok", calendarScopes)
	assert.NoError(suite.T(), err)

	req, _ := http.NewRequest(http.MethodGet, "https://www.google.com/calendar/feeds/default", nil)
	assert.NoError(suite.T(), token.Attach(req))
	assert.Equal(suite.T(), "GoogleLogin auth=DQAAtok",
		req.Header.Get(constants.AuthorizationHeaderName))
}

func (suite *TokenTestSuite) TestAuthSubTokenAttach() {
	token, err := NewAuthSubToken("CKF8", calendarScopes)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), token.IsSession())

	req, _ := http.NewRequest(http.MethodGet, "https://www.google.com/calendar/feeds/default", nil)
	assert.NoError(suite.T(), token.Attach(req))
	assert.Equal(suite.T(), "AuthSub token=CKF8",
		req.Header.Get(constants.AuthorizationHeaderName))
}

func (suite *TokenTestSuite) TestSecureAuthSubTokenAttachSignsDataString() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(suite.T(), err)

	token, err := NewSecureAuthSubToken("CKF8", calendarScopes, key)
	assert.NoError(suite.T(), err)
	token.clock = func() time.Time { return time.Unix(1186353437, 0) }
	token.nonce = func() string { return "4572616e48616d6d65724c61686176" }

	req, _ := http.NewRequest(http.MethodGet, "https://www.google.com/calendar/feeds/default", nil)
	assert.NoError(suite.T(), token.Attach(req))

	header := req.Header.Get(constants.AuthorizationHeaderName)
	assert.True(suite.T(), strings.HasPrefix(header, "AuthSub token=CKF8 "))
	assert.Contains(suite.T(), header, `sigalg="rsa-sha1"`)
	assert.Contains(suite.T(), header,
		`data="GET https://www.google.com/calendar/feeds/default 1186353437 4572616e48616d6d65724c61686176"`)
	assert.Contains(suite.T(), header, `sig="`)
}

func (suite *TokenTestSuite) TestSecureAuthSubTokenRequiresKey() {
	_, err := NewSecureAuthSubToken("CKF8", calendarScopes, nil)
	assert.Error(suite.T(), err)
}

func (suite *TokenTestSuite) TestOAuth1AccessTokenAttach() {
	token, err := NewOAuth1AccessToken(OAuth1TokenConfig{
		Key:             "nnch734d00sl2jdk",
		Secret:          "pfkkdhi9sl3r4s00",
		ConsumerKey:     "dpf43f3p2l4k3l03",
		ConsumerSecret:  "kd94hf93k423kf44",
		SignatureMethod: oauth1.SignatureMethodHMACSHA1,
		Scopes:          calendarScopes,
	})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), token.IsAccess())

	req, _ := http.NewRequest(http.MethodGet, "https://www.google.com/calendar/feeds/default", nil)
	assert.NoError(suite.T(), token.Attach(req))

	header := req.Header.Get(constants.AuthorizationHeaderName)
	assert.True(suite.T(), strings.HasPrefix(header, `OAuth realm=""`))
	assert.Contains(suite.T(), header, `oauth_token="nnch734d00sl2jdk"`)
	assert.Contains(suite.T(), header, `oauth_signature="`)
	assert.Contains(suite.T(), header, `oauth_signature_method="HMAC-SHA1"`)
}

func (suite *TokenTestSuite) TestOAuth1RSATokenWithoutKeyFailsAttach() {
	token, err := NewOAuth1AccessToken(OAuth1TokenConfig{
		Key:             "key",
		ConsumerKey:     "consumer",
		SignatureMethod: oauth1.SignatureMethodRSASHA1,
		Scopes:          calendarScopes,
	})
	assert.NoError(suite.T(), err)

	req, _ := http.NewRequest(http.MethodGet, "https://www.google.com/calendar/feeds/default", nil)
	err = token.Attach(req)
	assert.ErrorIs(suite.T(), err, &oauth1.ErrorMissingRSAKey)
}

func (suite *TokenTestSuite) TestTwoLeggedTokenAttach() {
	token, err := NewTwoLeggedToken("example.com", "secret",
		oauth1.SignatureMethodHMACSHA1, "user@example.com", calendarScopes, nil)
	assert.NoError(suite.T(), err)

	req, _ := http.NewRequest(http.MethodGet, "https://www.google.com/calendar/feeds/default", nil)
	assert.NoError(suite.T(), token.Attach(req))

	header := req.Header.Get(constants.AuthorizationHeaderName)
	assert.Contains(suite.T(), header, `xoauth_requestor_id="user%40example.com"`)
	assert.NotContains(suite.T(), header, `oauth_token="`)
}

func (suite *TokenTestSuite) TestOpaqueTokenRefusesAttach() {
	token := &OpaqueToken{scheme: "FutureScheme", raw: "FutureScheme Blob=x"}
	req, _ := http.NewRequest(http.MethodGet, "https://example.com/", nil)
	err := token.Attach(req)
	assert.ErrorIs(suite.T(), err, &ErrorOpaqueAttach)
	assert.Empty(suite.T(), req.Header.Get(constants.AuthorizationHeaderName))
}
