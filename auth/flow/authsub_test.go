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

package flow

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/autherror"
	"github.com/google/gdata-go-client/tests/mocks/httpmock"
)

type AuthSubFlowTestSuite struct {
	suite.Suite
}

func TestAuthSubFlowSuite(t *testing.T) {
	suite.Run(t, new(AuthSubFlowTestSuite))
}

func (suite *AuthSubFlowTestSuite) TestRequestURLCarriesApprovalParameters() {
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, httpmock.NewScriptedClient())

	requestURL, err := authsub.RequestURL("https://app.example.com/done",
		[]string{"https://www.google.com/calendar/feeds/", "https://picasaweb.google.com/data/"},
		AuthSubRequestOptions{Secure: true, Session: true, Domain: "example.com"})
	assert.NoError(suite.T(), err)

	parsed, err := url.Parse(requestURL)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), requestURL, DefaultAuthSubRequestURL+"?")

	query := parsed.Query()
	assert.Equal(suite.T(), "https://app.example.com/done", query.Get("next"))
	assert.Equal(suite.T(),
		"https://www.google.com/calendar/feeds/ https://picasaweb.google.com/data/",
		query.Get("scope"))
	assert.Equal(suite.T(), "1", query.Get("secure"))
	assert.Equal(suite.T(), "1", query.Get("session"))
	assert.Equal(suite.T(), "example.com", query.Get("hd"))
}

func (suite *AuthSubFlowTestSuite) TestRequestURLDefaultsFlagsToZero() {
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, httpmock.NewScriptedClient())

	requestURL, err := authsub.RequestURL("https://app.example.com/done",
		danceScopes, AuthSubRequestOptions{})
	assert.NoError(suite.T(), err)

	parsed, _ := url.Parse(requestURL)
	query := parsed.Query()
	assert.Equal(suite.T(), "0", query.Get("secure"))
	assert.Equal(suite.T(), "0", query.Get("session"))
	assert.Empty(suite.T(), query.Get("hd"))
}

func (suite *AuthSubFlowTestSuite) TestRequestURLRequiresNextAndScopes() {
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, httpmock.NewScriptedClient())

	_, err := authsub.RequestURL("", danceScopes, AuthSubRequestOptions{})
	assert.Error(suite.T(), err)

	_, err = authsub.RequestURL("https://app.example.com/done", nil, AuthSubRequestOptions{})
	assert.ErrorIs(suite.T(), err, &auth.ErrorMissingScope)
}

func (suite *AuthSubFlowTestSuite) TestTokenFromURLExtractsSingleUseToken() {
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, httpmock.NewScriptedClient())

	token, err := authsub.TokenFromURL(
		"https://app.example.com/done?token=CKF8&other=kept", danceScopes)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "CKF8", token.Value())
	assert.False(suite.T(), token.IsSession())
	assert.Equal(suite.T(), danceScopes, token.Scopes())
}

func (suite *AuthSubFlowTestSuite) TestTokenFromURLWithoutTokenFails() {
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, httpmock.NewScriptedClient())

	_, err := authsub.TokenFromURL("https://app.example.com/done?other=only", danceScopes)
	assert.ErrorIs(suite.T(), err, &ErrorMalformedTokenResponse)
}

func (suite *AuthSubFlowTestSuite) TestUpgradeToSessionMintsSessionToken() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK, Body: "Token=CKsess\n"},
	)
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, mockClient)

	singleUse, err := auth.NewAuthSubToken("CKF8", danceScopes)
	assert.NoError(suite.T(), err)

	session, err := authsub.UpgradeToSession(context.Background(), singleUse)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "CKsess", session.Value())
	assert.True(suite.T(), session.IsSession())
	assert.Equal(suite.T(), danceScopes, session.Scopes())

	// The upgrade request carries the single-use token.
	req := mockClient.DoCalls[0]
	assert.Equal(suite.T(), DefaultAuthSubSessionURL, req.URL.String())
	assert.Equal(suite.T(), "AuthSub token=CKF8", req.Header.Get("Authorization"))
}

func (suite *AuthSubFlowTestSuite) TestUpgradeWithoutTokenValueFails() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK, Body: "Expiration=none\n"},
	)
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, mockClient)

	singleUse, _ := auth.NewAuthSubToken("CKF8", danceScopes)
	_, err := authsub.UpgradeToSession(context.Background(), singleUse)
	assert.ErrorIs(suite.T(), err, &ErrorMalformedTokenResponse)
}

func (suite *AuthSubFlowTestSuite) TestUpgradeRejectionFails() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusForbidden, Body: "token already used"},
	)
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, mockClient)

	singleUse, _ := auth.NewAuthSubToken("CKF8", danceScopes)
	_, err := authsub.UpgradeToSession(context.Background(), singleUse)
	assert.True(suite.T(), autherror.IsKind(err, autherror.KindAuthorizationFailed))
}

func (suite *AuthSubFlowTestSuite) TestRevokeHitsRevokeEndpoint() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK},
	)
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, mockClient)

	session, _ := auth.NewAuthSubSessionToken("CKsess", danceScopes)
	assert.NoError(suite.T(), authsub.Revoke(context.Background(), session))

	req := mockClient.DoCalls[0]
	assert.Equal(suite.T(), DefaultAuthSubRevokeURL, req.URL.String())
	assert.Equal(suite.T(), "AuthSub token=CKsess", req.Header.Get("Authorization"))
}

func (suite *AuthSubFlowTestSuite) TestTokenInfoParsesBodyFields() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK,
			Body: "Target=https://www.google.com/calendar/feeds/\nSecure=false\nScope=https://www.google.com/calendar/feeds/\n"},
	)
	authsub := NewAuthSubFlow(AuthSubEndpoints{}, mockClient)

	session, _ := auth.NewAuthSubSessionToken("CKsess", danceScopes)
	info, err := authsub.TokenInfo(context.Background(), session)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://www.google.com/calendar/feeds/", info["Target"])
	assert.Equal(suite.T(), "false", info["Secure"])
}

func (suite *AuthSubFlowTestSuite) TestCustomEndpointsOverrideDefaults() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK, Body: "Token=CKsess\n"},
	)
	authsub := NewAuthSubFlow(AuthSubEndpoints{
		SessionURL: "https://alt.example.com/accounts/AuthSubSessionToken",
	}, mockClient)

	singleUse, _ := auth.NewAuthSubToken("CKF8", danceScopes)
	_, err := authsub.UpgradeToSession(context.Background(), singleUse)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://alt.example.com/accounts/AuthSubSessionToken",
		mockClient.DoCalls[0].URL.String())
}
