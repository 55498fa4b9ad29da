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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/autherror"
	"github.com/google/gdata-go-client/tests/mocks/httpmock"
)

func oauth2Config() OAuth2FlowConfig {
	return OAuth2FlowConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://app.example.com/callback",
		Scopes:       danceScopes,
	}
}

type OAuth2FlowTestSuite struct {
	suite.Suite
}

func TestOAuth2FlowSuite(t *testing.T) {
	suite.Run(t, new(OAuth2FlowTestSuite))
}

func (suite *OAuth2FlowTestSuite) TestAuthorizationURL() {
	oauth2 := NewOAuth2Flow(oauth2Config(), httpmock.NewScriptedClient())

	authorizationURL := oauth2.AuthorizationURL(OAuth2AuthorizationOptions{
		AccessType: "offline",
		State:      "anti-forgery",
	})
	assert.Contains(suite.T(), authorizationURL, DefaultOAuth2AuthURL+"?")
	assert.Contains(suite.T(), authorizationURL, "client_id=client-id")
	assert.Contains(suite.T(), authorizationURL, "response_type=code")
	assert.Contains(suite.T(), authorizationURL, "access_type=offline")
	assert.Contains(suite.T(), authorizationURL, "state=anti-forgery")
	assert.NotContains(suite.T(), authorizationURL, "client-secret")
}

func (suite *OAuth2FlowTestSuite) TestExchangeCodeMintsToken() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK,
			Body: `{"access_token":"ya29.new","refresh_token":"1//refresh","expires_in":3600,"token_type":"Bearer"}`},
	)
	oauth2 := NewOAuth2Flow(oauth2Config(), mockClient)

	token, err := oauth2.ExchangeCode(context.Background(), "4/the-code")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ya29.new", token.AccessToken())
	assert.Equal(suite.T(), "1//refresh", token.RefreshToken())
	assert.False(suite.T(), token.ExpiresAt().IsZero())

	body := mockClient.DoBodies[0]
	assert.Contains(suite.T(), body, "grant_type=authorization_code")
	assert.Contains(suite.T(), body, "code=4%2Fthe-code")
	assert.Contains(suite.T(), body, "client_id=client-id")
}

func (suite *OAuth2FlowTestSuite) TestExchangeCodeRejectionFails() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusBadRequest,
			Body: `{"error":"invalid_grant"}`},
	)
	oauth2 := NewOAuth2Flow(oauth2Config(), mockClient)

	_, err := oauth2.ExchangeCode(context.Background(), "4/stale-code")
	assert.True(suite.T(), autherror.IsKind(err, autherror.KindAuthorizationFailed))
}

func (suite *OAuth2FlowTestSuite) TestRefreshReplacesAccessToken() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK,
			Body: `{"access_token":"ya29.fresh","expires_in":3600}`},
	)
	oauth2 := NewOAuth2Flow(oauth2Config(), mockClient)

	token, err := auth.NewOAuth2Token(auth.OAuth2TokenConfig{
		AccessToken:  "ya29.stale",
		RefreshToken: "1//refresh",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       danceScopes,
		ExpiresAt:    time.Unix(1000, 0),
	})
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), oauth2.Refresh(context.Background(), token))
	assert.Equal(suite.T(), "ya29.fresh", token.AccessToken())
	assert.Equal(suite.T(), "1//refresh", token.RefreshToken())

	body := mockClient.DoBodies[0]
	assert.Contains(suite.T(), body, "grant_type=refresh_token")
	assert.Contains(suite.T(), body, "refresh_token=1%2F%2Frefresh")
}

func (suite *OAuth2FlowTestSuite) TestRefreshRejectionIsInvalidRefreshToken() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusBadRequest,
			Body: `{"error":"invalid_grant"}`},
	)
	oauth2 := NewOAuth2Flow(oauth2Config(), mockClient)

	token, _ := auth.NewOAuth2Token(auth.OAuth2TokenConfig{
		AccessToken:  "ya29.stale",
		RefreshToken: "1//revoked",
		Scopes:       danceScopes,
	})
	err := oauth2.Refresh(context.Background(), token)
	assert.True(suite.T(), autherror.IsKind(err, autherror.KindInvalidRefreshToken))
	// The stale access token survives a failed refresh.
	assert.Equal(suite.T(), "ya29.stale", token.AccessToken())
}

func (suite *OAuth2FlowTestSuite) TestRefreshWithoutRefreshTokenFails() {
	oauth2 := NewOAuth2Flow(oauth2Config(), httpmock.NewScriptedClient())

	token, _ := auth.NewOAuth2Token(auth.OAuth2TokenConfig{
		AccessToken: "ya29.only",
		Scopes:      danceScopes,
	})
	err := oauth2.Refresh(context.Background(), token)
	assert.True(suite.T(), autherror.IsKind(err, autherror.KindInvalidRefreshToken))
}

func (suite *OAuth2FlowTestSuite) TestRefreshPrefersTokenURI() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK,
			Body: `{"access_token":"ya29.fresh","expires_in":60}`},
	)
	oauth2 := NewOAuth2Flow(oauth2Config(), mockClient)

	token, _ := auth.NewOAuth2Token(auth.OAuth2TokenConfig{
		AccessToken:  "ya29.stale",
		RefreshToken: "1//refresh",
		TokenURI:     "https://alt.example.com/token",
		Scopes:       danceScopes,
	})
	assert.NoError(suite.T(), oauth2.Refresh(context.Background(), token))
	assert.Equal(suite.T(), "https://alt.example.com/token", mockClient.DoCalls[0].URL.String())
}
