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
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/autherror"
	"github.com/google/gdata-go-client/httpservice"
	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/log"
)

const oauth2LoggerComponentName = "OAuth2Flow"

// OAuth2FlowConfig carries the client credentials and endpoints of an
// OAuth 2.0 authorization code flow.
type OAuth2FlowConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	AuthURL      string
	TokenURL     string
}

// OAuth2AuthorizationOptions are the optional parameters of the authorization
// code URL.
type OAuth2AuthorizationOptions struct {
	// AccessType is "online" or "offline"; offline grants a refresh token.
	AccessType string
	// ApprovalPrompt forces the consent screen when set to "force".
	ApprovalPrompt string
	// State is the opaque anti-forgery value round-tripped by the service.
	State string
}

// tokenEndpointResponse is the JSON body of the token endpoint.
type tokenEndpointResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// OAuth2FlowInterface owns the OAuth 2.0 transitions: building the
// authorization code URL, exchanging the code, and refreshing expired access
// tokens in place.
type OAuth2FlowInterface interface {
	// AuthorizationURL builds the user-facing authorization code URL.
	AuthorizationURL(opts OAuth2AuthorizationOptions) string
	// ExchangeCode exchanges an authorization code for a token.
	ExchangeCode(ctx context.Context, code string) (*auth.OAuth2Token, error)
	// Refresh replaces the token's access token and expiry via the refresh
	// grant. The update is atomic with respect to concurrent attaches.
	Refresh(ctx context.Context, token *auth.OAuth2Token) error
}

// oAuth2Flow is the default implementation of OAuth2FlowInterface.
type oAuth2Flow struct {
	config     OAuth2FlowConfig
	httpClient httpservice.HTTPClientInterface
	clock      func() time.Time
}

// NewOAuth2Flow creates an OAuth 2.0 flow coordinator. A nil HTTP client
// selects the default dispatcher.
func NewOAuth2Flow(config OAuth2FlowConfig, httpClient httpservice.HTTPClientInterface) OAuth2FlowInterface {
	if httpClient == nil {
		httpClient = httpservice.NewHTTPClient()
	}
	if config.AuthURL == "" {
		config.AuthURL = DefaultOAuth2AuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = DefaultOAuth2TokenURL
	}
	return &oAuth2Flow{
		config:     config,
		httpClient: httpClient,
		clock:      time.Now,
	}
}

// AuthorizationURL builds the authorization code URL.
func (f *oAuth2Flow) AuthorizationURL(opts OAuth2AuthorizationOptions) string {
	query := url.Values{}
	query.Set(paramClientID, f.config.ClientID)
	query.Set(paramRedirectURI, f.config.RedirectURI)
	query.Set(paramScope, strings.Join(f.config.Scopes, " "))
	query.Set(paramResponseType, responseTypeCode)
	if opts.AccessType != "" {
		query.Set(paramAccessType, opts.AccessType)
	}
	if opts.ApprovalPrompt != "" {
		query.Set(paramApprovalPrompt, opts.ApprovalPrompt)
	}
	if opts.State != "" {
		query.Set(paramState, opts.State)
	}
	return f.config.AuthURL + "?" + query.Encode()
}

// ExchangeCode exchanges the authorization code for an access and refresh
// token pair.
func (f *oAuth2Flow) ExchangeCode(ctx context.Context, code string) (*auth.OAuth2Token, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, oauth2LoggerComponentName))

	form := url.Values{}
	form.Set(paramGrantType, grantTypeAuthzCode)
	form.Set(paramCode, code)
	form.Set(paramClientID, f.config.ClientID)
	form.Set(paramClientSecret, f.config.ClientSecret)
	form.Set(paramRedirectURI, f.config.RedirectURI)

	tokenResp, err := f.postTokenEndpoint(ctx, form, &ErrorAuthorizationFailed)
	if err != nil {
		return nil, err
	}
	if tokenResp.AccessToken == "" {
		return nil, ErrorMalformedTokenResponse.WithDescription(
			"token endpoint response is missing access_token")
	}

	logger.Debug("Authorization code exchanged")
	return auth.NewOAuth2Token(auth.OAuth2TokenConfig{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ClientID:     f.config.ClientID,
		ClientSecret: f.config.ClientSecret,
		TokenURI:     f.config.TokenURL,
		Scopes:       f.config.Scopes,
		ExpiresAt:    f.expiry(tokenResp.ExpiresIn),
	})
}

// Refresh performs the refresh grant and replaces the access token and expiry
// on the token object.
func (f *oAuth2Flow) Refresh(ctx context.Context, token *auth.OAuth2Token) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, oauth2LoggerComponentName))

	tokenURL := token.TokenURI()
	if tokenURL == "" {
		tokenURL = f.config.TokenURL
	}

	return token.RefreshWith(func(refreshToken string) (string, time.Time, error) {
		if refreshToken == "" {
			return "", time.Time{}, ErrorInvalidRefreshToken.WithDescription(
				"the token carries no refresh token")
		}

		form := url.Values{}
		form.Set(paramGrantType, grantTypeRefreshToken)
		form.Set(paramRefreshToken, refreshToken)
		form.Set(paramClientID, token.ClientID())
		form.Set(paramClientSecret, token.ClientSecret())

		tokenResp, err := f.postTokenEndpointURL(ctx, tokenURL, form, &ErrorInvalidRefreshToken)
		if err != nil {
			return "", time.Time{}, err
		}
		if tokenResp.AccessToken == "" {
			return "", time.Time{}, ErrorMalformedTokenResponse.WithDescription(
				"refresh response is missing access_token")
		}

		logger.Debug("Access token refreshed")
		return tokenResp.AccessToken, f.expiry(tokenResp.ExpiresIn), nil
	})
}

// postTokenEndpoint posts the form to the configured token endpoint.
func (f *oAuth2Flow) postTokenEndpoint(ctx context.Context, form url.Values,
	rejection *autherror.AuthError) (*tokenEndpointResponse, error) {
	return f.postTokenEndpointURL(ctx, f.config.TokenURL, form, rejection)
}

// postTokenEndpointURL posts the form to the token endpoint and decodes the
// JSON response. A non-2xx status fails with the given rejection error.
func (f *oAuth2Flow) postTokenEndpointURL(ctx context.Context, tokenURL string, form url.Values,
	rejection *autherror.AuthError) (*tokenEndpointResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, ErrorEndpointUnreachable.WithError(err)
	}
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeFormURLEncoded)
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, ErrorEndpointUnreachable.WithError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrorEndpointUnreachable.WithError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejection.WithResponse(resp.StatusCode, string(body))
	}

	var tokenResp tokenEndpointResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, ErrorMalformedTokenResponse.WithError(err)
	}
	return &tokenResp, nil
}

// expiry converts an expires_in duration to an absolute expiry; zero means
// unknown.
func (f *oAuth2Flow) expiry(expiresIn int64) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}
	return f.clock().Add(time.Duration(expiresIn) * time.Second)
}
