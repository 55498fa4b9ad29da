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
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/httpservice"
	"github.com/google/gdata-go-client/internal/system/log"
)

const authSubLoggerComponentName = "AuthSubFlow"

// AuthSubEndpoints holds the AuthSub endpoints; zero values select the
// defaults.
type AuthSubEndpoints struct {
	RequestURL string
	SessionURL string
	RevokeURL  string
	InfoURL    string
}

// AuthSubRequestOptions control the approval page behavior.
type AuthSubRequestOptions struct {
	// Secure requests a token that must be used with RSA request signing.
	Secure bool
	// Session requests a token upgradable to a long-lived session token.
	Session bool
	// Domain is the hosted domain hint (hd).
	Domain string
}

// AuthSubFlowInterface owns the AuthSub helpers: building the approval URL,
// extracting the single-use token from the redirect, upgrading it to a
// session token, and revocation.
type AuthSubFlowInterface interface {
	// RequestURL builds the user-facing approval URL for the given scopes.
	RequestURL(next string, scopes []string, opts AuthSubRequestOptions) (string, error)
	// TokenFromURL extracts the single-use token from the redirect URL the
	// service sent the user back to.
	TokenFromURL(redirectURL string, scopes []string) (*auth.AuthSubToken, error)
	// UpgradeToSession exchanges a single-use token for a session token.
	UpgradeToSession(ctx context.Context, token *auth.AuthSubToken) (*auth.AuthSubToken, error)
	// Revoke invalidates a session token with the service.
	Revoke(ctx context.Context, token *auth.AuthSubToken) error
	// TokenInfo returns the service's metadata for the token.
	TokenInfo(ctx context.Context, token *auth.AuthSubToken) (map[string]string, error)
}

// authSubFlow is the default implementation of AuthSubFlowInterface.
type authSubFlow struct {
	endpoints  AuthSubEndpoints
	httpClient httpservice.HTTPClientInterface
}

// NewAuthSubFlow creates an AuthSub flow. A nil HTTP client selects the
// default dispatcher.
func NewAuthSubFlow(endpoints AuthSubEndpoints,
	httpClient httpservice.HTTPClientInterface) AuthSubFlowInterface {
	if httpClient == nil {
		httpClient = httpservice.NewHTTPClient()
	}
	if endpoints.RequestURL == "" {
		endpoints.RequestURL = DefaultAuthSubRequestURL
	}
	if endpoints.SessionURL == "" {
		endpoints.SessionURL = DefaultAuthSubSessionURL
	}
	if endpoints.RevokeURL == "" {
		endpoints.RevokeURL = DefaultAuthSubRevokeURL
	}
	if endpoints.InfoURL == "" {
		endpoints.InfoURL = DefaultAuthSubInfoURL
	}
	return &authSubFlow{
		endpoints:  endpoints,
		httpClient: httpClient,
	}
}

// RequestURL builds the approval URL. Multiple scopes are space-joined into
// one scope parameter.
func (f *authSubFlow) RequestURL(next string, scopes []string, opts AuthSubRequestOptions) (string, error) {
	if next == "" {
		return "", ErrorInvalidFlowState.WithDescription("a next URL is required for the AuthSub request")
	}
	if len(scopes) == 0 {
		return "", &auth.ErrorMissingScope
	}

	query := url.Values{}
	query.Set("next", next)
	query.Set("scope", strings.Join(scopes, " "))
	query.Set("secure", boolFlag(opts.Secure))
	query.Set("session", boolFlag(opts.Session))
	if opts.Domain != "" {
		query.Set("hd", opts.Domain)
	}
	return f.endpoints.RequestURL + "?" + query.Encode(), nil
}

// TokenFromURL extracts the single-use token from the redirect URL.
func (f *authSubFlow) TokenFromURL(redirectURL string, scopes []string) (*auth.AuthSubToken, error) {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return nil, ErrorMalformedTokenResponse.WithError(err)
	}
	tokenValue := parsed.Query().Get("token")
	if tokenValue == "" {
		return nil, ErrorMalformedTokenResponse.WithDescription(
			"the redirect URL carries no token parameter")
	}
	return auth.NewAuthSubToken(tokenValue, scopes)
}

// UpgradeToSession exchanges the single-use token for a session token. The
// single-use token is spent regardless of the outcome.
func (f *authSubFlow) UpgradeToSession(ctx context.Context, token *auth.AuthSubToken) (
	*auth.AuthSubToken, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, authSubLoggerComponentName))

	fields, err := f.authorizedGet(ctx, f.endpoints.SessionURL, token)
	if err != nil {
		return nil, err
	}
	sessionValue := fields[bodyKeyToken]
	if sessionValue == "" {
		return nil, ErrorMalformedTokenResponse.WithDescription(
			"session upgrade response is missing the Token value")
	}

	logger.Debug("AuthSub token upgraded to session token")
	return auth.NewAuthSubSessionToken(sessionValue, token.Scopes())
}

// Revoke invalidates the token with the service.
func (f *authSubFlow) Revoke(ctx context.Context, token *auth.AuthSubToken) error {
	_, err := f.authorizedGet(ctx, f.endpoints.RevokeURL, token)
	return err
}

// TokenInfo returns the service's metadata for the token, such as its target
// and secure flag.
func (f *authSubFlow) TokenInfo(ctx context.Context, token *auth.AuthSubToken) (map[string]string, error) {
	return f.authorizedGet(ctx, f.endpoints.InfoURL, token)
}

// authorizedGet issues a GET with the token attached and parses the
// Key=Value response body.
func (f *authSubFlow) authorizedGet(ctx context.Context, endpoint string,
	token *auth.AuthSubToken) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, ErrorEndpointUnreachable.WithError(err)
	}
	if err := token.Attach(req); err != nil {
		return nil, err
	}

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
		return nil, ErrorAuthorizationFailed.WithResponse(resp.StatusCode, string(body))
	}
	return parseBodyFields(string(body)), nil
}

func boolFlag(value bool) string {
	if value {
		return strconv.Itoa(1)
	}
	return strconv.Itoa(0)
}
