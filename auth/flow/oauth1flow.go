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

// Package flow implements the authorization flows that mint tokens: the
// OAuth 1.0a three-legged dance, OAuth 2.0 code exchange and refresh, the
// ClientLogin username/password exchange, and the AuthSub helpers.
package flow

import (
	"context"
	"crypto/rsa"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/auth/oauth1"
	"github.com/google/gdata-go-client/auth/store"
	"github.com/google/gdata-go-client/httpservice"
	"github.com/google/gdata-go-client/internal/system/log"
)

const oauth1LoggerComponentName = "OAuth1Flow"

// OAuth1FlowState is one state of the three-legged dance.
type OAuth1FlowState string

const (
	// StateInitial means no request token has been fetched yet.
	StateInitial OAuth1FlowState = "Initial"
	// StateRequestTokenFetched means the request token is held and the user
	// approval is pending.
	StateRequestTokenFetched OAuth1FlowState = "RequestTokenFetched"
	// StateUserAuthorized means the verifier has been handed off.
	StateUserAuthorized OAuth1FlowState = "UserAuthorized"
	// StateAccessTokenFetched is the terminal success state.
	StateAccessTokenFetched OAuth1FlowState = "AccessTokenFetched"
	// StateFailed is the terminal failure state.
	StateFailed OAuth1FlowState = "Failed"
)

// OAuth1Endpoints holds the three endpoints of the dance.
type OAuth1Endpoints struct {
	RequestTokenURL string
	AuthorizeURL    string
	AccessTokenURL  string
}

// DefaultOAuth1Endpoints returns the Google Accounts endpoints.
func DefaultOAuth1Endpoints() OAuth1Endpoints {
	return OAuth1Endpoints{
		RequestTokenURL: DefaultRequestTokenURL,
		AuthorizeURL:    DefaultAuthorizeTokenURL,
		AccessTokenURL:  DefaultAccessTokenURL,
	}
}

// OAuth1FlowConfig carries the consumer credentials and targets of one dance.
type OAuth1FlowConfig struct {
	ConsumerKey     string
	ConsumerSecret  string
	SignatureMethod string
	Scopes          []string
	// Callback is the URL the service redirects to after approval; empty
	// selects the out-of-band flow.
	Callback   string
	PrivateKey *rsa.PrivateKey
	Endpoints  OAuth1Endpoints
}

// ApprovalURLOptions are the optional passthrough parameters of the approval
// page.
type ApprovalURLOptions struct {
	// Domain is the hosted domain hint (hd).
	Domain string
	// Language is the display language hint (hl).
	Language string
	// Template is the mobile or desktop page template hint (btmpl).
	Template string
}

// OAuth1FlowInterface drives the three-legged dance as an explicit state
// machine: Initial, RequestTokenFetched, UserAuthorized, AccessTokenFetched,
// with Failed as the dead state. Transitions out of order fail without side
// effects.
type OAuth1FlowInterface interface {
	// State returns the current state of the dance.
	State() OAuth1FlowState
	// FetchRequestToken performs Initial to RequestTokenFetched.
	FetchRequestToken(ctx context.Context) (*auth.OAuth1Token, error)
	// ApprovalURL builds the user-facing approval URL. Valid after the
	// request token fetch.
	ApprovalURL(opts ApprovalURLOptions) (string, error)
	// HandleVerifier performs RequestTokenFetched to UserAuthorized with the
	// oauth_verifier from the callback or the user's paste.
	HandleVerifier(verifier string) error
	// FetchAccessToken performs UserAuthorized to AccessTokenFetched. The
	// request token is discarded; the access token is added to the token
	// store when one is attached.
	FetchAccessToken(ctx context.Context) (*auth.OAuth1Token, error)
}

// oAuth1Flow is the default implementation of OAuth1FlowInterface.
type oAuth1Flow struct {
	config     OAuth1FlowConfig
	httpClient httpservice.HTTPClientInterface
	tokenStore store.TokenStoreInterface
	signer     *oauth1.RequestSigner

	mu           sync.Mutex
	state        OAuth1FlowState
	requestToken *auth.OAuth1Token
	requestKey   string
	requestSec   string
	verifier     string
}

// NewOAuth1Flow creates a dance coordinator. The token store is optional;
// when present, the minted access token is added to it. A nil HTTP client
// selects the default dispatcher.
func NewOAuth1Flow(config OAuth1FlowConfig, httpClient httpservice.HTTPClientInterface,
	tokenStore store.TokenStoreInterface) OAuth1FlowInterface {
	if httpClient == nil {
		httpClient = httpservice.NewHTTPClient()
	}
	if config.Endpoints.RequestTokenURL == "" {
		config.Endpoints = DefaultOAuth1Endpoints()
	}
	if config.SignatureMethod == "" {
		config.SignatureMethod = oauth1.SignatureMethodHMACSHA1
	}
	return &oAuth1Flow{
		config:     config,
		httpClient: httpClient,
		tokenStore: tokenStore,
		signer:     oauth1.NewRequestSigner(),
		state:      StateInitial,
	}
}

// State returns the current state of the dance.
func (f *oAuth1Flow) State() OAuth1FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FetchRequestToken posts to the request token endpoint, signed with the
// consumer secret and an empty token secret.
func (f *oAuth1Flow) FetchRequestToken(ctx context.Context) (*auth.OAuth1Token, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, oauth1LoggerComponentName))

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateInitial {
		return nil, ErrorInvalidFlowState.WithDescription(
			"request token fetch is only valid in state Initial, current state is " + string(f.state))
	}

	callback := f.config.Callback
	if callback == "" {
		callback = oauth1.OutOfBand
	}

	requestURL := f.config.Endpoints.RequestTokenURL + "?scope=" +
		url.QueryEscape(strings.Join(f.config.Scopes, " "))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, nil)
	if err != nil {
		return nil, f.fail(ErrorEndpointUnreachable.WithError(err))
	}

	engine, err := oauth1.NewSigner(f.config.SignatureMethod, f.config.ConsumerSecret, "", f.config.PrivateKey)
	if err != nil {
		return nil, f.fail(err)
	}
	if err := f.signer.Sign(req, oauth1.Params{
		ConsumerKey: f.config.ConsumerKey,
		Callback:    callback,
	}, engine, oauth1.DeliveryHeader); err != nil {
		return nil, f.fail(err)
	}

	values, err := f.postForTokenResponse(req)
	if err != nil {
		return nil, f.fail(err)
	}

	key := values.Get(oauth1.ParamToken)
	secret := values.Get(oauth1.ParamTokenSecret)
	if key == "" || secret == "" {
		return nil, f.fail(ErrorMalformedTokenResponse.WithDescription(
			"request token response is missing oauth_token or oauth_token_secret"))
	}

	requestToken, err := auth.NewOAuth1RequestToken(auth.OAuth1TokenConfig{
		Key:             key,
		Secret:          secret,
		ConsumerKey:     f.config.ConsumerKey,
		ConsumerSecret:  f.config.ConsumerSecret,
		SignatureMethod: f.config.SignatureMethod,
		Scopes:          f.config.Scopes,
		Callback:        callback,
		PrivateKey:      f.config.PrivateKey,
	})
	if err != nil {
		return nil, f.fail(err)
	}

	f.requestToken = requestToken
	f.requestKey = key
	f.requestSec = secret
	f.state = StateRequestTokenFetched

	logger.Debug("Request token fetched",
		log.Bool("callbackConfirmed", values.Get(oauth1.ParamCallbackOK) == "true"))
	return requestToken, nil
}

// ApprovalURL builds the approval URL carrying the request token key and the
// optional passthrough parameters.
func (f *oAuth1Flow) ApprovalURL(opts ApprovalURLOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateRequestTokenFetched {
		return "", ErrorInvalidFlowState.WithDescription(
			"approval URL is only available in state RequestTokenFetched, current state is " + string(f.state))
	}

	query := url.Values{}
	query.Set(oauth1.ParamToken, f.requestKey)
	if opts.Domain != "" {
		query.Set("hd", opts.Domain)
	}
	if opts.Language != "" {
		query.Set("hl", opts.Language)
	}
	if opts.Template != "" {
		query.Set("btmpl", opts.Template)
	}
	return f.config.Endpoints.AuthorizeURL + "?" + query.Encode(), nil
}

// HandleVerifier records the verifier from the user approval.
func (f *oAuth1Flow) HandleVerifier(verifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateRequestTokenFetched {
		return ErrorInvalidFlowState.WithDescription(
			"verifier handoff is only valid in state RequestTokenFetched, current state is " + string(f.state))
	}
	if verifier == "" {
		return &ErrorMissingVerifier
	}
	f.verifier = verifier
	f.state = StateUserAuthorized
	return nil
}

// FetchAccessToken exchanges the verifier for the access token, signed with
// the consumer secret and the request token secret.
func (f *oAuth1Flow) FetchAccessToken(ctx context.Context) (*auth.OAuth1Token, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, oauth1LoggerComponentName))

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateUserAuthorized {
		return nil, ErrorInvalidFlowState.WithDescription(
			"access token fetch is only valid in state UserAuthorized, current state is " + string(f.state))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.Endpoints.AccessTokenURL, nil)
	if err != nil {
		return nil, f.fail(ErrorEndpointUnreachable.WithError(err))
	}

	engine, err := oauth1.NewSigner(f.config.SignatureMethod, f.config.ConsumerSecret,
		f.requestSec, f.config.PrivateKey)
	if err != nil {
		return nil, f.fail(err)
	}
	if err := f.signer.Sign(req, oauth1.Params{
		ConsumerKey: f.config.ConsumerKey,
		Token:       f.requestKey,
		Verifier:    f.verifier,
	}, engine, oauth1.DeliveryHeader); err != nil {
		return nil, f.fail(err)
	}

	values, err := f.postForTokenResponse(req)
	if err != nil {
		return nil, f.fail(err)
	}

	key := values.Get(oauth1.ParamToken)
	secret := values.Get(oauth1.ParamTokenSecret)
	if key == "" || secret == "" {
		return nil, f.fail(ErrorMalformedTokenResponse.WithDescription(
			"access token response is missing oauth_token or oauth_token_secret"))
	}

	accessToken, err := auth.NewOAuth1AccessToken(auth.OAuth1TokenConfig{
		Key:             key,
		Secret:          secret,
		ConsumerKey:     f.config.ConsumerKey,
		ConsumerSecret:  f.config.ConsumerSecret,
		SignatureMethod: f.config.SignatureMethod,
		Scopes:          f.config.Scopes,
		PrivateKey:      f.config.PrivateKey,
	})
	if err != nil {
		return nil, f.fail(err)
	}

	// The request token is single purpose; drop it with the exchange.
	f.requestToken = nil
	f.requestKey = ""
	f.requestSec = ""
	f.verifier = ""
	f.state = StateAccessTokenFetched

	if f.tokenStore != nil {
		if err := f.tokenStore.AddToken(accessToken); err != nil {
			return nil, err
		}
	}

	logger.Debug("Access token fetched")
	return accessToken, nil
}

// postForTokenResponse dispatches the signed request and parses the
// form-encoded token response.
func (f *oAuth1Flow) postForTokenResponse(req *http.Request) (url.Values, error) {
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
		if f.state == StateUserAuthorized {
			return nil, ErrorInvalidVerifier.WithResponse(resp.StatusCode, string(body))
		}
		return nil, ErrorAuthorizationFailed.WithResponse(resp.StatusCode, string(body))
	}

	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, ErrorMalformedTokenResponse.WithError(err)
	}
	return values, nil
}

// fail moves the dance to the dead state and returns the causing error.
func (f *oAuth1Flow) fail(err error) error {
	f.state = StateFailed
	return err
}
