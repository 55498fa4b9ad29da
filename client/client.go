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

// Package client implements the authenticated request pipeline: it selects a
// credential for the target URL, refreshes it when expired, attaches it,
// dispatches the request and interprets the response, including bounded
// redirect following and resumable media uploads.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
	"golang.org/x/sync/singleflight"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/auth/store"
	"github.com/google/gdata-go-client/config"
	"github.com/google/gdata-go-client/httpservice"
	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/log"
)

const loggerComponentName = "RequestPipeline"

const (
	defaultMaxRedirects = 5
	defaultExpirySkew   = 60 * time.Second
	defaultChunkSize    = 262144
)

// TokenRefresherInterface refreshes an expired OAuth 2.0 token in place.
// flow.NewOAuth2Flow returns a suitable implementation.
type TokenRefresherInterface interface {
	Refresh(ctx context.Context, token *auth.OAuth2Token) error
}

// PipelineConfig tunes the request pipeline. Zero values select the defaults.
type PipelineConfig struct {
	// MaxRedirects bounds redirect following per request.
	MaxRedirects int
	// ExpirySkew is subtracted from the OAuth2 expiry before a proactive
	// refresh, so tokens are refreshed slightly before they lapse.
	ExpirySkew time.Duration
	// ChunkSize is the default resumable upload chunk size in bytes.
	ChunkSize int64
}

// ClientInterface is the authenticated request pipeline.
type ClientInterface interface {
	// Do selects a credential for the request URL, attaches it, dispatches
	// the request and interprets the response. The caller owns the returned
	// response body.
	Do(ctx context.Context, request *Request) (*http.Response, error)
	// StartResumableUpload opens a resumable media upload session.
	StartResumableUpload(ctx context.Context, upload ResumableUpload) (*ResumableSession, error)
}

// client is the default implementation of ClientInterface.
type client struct {
	tokenStore   store.TokenStoreInterface
	userStore    store.UserTokenStoreInterface
	httpClient   httpservice.HTTPClientInterface
	refresher    TokenRefresherInterface
	maxRedirects int
	expirySkew   time.Duration
	chunkSize    int64
	refreshGroup singleflight.Group
	clock        func() time.Time
}

// NewClient creates a request pipeline over a single-user token store. A nil
// HTTP client selects the default dispatcher; a nil refresher disables OAuth2
// refresh handling.
func NewClient(tokenStore store.TokenStoreInterface, httpClient httpservice.HTTPClientInterface,
	refresher TokenRefresherInterface, cfg PipelineConfig) ClientInterface {
	return newClient(tokenStore, nil, httpClient, refresher, cfg)
}

// NewMultiUserClient creates a request pipeline over a multi-user token
// store. Requests select their partition via Request.UserID.
func NewMultiUserClient(userStore store.UserTokenStoreInterface, httpClient httpservice.HTTPClientInterface,
	refresher TokenRefresherInterface, cfg PipelineConfig) ClientInterface {
	return newClient(nil, userStore, httpClient, refresher, cfg)
}

// PipelineConfigFrom maps the loaded configuration onto pipeline settings.
func PipelineConfigFrom(cfg *config.Config) PipelineConfig {
	if cfg == nil {
		return PipelineConfig{}
	}
	return PipelineConfig{
		MaxRedirects: cfg.MaxRedirects,
		ExpirySkew:   time.Duration(cfg.ExpirySkew) * time.Second,
		ChunkSize:    cfg.ChunkSize,
	}
}

func newClient(tokenStore store.TokenStoreInterface, userStore store.UserTokenStoreInterface,
	httpClient httpservice.HTTPClientInterface, refresher TokenRefresherInterface,
	cfg PipelineConfig) *client {
	if httpClient == nil {
		httpClient = httpservice.NewHTTPClient()
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = defaultMaxRedirects
	}
	if cfg.ExpirySkew <= 0 {
		cfg.ExpirySkew = defaultExpirySkew
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	return &client{
		tokenStore:   tokenStore,
		userStore:    userStore,
		httpClient:   httpClient,
		refresher:    refresher,
		maxRedirects: cfg.MaxRedirects,
		expirySkew:   cfg.ExpirySkew,
		chunkSize:    cfg.ChunkSize,
		clock:        time.Now,
	}
}

// Do runs the pipeline: select, refresh-if-expired, attach, dispatch,
// interpret. A 401 on an OAuth2 token triggers exactly one refresh-and-retry;
// redirects are followed up to the configured limit, re-running credential
// selection for each hop, and a redirect from https to http is refused while
// a credential is attached. Permanent Redirect (308) is handed back to the
// caller untouched since resumable uploads use it as a status signal.
func (c *client) Do(ctx context.Context, request *Request) (*http.Response, error) {
	requestID := ksuid.New().String()
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyRequestID, requestID))

	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	currentURL := request.URL
	sendBody := true
	redirects := 0
	refreshRetried := false

	for {
		token, err := c.selectToken(request, currentURL)
		if err != nil {
			return nil, err
		}
		if err := c.ensureFresh(ctx, logger, token); err != nil {
			return nil, err
		}

		resp, err := c.send(ctx, request, method, currentURL, token, sendBody)
		if err != nil {
			return nil, ErrorTransport.WithError(err)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode <= 299:
			return resp, nil

		case resp.StatusCode == http.StatusUnauthorized:
			oauth2Token, refreshable := token.(*auth.OAuth2Token)
			if refreshable && c.refresher != nil && !refreshRetried {
				drainAndClose(resp)
				if err := c.refreshToken(ctx, oauth2Token); err != nil {
					return nil, err
				}
				refreshRetried = true
				logger.Debug("Retrying request after token refresh",
					log.String(log.LoggerKeyTokenType, string(token.Type())))
				continue
			}
			body := drainAndClose(resp)
			return nil, ErrorAuthorizationRejected.WithResponse(resp.StatusCode, body)

		case resp.StatusCode == http.StatusForbidden:
			body := drainAndClose(resp)
			return nil, ErrorScopeDenied.WithResponse(resp.StatusCode, body)

		case isRedirect(resp.StatusCode):
			location := resp.Header.Get(constants.LocationHeaderName)
			nextURL, err := resolveRedirect(currentURL, location)
			if err != nil {
				drainAndClose(resp)
				return nil, err
			}
			if token != nil && isDowngrade(currentURL, nextURL) {
				drainAndClose(resp)
				return nil, ErrorInsecureRedirect.WithDescription(
					fmt.Sprintf("redirect from %s to %s", currentURL, nextURL))
			}
			if redirects >= c.maxRedirects {
				drainAndClose(resp)
				return nil, ErrorTooManyRedirects.WithDescription(
					fmt.Sprintf("stopped after %d redirects", redirects))
			}
			redirects++
			if resp.StatusCode == http.StatusSeeOther {
				method = http.MethodGet
				sendBody = false
			}
			drainAndClose(resp)
			logger.Debug("Following redirect", log.String("location", nextURL),
				log.Int("hop", redirects))
			currentURL = nextURL

		case resp.StatusCode >= 500:
			body := drainAndClose(resp)
			return nil, ErrorTransport.WithResponse(resp.StatusCode, body)

		default:
			// Other statuses, 308 included, carry meaning for the caller.
			return resp, nil
		}
	}
}

// selectToken resolves the credential for the target URL: the explicit token
// when pinned, otherwise a store lookup by scope.
func (c *client) selectToken(request *Request, targetURL string) (auth.Token, error) {
	if request.Token != nil {
		return request.Token, nil
	}

	tokenStore := c.tokenStore
	if request.UserID != "" && c.userStore != nil {
		tokenStore = store.ScopedToUser(c.userStore, request.UserID)
	}
	if tokenStore == nil {
		return nil, ErrorNoCredentialsForScope.WithDescription(
			"the client has no token store and the request pins no token")
	}

	token, err := tokenStore.FindTokenForURL(targetURL)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrorNoCredentialsForScope.WithDescription(
			"no stored token matches " + targetURL)
	}
	return token, nil
}

// ensureFresh refreshes an OAuth2 token whose expiry falls within the skew
// window before it is attached.
func (c *client) ensureFresh(ctx context.Context, logger *log.Logger, token auth.Token) error {
	oauth2Token, ok := token.(*auth.OAuth2Token)
	if !ok || c.refresher == nil {
		return nil
	}
	if !oauth2Token.Expired(c.clock(), c.expirySkew) || oauth2Token.RefreshToken() == "" {
		return nil
	}
	logger.Debug("Refreshing expired token before dispatch",
		log.String(log.LoggerKeyTokenType, string(token.Type())))
	return c.refreshToken(ctx, oauth2Token)
}

// refreshToken refreshes the token, collapsing concurrent refreshes of the
// same token object into a single upstream call.
func (c *client) refreshToken(ctx context.Context, token *auth.OAuth2Token) error {
	key := fmt.Sprintf("%p", token)
	_, err, _ := c.refreshGroup.Do(key, func() (interface{}, error) {
		return nil, c.refresher.Refresh(ctx, token)
	})
	return err
}

// send builds the hop's HTTP request, attaches the credential and dispatches.
func (c *client) send(ctx context.Context, request *Request, method, targetURL string,
	token auth.Token, sendBody bool) (*http.Response, error) {
	var body io.Reader
	if sendBody && len(request.Body) > 0 {
		body = bytes.NewReader(request.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, targetURL, body)
	if err != nil {
		return nil, err
	}
	for name, values := range request.Header {
		if !sendBody && name == constants.ContentTypeHeaderName {
			continue
		}
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	if token != nil {
		if err := token.Attach(httpReq); err != nil {
			return nil, err
		}
	}
	return c.httpClient.Do(httpReq)
}

// roundTrip attaches the credential and dispatches without response
// interpretation. The resumable upload machinery owns its own status
// handling.
func (c *client) roundTrip(ctx context.Context, method, targetURL string, header http.Header,
	body io.Reader, contentLength int64, token auth.Token) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, targetURL, body)
	if err != nil {
		return nil, ErrorTransport.WithError(err)
	}
	for name, values := range header {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	if contentLength >= 0 {
		httpReq.ContentLength = contentLength
	}
	if token != nil {
		if err := token.Attach(httpReq); err != nil {
			return nil, err
		}
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, ErrorTransport.WithError(err)
	}
	return resp, nil
}

// isRedirect reports whether the status is a followable redirect. Permanent
// Redirect (308) is excluded: resumable uploads repurpose it as the
// incomplete marker.
func isRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect:
		return true
	}
	return false
}

// resolveRedirect resolves the Location header against the current URL.
func resolveRedirect(currentURL, location string) (string, error) {
	if location == "" {
		return "", ErrorTransport.WithDescription("redirect response carries no Location header")
	}
	base, err := url.Parse(currentURL)
	if err != nil {
		return "", ErrorTransport.WithError(err)
	}
	next, err := url.Parse(location)
	if err != nil {
		return "", ErrorTransport.WithError(err)
	}
	return base.ResolveReference(next).String(), nil
}

// isDowngrade reports whether following the redirect would move an attached
// credential from https to plain http.
func isDowngrade(currentURL, nextURL string) bool {
	current, err := url.Parse(currentURL)
	if err != nil {
		return false
	}
	next, err := url.Parse(nextURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(current.Scheme, "https") && strings.EqualFold(next.Scheme, "http")
}

// drainAndClose consumes and closes the response body, returning it for error
// reporting.
func drainAndClose(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return string(body)
}
