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
	"strings"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/httpservice"
	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/log"
)

const clientLoginLoggerComponentName = "ClientLoginFlow"

// ClientLoginFlowConfig identifies the calling application and the service
// the minted token is for.
type ClientLoginFlowConfig struct {
	// ServiceName is the short service code, such as "cl" for Calendar.
	ServiceName string
	// Source is the application identifier, companyName-appName-version.
	Source string
	// Scopes are the scope URLs registered with the minted token.
	Scopes []string
	// Endpoint overrides the login endpoint; empty selects the default.
	Endpoint string
}

// CaptchaChallenge is a user's answer to a previously returned CaptchaError.
type CaptchaChallenge struct {
	Token  string
	Answer string
}

// ClientLoginFlowInterface exchanges a username and password for an opaque
// bearer token.
type ClientLoginFlowInterface interface {
	// Login performs the exchange. A CAPTCHA challenge from the service is
	// returned as a *CaptchaError; answer it via LoginWithCaptcha.
	Login(ctx context.Context, username, password string) (*auth.ClientLoginToken, error)
	// LoginWithCaptcha retries the exchange with the CAPTCHA answer.
	LoginWithCaptcha(ctx context.Context, username, password string,
		challenge CaptchaChallenge) (*auth.ClientLoginToken, error)
}

// clientLoginFlow is the default implementation of ClientLoginFlowInterface.
type clientLoginFlow struct {
	config     ClientLoginFlowConfig
	httpClient httpservice.HTTPClientInterface
}

// NewClientLoginFlow creates a ClientLogin flow. A nil HTTP client selects
// the default dispatcher.
func NewClientLoginFlow(config ClientLoginFlowConfig,
	httpClient httpservice.HTTPClientInterface) ClientLoginFlowInterface {
	if httpClient == nil {
		httpClient = httpservice.NewHTTPClient()
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultClientLoginURL
	}
	return &clientLoginFlow{
		config:     config,
		httpClient: httpClient,
	}
}

// Login performs the username/password exchange.
func (f *clientLoginFlow) Login(ctx context.Context, username, password string) (
	*auth.ClientLoginToken, error) {
	return f.login(ctx, username, password, CaptchaChallenge{})
}

// LoginWithCaptcha retries the exchange with the CAPTCHA answer.
func (f *clientLoginFlow) LoginWithCaptcha(ctx context.Context, username, password string,
	challenge CaptchaChallenge) (*auth.ClientLoginToken, error) {
	return f.login(ctx, username, password, challenge)
}

func (f *clientLoginFlow) login(ctx context.Context, username, password string,
	challenge CaptchaChallenge) (*auth.ClientLoginToken, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, clientLoginLoggerComponentName))

	form := url.Values{}
	form.Set(paramAccountType, accountTypeDefault)
	form.Set(paramEmail, username)
	form.Set(paramPasswd, password)
	form.Set(paramService, f.config.ServiceName)
	form.Set(paramSource, f.config.Source)
	if challenge.Token != "" {
		form.Set(paramLoginToken, challenge.Token)
		form.Set(paramLoginCaptcha, challenge.Answer)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.Endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, ErrorEndpointUnreachable.WithError(err)
	}
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeFormURLEncoded)

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
	fields := parseBodyFields(string(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, f.loginRejection(resp.StatusCode, string(body), fields)
	}

	authValue := fields[bodyKeyAuth]
	if authValue == "" {
		return nil, ErrorMalformedTokenResponse.WithDescription(
			"ClientLogin response is missing the Auth value")
	}

	logger.Debug("ClientLogin exchange succeeded", log.String("user", log.MaskString(username)))
	return auth.NewClientLoginToken(authValue, f.config.Scopes)
}

// loginRejection maps a failed exchange to the matching typed error.
func (f *clientLoginFlow) loginRejection(statusCode int, body string,
	fields map[string]string) error {
	if fields[bodyKeyError] == clientLoginErrorCaptcha {
		captchaURL := fields[bodyKeyCaptchaURL]
		if captchaURL != "" && !strings.HasPrefix(captchaURL, "http") {
			captchaURL = captchaURLBase + captchaURL
		}
		return &CaptchaError{
			Err:          ErrorCaptchaRequired.WithResponse(statusCode, body),
			CaptchaToken: fields[bodyKeyCaptchaToken],
			CaptchaURL:   captchaURL,
		}
	}
	if statusCode == http.StatusForbidden {
		return ErrorBadAuthentication.WithResponse(statusCode, body)
	}
	return ErrorAuthorizationFailed.WithResponse(statusCode, body)
}

// parseBodyFields parses the newline-separated Key=Value response body used
// by ClientLogin and the AuthSub endpoints.
func parseBodyFields(body string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(body, "\n") {
		if key, value, found := strings.Cut(strings.TrimSpace(line), "="); found {
			fields[key] = value
		}
	}
	return fields
}
