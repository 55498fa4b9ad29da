/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

// Package httpservice provides the HTTP dispatcher seam between this library
// and any HTTP client implementation. The request pipeline and the
// authorization flows never touch a transport directly; they hand fully formed
// requests to an HTTPClientInterface.
package httpservice

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPClientInterface defines the interface for HTTP client operations.
type HTTPClientInterface interface {
	// Do executes an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient implements HTTPClientInterface on top of net/http.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new HTTPClient with default settings. Redirect
// following is disabled; the request pipeline owns redirect handling so that
// credentials are re-selected and re-signed for each hop.
func NewHTTPClient() HTTPClientInterface {
	return NewHTTPClientWithTimeout(defaultTimeout)
}

// NewHTTPClientWithTimeout creates a new HTTPClient with a custom timeout.
func NewHTTPClientWithTimeout(timeout time.Duration) HTTPClientInterface {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// NewHTTPClientWithConfig creates a new HTTPClient with a custom http.Client.
func NewHTTPClientWithConfig(client *http.Client) HTTPClientInterface {
	return &HTTPClient{
		client: client,
	}
}

// Do executes an HTTP request and returns an HTTP response.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
