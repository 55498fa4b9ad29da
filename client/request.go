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

package client

import (
	"net/http"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/internal/system/constants"
)

// Request is a pending service request. The body is buffered so that the
// pipeline can replay it across redirects and the refresh-and-retry attempt.
type Request struct {
	// Method is the HTTP method; empty selects GET.
	Method string
	// URL is the absolute request URL.
	URL string
	// Header holds additional request headers.
	Header http.Header
	// Body is the buffered request body; nil means no body.
	Body []byte
	// Token pins the request to an explicit credential and skips the token
	// store lookup. A nil Token selects from the store by scope.
	Token auth.Token
	// UserID selects the user partition when the client is backed by a
	// multi-user store. Empty selects the client's default store.
	UserID string
}

// NewRequest creates a request for the given method and URL.
func NewRequest(method, requestURL string) *Request {
	if method == "" {
		method = http.MethodGet
	}
	return &Request{
		Method: method,
		URL:    requestURL,
		Header: make(http.Header),
	}
}

// WithHeader sets a request header and returns the request for chaining.
func (r *Request) WithHeader(name, value string) *Request {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(name, value)
	return r
}

// WithBody sets the buffered request body and its content type.
func (r *Request) WithBody(body []byte, contentType string) *Request {
	r.Body = body
	if contentType != "" {
		r.WithHeader(constants.ContentTypeHeaderName, contentType)
	}
	return r
}

// WithToken pins the request to an explicit credential.
func (r *Request) WithToken(token auth.Token) *Request {
	r.Token = token
	return r
}

// WithUserID selects the user partition of a multi-user store.
func (r *Request) WithUserID(userID string) *Request {
	r.UserID = userID
	return r
}
