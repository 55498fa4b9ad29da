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

// Package httpmock provides mock HTTP dispatchers for testing the request
// pipeline without a network.
package httpmock

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// MockHTTPClient is a mock implementation of the HTTPClientInterface.
type MockHTTPClient struct {
	// MockDo defines the behavior for the Do method.
	MockDo func(req *http.Request) (*http.Response, error)

	// DoCalls tracks the requests passed to Do. Request bodies are buffered
	// into DoBodies at call time since the pipeline consumes them.
	DoCalls  []*http.Request
	DoBodies []string
}

// Do mocks the Do method of the HTTPClientInterface.
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		_ = req.Body.Close()
		body = string(data)
		req.Body = io.NopCloser(bytes.NewReader(data))
	}
	m.DoCalls = append(m.DoCalls, req)
	m.DoBodies = append(m.DoBodies, body)

	if m.MockDo != nil {
		return m.MockDo(req)
	}
	return NewResponse(http.StatusOK, "", nil), nil
}

// ScriptedResponse is one step of a scripted exchange.
type ScriptedResponse struct {
	Status int
	Body   string
	Header http.Header
	Err    error
}

// NewScriptedClient returns a mock that answers each call with the next
// scripted response and fails the test's request when the script runs out.
func NewScriptedClient(script ...ScriptedResponse) *MockHTTPClient {
	mock := &MockHTTPClient{}
	step := 0
	mock.MockDo = func(req *http.Request) (*http.Response, error) {
		if step >= len(script) {
			return nil, fmt.Errorf("unexpected request %d to %s", step+1, req.URL)
		}
		current := script[step]
		step++
		if current.Err != nil {
			return nil, current.Err
		}
		return NewResponse(current.Status, current.Body, current.Header), nil
	}
	return mock
}

// NewResponse builds an *http.Response with a readable body.
func NewResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}
