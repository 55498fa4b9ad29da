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

// Package auth defines the credential variants of the client: ClientLogin,
// AuthSub, OAuth 1.0a (request, access and 2-legged) and OAuth 2.0 tokens,
// together with their historical persistence wire format.
package auth

import "net/http"

// Token is the closed sum of credential variants. A token knows its scheme,
// the scope URLs it was issued for, how to authorize a pending request, and
// its serialized wire form.
//
// Tokens are immutable after construction, with one exception: an OAuth2Token
// replaces its access token and expiry atomically after a refresh.
type Token interface {
	// Type returns the credential scheme of the token.
	Type() TokenType
	// Scopes returns the scope URLs the token was issued for. The returned
	// slice must not be modified.
	Scopes() []string
	// Attach authorizes the request in place. The token itself is not
	// mutated.
	Attach(req *http.Request) error
	// Serialize returns the compact wire form of the token.
	Serialize() (string, error)

	// isToken closes the sum; only variants in this package implement Token.
	isToken()
}
