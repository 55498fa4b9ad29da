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

package auth

import "net/http"

// OpaqueToken preserves a serialized credential of an unrecognized scheme so
// that a token collection written by a newer library version round-trips
// unchanged. Opaque tokens cannot authorize requests.
type OpaqueToken struct {
	scheme string
	raw    string
}

// Type returns the credential scheme of the token.
func (t *OpaqueToken) Type() TokenType {
	return TokenTypeOpaque
}

// Scheme returns the unrecognized scheme tag of the preserved line.
func (t *OpaqueToken) Scheme() string {
	return t.scheme
}

// Scopes returns nil; the scope set of an unrecognized scheme is unknown.
func (t *OpaqueToken) Scopes() []string {
	return nil
}

// Attach fails; opaque tokens are preserved for round-trip only.
func (t *OpaqueToken) Attach(_ *http.Request) error {
	return ErrorOpaqueAttach.WithDescription("cannot attach credential of scheme " + t.scheme)
}

// Serialize returns the preserved line unchanged.
func (t *OpaqueToken) Serialize() (string, error) {
	return t.raw, nil
}

func (t *OpaqueToken) isToken() {}
