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

import (
	"net/http"

	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/utils"
)

// ClientLoginToken is the opaque bearer credential issued by the ClientLogin
// username/password exchange.
type ClientLoginToken struct {
	token  string
	scopes []string
}

// NewClientLoginToken creates a ClientLogin token for the given scope URLs.
func NewClientLoginToken(token string, scopes []string) (*ClientLoginToken, error) {
	if token == "" {
		return nil, &ErrorMissingTokenValue
	}
	if len(scopes) == 0 {
		return nil, &ErrorMissingScope
	}
	return &ClientLoginToken{
		token:  token,
		scopes: utils.CopyStringSlice(scopes),
	}, nil
}

// Type returns the credential scheme of the token.
func (t *ClientLoginToken) Type() TokenType {
	return TokenTypeClientLogin
}

// Scopes returns the scope URLs the token was issued for.
func (t *ClientLoginToken) Scopes() []string {
	return t.scopes
}

// Value returns the opaque credential string.
func (t *ClientLoginToken) Value() string {
	return t.token
}

// Attach sets the GoogleLogin authorization header on the request.
func (t *ClientLoginToken) Attach(req *http.Request) error {
	req.Header.Set(constants.AuthorizationHeaderName, clientLoginAuthLabel+t.token)
	return nil
}

// Serialize returns the compact wire form of the token.
func (t *ClientLoginToken) Serialize() (string, error) {
	w := newWireWriter(TokenTypeClientLogin)
	w.add(wireKeyToken, t.token)
	w.addScopes(t.scopes)
	return w.String(), nil
}

func (t *ClientLoginToken) isToken() {}
