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

package store

import (
	"os"

	"github.com/google/gdata-go-client/auth"
)

// SaveTokens writes the store's tokens to path in the one-line-per-token wire
// format. Unknown-scheme tokens loaded earlier are written back unchanged.
func SaveTokens(tokenStore TokenStoreInterface, path string) error {
	tokens, err := tokenStore.GetAllTokens()
	if err != nil {
		return err
	}
	blob, err := auth.SerializeTokens(tokens)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(blob+"\n"), 0o600); err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	return nil
}

// LoadTokens reads a token file written by SaveTokens and adds each
// recognized token to the store. Tokens of unknown schemes are returned
// separately so the caller can preserve them on the next save.
func LoadTokens(tokenStore TokenStoreInterface, path string) ([]auth.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrorPersistenceFailure.WithError(err)
	}
	tokens, err := auth.DeserializeTokens(string(data))
	if err != nil {
		return nil, err
	}

	var opaque []auth.Token
	for _, token := range tokens {
		if token.Type() == auth.TokenTypeOpaque {
			opaque = append(opaque, token)
			continue
		}
		if err := tokenStore.AddToken(token); err != nil {
			return nil, err
		}
	}
	return opaque, nil
}
