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
	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/internal/system/cache"
	"github.com/google/gdata-go-client/internal/system/utils"
)

const tokenListCacheName = "UserTokenList"

// CachedBackedTokenStore wraps a persistent multi-user store with a per-user
// token list cache, so repeated lookups against the same user avoid the
// backend round trip. Writes invalidate the user's cache entry.
type CachedBackedTokenStore struct {
	backend UserTokenStoreInterface
	cache   cache.CacheInterface[[]auth.Token]
}

// NewCachedBackedTokenStore creates a cache-backed view over the given store.
func NewCachedBackedTokenStore(backend UserTokenStoreInterface,
	cacheConfig cache.Config) UserTokenStoreInterface {
	return &CachedBackedTokenStore{
		backend: backend,
		cache:   cache.NewCache[[]auth.Token](tokenListCacheName, cacheConfig),
	}
}

// AddToken registers the token for the user and invalidates the cached list.
func (s *CachedBackedTokenStore) AddToken(userID string, token auth.Token) error {
	if err := s.backend.AddToken(userID, token); err != nil {
		return err
	}
	s.cache.Delete(cache.CacheKey{Key: userID})
	return nil
}

// FindTokenForURL returns the user's longest-prefix match for the target URL,
// serving the candidate list from cache when possible.
func (s *CachedBackedTokenStore) FindTokenForURL(userID, targetURL string) (auth.Token, error) {
	tokens, err := s.userTokens(userID)
	if err != nil {
		return nil, err
	}

	var candidates []scopeEntryWithScope
	for i, token := range tokens {
		for _, scope := range token.Scopes() {
			canonical, err := utils.CanonicalizeURL(scope)
			if err != nil {
				return nil, ErrorInvalidScopeURL.WithError(err)
			}
			candidates = append(candidates, scopeEntryWithScope{
				scope: canonical,
				seq:   uint64(i),
				token: token,
			})
		}
	}
	return bestMatch(candidates, targetURL)
}

// RemoveToken removes the token and invalidates the cached list.
func (s *CachedBackedTokenStore) RemoveToken(userID string, token auth.Token) error {
	if err := s.backend.RemoveToken(userID, token); err != nil {
		return err
	}
	s.cache.Delete(cache.CacheKey{Key: userID})
	return nil
}

// RemoveAllTokens empties the user's store and invalidates the cached list.
func (s *CachedBackedTokenStore) RemoveAllTokens(userID string) error {
	if err := s.backend.RemoveAllTokens(userID); err != nil {
		return err
	}
	s.cache.Delete(cache.CacheKey{Key: userID})
	return nil
}

// GetAllTokens returns the distinct tokens of the user.
func (s *CachedBackedTokenStore) GetAllTokens(userID string) ([]auth.Token, error) {
	return s.userTokens(userID)
}

// userTokens serves the user's token list from cache, loading from the
// backend on a miss.
func (s *CachedBackedTokenStore) userTokens(userID string) ([]auth.Token, error) {
	key := cache.CacheKey{Key: userID}
	if tokens, found := s.cache.Get(key); found {
		return tokens, nil
	}
	tokens, err := s.backend.GetAllTokens(userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, tokens)
	return tokens, nil
}
