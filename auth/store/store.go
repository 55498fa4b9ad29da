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

// Package store provides the scoped token stores: an in-memory store, a
// file-backed bolt store, a SQL-backed multi-user store and a cache-backed
// wrapper. A store maps canonicalized scope URL prefixes to tokens; lookup
// returns the token with the longest scope prefix of the target URL.
package store

import (
	"sync"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/internal/system/log"
	"github.com/google/gdata-go-client/internal/system/utils"
)

const inMemoryLoggerComponentName = "InMemoryTokenStore"

// TokenStoreInterface defines the single-user token store contract. A lookup
// miss returns (nil, nil); errors are reserved for backend failures.
type TokenStoreInterface interface {
	// AddToken registers the token under each URL in its scope set. A token
	// already registered for an overlapping scope is replaced for exactly the
	// overlapping prefixes.
	AddToken(token auth.Token) error
	// FindTokenForURL returns the token whose scope is the longest prefix of
	// the target URL, or nil when no scope matches. Ties are broken by
	// insertion order, most recent first.
	FindTokenForURL(targetURL string) (auth.Token, error)
	// RemoveToken removes the token from every scope it is registered under.
	RemoveToken(token auth.Token) error
	// RemoveAllTokens empties the store.
	RemoveAllTokens() error
	// GetAllTokens returns the distinct tokens in the store.
	GetAllTokens() ([]auth.Token, error)
}

// scopeEntry is one scope registration. seq orders insertions for the
// longest-prefix tie break.
type scopeEntry struct {
	token auth.Token
	seq   uint64
}

// InMemoryTokenStore implements TokenStoreInterface with a scope-keyed map.
type InMemoryTokenStore struct {
	mu      sync.RWMutex
	entries map[string]scopeEntry
	nextSeq uint64
}

// NewInMemoryTokenStore creates an empty in-memory token store.
func NewInMemoryTokenStore() TokenStoreInterface {
	return &InMemoryTokenStore{
		entries: make(map[string]scopeEntry),
	}
}

// AddToken registers the token under each canonicalized scope URL.
func (s *InMemoryTokenStore) AddToken(token auth.Token) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, inMemoryLoggerComponentName))

	scopes, err := canonicalScopes(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.nextSeq
	s.nextSeq++
	for _, scope := range scopes {
		s.entries[scope] = scopeEntry{token: token, seq: seq}
	}
	logger.Debug("Token added", log.String(log.LoggerKeyTokenType, string(token.Type())),
		log.Int("scopeCount", len(scopes)))
	return nil
}

// FindTokenForURL returns the longest-prefix match for the target URL.
func (s *InMemoryTokenStore) FindTokenForURL(targetURL string) (auth.Token, error) {
	canonical, err := utils.CanonicalizeURL(targetURL)
	if err != nil {
		return nil, ErrorInvalidTargetURL.WithError(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best      auth.Token
		bestLen   int
		bestSeq   uint64
		bestFound bool
	)
	for scope, entry := range s.entries {
		if !utils.IsScopePrefix(scope, canonical) {
			continue
		}
		if !bestFound || len(scope) > bestLen || (len(scope) == bestLen && entry.seq > bestSeq) {
			best = entry.token
			bestLen = len(scope)
			bestSeq = entry.seq
			bestFound = true
		}
	}
	if !bestFound {
		return nil, nil
	}
	return best, nil
}

// RemoveToken removes every scope registration of the token.
func (s *InMemoryTokenStore) RemoveToken(token auth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for scope, entry := range s.entries {
		if entry.token == token {
			delete(s.entries, scope)
		}
	}
	return nil
}

// RemoveAllTokens empties the store.
func (s *InMemoryTokenStore) RemoveAllTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]scopeEntry)
	return nil
}

// GetAllTokens returns the distinct tokens in the store.
func (s *InMemoryTokenStore) GetAllTokens() ([]auth.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[auth.Token]bool)
	var tokens []auth.Token
	for _, entry := range s.entries {
		if !seen[entry.token] {
			seen[entry.token] = true
			tokens = append(tokens, entry.token)
		}
	}
	return tokens, nil
}

// canonicalScopes canonicalizes the scope set of a token for use as store keys.
func canonicalScopes(token auth.Token) ([]string, error) {
	rawScopes := token.Scopes()
	if len(rawScopes) == 0 {
		return nil, ErrorTokenWithoutScope.WithDescription(
			"tokens of scheme " + string(token.Type()) + " cannot be stored without a scope set")
	}
	scopes := make([]string, 0, len(rawScopes))
	for _, scope := range rawScopes {
		canonical, err := utils.CanonicalizeURL(scope)
		if err != nil {
			return nil, ErrorInvalidScopeURL.WithError(err)
		}
		scopes = append(scopes, canonical)
	}
	return scopes, nil
}

// bestMatch selects the longest-prefix scope match among candidates, breaking
// length ties by sequence (most recent wins). Shared by the persistent stores.
func bestMatch(candidates []scopeEntryWithScope, targetURL string) (auth.Token, error) {
	canonical, err := utils.CanonicalizeURL(targetURL)
	if err != nil {
		return nil, ErrorInvalidTargetURL.WithError(err)
	}

	var (
		best      auth.Token
		bestLen   int
		bestSeq   uint64
		bestFound bool
	)
	for _, candidate := range candidates {
		if !utils.IsScopePrefix(candidate.scope, canonical) {
			continue
		}
		if !bestFound || len(candidate.scope) > bestLen ||
			(len(candidate.scope) == bestLen && candidate.seq > bestSeq) {
			best = candidate.token
			bestLen = len(candidate.scope)
			bestSeq = candidate.seq
			bestFound = true
		}
	}
	if !bestFound {
		return nil, nil
	}
	return best, nil
}

// scopeEntryWithScope is a scope registration together with its scope key.
type scopeEntryWithScope struct {
	scope string
	seq   uint64
	token auth.Token
}
