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
	"sync"

	"github.com/google/gdata-go-client/auth"
)

// UserTokenStoreInterface defines the multi-user token store contract. It
// mirrors TokenStoreInterface with a user key on every operation, for
// server-side apps that juggle many users' tokens in one process.
type UserTokenStoreInterface interface {
	AddToken(userID string, token auth.Token) error
	FindTokenForURL(userID, targetURL string) (auth.Token, error)
	RemoveToken(userID string, token auth.Token) error
	RemoveAllTokens(userID string) error
	GetAllTokens(userID string) ([]auth.Token, error)
}

// MultiUserTokenStore implements UserTokenStoreInterface with one in-memory
// store per user.
type MultiUserTokenStore struct {
	mu     sync.RWMutex
	stores map[string]TokenStoreInterface
}

// NewMultiUserTokenStore creates an empty multi-user token store.
func NewMultiUserTokenStore() UserTokenStoreInterface {
	return &MultiUserTokenStore{
		stores: make(map[string]TokenStoreInterface),
	}
}

// AddToken registers the token for the given user.
func (s *MultiUserTokenStore) AddToken(userID string, token auth.Token) error {
	return s.storeForUser(userID, true).AddToken(token)
}

// FindTokenForURL returns the user's longest-prefix match for the target URL.
func (s *MultiUserTokenStore) FindTokenForURL(userID, targetURL string) (auth.Token, error) {
	userStore := s.storeForUser(userID, false)
	if userStore == nil {
		return nil, nil
	}
	return userStore.FindTokenForURL(targetURL)
}

// RemoveToken removes the token from the user's store.
func (s *MultiUserTokenStore) RemoveToken(userID string, token auth.Token) error {
	userStore := s.storeForUser(userID, false)
	if userStore == nil {
		return nil
	}
	return userStore.RemoveToken(token)
}

// RemoveAllTokens empties the user's store.
func (s *MultiUserTokenStore) RemoveAllTokens(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.stores, userID)
	return nil
}

// GetAllTokens returns the distinct tokens of the user.
func (s *MultiUserTokenStore) GetAllTokens(userID string) ([]auth.Token, error) {
	userStore := s.storeForUser(userID, false)
	if userStore == nil {
		return nil, nil
	}
	return userStore.GetAllTokens()
}

// storeForUser returns the user's store, creating it when create is set.
func (s *MultiUserTokenStore) storeForUser(userID string, create bool) TokenStoreInterface {
	s.mu.RLock()
	userStore := s.stores[userID]
	s.mu.RUnlock()
	if userStore != nil || !create {
		return userStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if userStore = s.stores[userID]; userStore == nil {
		userStore = NewInMemoryTokenStore()
		s.stores[userID] = userStore
	}
	return userStore
}

// userScopedStore adapts one user of a UserTokenStoreInterface to the
// single-user TokenStoreInterface expected by the request pipeline.
type userScopedStore struct {
	store  UserTokenStoreInterface
	userID string
}

// ScopedToUser returns a single-user view over a multi-user store.
func ScopedToUser(store UserTokenStoreInterface, userID string) TokenStoreInterface {
	return &userScopedStore{store: store, userID: userID}
}

func (s *userScopedStore) AddToken(token auth.Token) error {
	return s.store.AddToken(s.userID, token)
}

func (s *userScopedStore) FindTokenForURL(targetURL string) (auth.Token, error) {
	return s.store.FindTokenForURL(s.userID, targetURL)
}

func (s *userScopedStore) RemoveToken(token auth.Token) error {
	return s.store.RemoveToken(s.userID, token)
}

func (s *userScopedStore) RemoveAllTokens() error {
	return s.store.RemoveAllTokens(s.userID)
}

func (s *userScopedStore) GetAllTokens() ([]auth.Token, error) {
	return s.store.GetAllTokens(s.userID)
}
