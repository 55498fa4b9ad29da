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
	"crypto/rsa"
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/autherror"
	"github.com/google/gdata-go-client/internal/system/log"
)

const boltLoggerComponentName = "BoltTokenStore"

var (
	boltBucketScopes = []byte("scopes")
	boltBucketMeta   = []byte("meta")
	boltKeyNextSeq   = []byte("next_seq")
)

const boltOpenTimeout = 5 * time.Second

// BoltTokenStore implements TokenStoreInterface on a bbolt file so that a
// single-user credential set survives process restarts. Each scope key maps
// to an insertion sequence number and the serialized token line.
type BoltTokenStore struct {
	db *bolt.DB
	// rsaKey, when set, is reattached to deserialized tokens that sign with
	// RSA-SHA1. Private keys are never persisted.
	rsaKey *rsa.PrivateKey
}

// NewBoltTokenStore opens (or creates) the bolt file at path.
func NewBoltTokenStore(path string, rsaKey *rsa.PrivateKey) (*BoltTokenStore, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, boltLoggerComponentName))

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, ErrorPersistenceFailure.WithError(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(boltBucketScopes); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(boltBucketMeta)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, ErrorPersistenceFailure.WithError(err)
	}

	logger.Debug("Bolt token store opened", log.String("path", path))
	return &BoltTokenStore{db: db, rsaKey: rsaKey}, nil
}

// Close closes the underlying bolt file.
func (s *BoltTokenStore) Close() error {
	return s.db.Close()
}

// AddToken registers the token under each canonicalized scope URL.
func (s *BoltTokenStore) AddToken(token auth.Token) error {
	scopes, err := canonicalScopes(token)
	if err != nil {
		return err
	}
	line, err := token.Serialize()
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(boltBucketMeta)
		seq := uint64(0)
		if raw := meta.Get(boltKeyNextSeq); len(raw) == 8 {
			seq = binary.BigEndian.Uint64(raw)
		}
		next := make([]byte, 8)
		binary.BigEndian.PutUint64(next, seq+1)
		if err := meta.Put(boltKeyNextSeq, next); err != nil {
			return err
		}

		scopesBucket := tx.Bucket(boltBucketScopes)
		for _, scope := range scopes {
			if err := scopesBucket.Put([]byte(scope), encodeBoltEntry(seq, line)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	return nil
}

// FindTokenForURL returns the longest-prefix match for the target URL.
func (s *BoltTokenStore) FindTokenForURL(targetURL string) (auth.Token, error) {
	candidates, err := s.loadCandidates()
	if err != nil {
		return nil, err
	}
	return bestMatch(candidates, targetURL)
}

// RemoveToken removes every scope registration of the token, matched by
// serialized form.
func (s *BoltTokenStore) RemoveToken(token auth.Token) error {
	line, err := token.Serialize()
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		scopesBucket := tx.Bucket(boltBucketScopes)
		var stale [][]byte
		cursor := scopesBucket.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			if _, storedLine := decodeBoltEntry(value); storedLine == line {
				stale = append(stale, append([]byte(nil), key...))
			}
		}
		for _, key := range stale {
			if err := scopesBucket.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	return nil
}

// RemoveAllTokens empties the store.
func (s *BoltTokenStore) RemoveAllTokens() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(boltBucketScopes); err != nil {
			return err
		}
		_, err := tx.CreateBucket(boltBucketScopes)
		return err
	})
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	return nil
}

// GetAllTokens returns the distinct tokens in the store.
func (s *BoltTokenStore) GetAllTokens() ([]auth.Token, error) {
	candidates, err := s.loadCandidates()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tokens []auth.Token
	for _, candidate := range candidates {
		line, err := candidate.token.Serialize()
		if err != nil {
			return nil, err
		}
		if !seen[line] {
			seen[line] = true
			tokens = append(tokens, candidate.token)
		}
	}
	return tokens, nil
}

// loadCandidates reads and deserializes every scope registration.
func (s *BoltTokenStore) loadCandidates() ([]scopeEntryWithScope, error) {
	var candidates []scopeEntryWithScope
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucketScopes).ForEach(func(key, value []byte) error {
			seq, line := decodeBoltEntry(value)
			token, err := auth.DeserializeWithRSAKey(line, s.rsaKey)
			if err != nil {
				return ErrorStoredTokenCorrupt.WithError(err)
			}
			candidates = append(candidates, scopeEntryWithScope{
				scope: string(key),
				seq:   seq,
				token: token,
			})
			return nil
		})
	})
	if err != nil {
		if autherror.KindOf(err) != "" {
			return nil, err
		}
		return nil, ErrorPersistenceFailure.WithError(err)
	}
	return candidates, nil
}

func encodeBoltEntry(seq uint64, line string) []byte {
	entry := make([]byte, 8+len(line))
	binary.BigEndian.PutUint64(entry[:8], seq)
	copy(entry[8:], line)
	return entry
}

func decodeBoltEntry(value []byte) (uint64, string) {
	if len(value) < 8 {
		return 0, ""
	}
	return binary.BigEndian.Uint64(value[:8]), string(value[8:])
}
