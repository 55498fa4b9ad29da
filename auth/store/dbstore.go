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
	"errors"
	"fmt"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/internal/system/database/model"
	"github.com/google/gdata-go-client/internal/system/database/provider"
	"github.com/google/gdata-go-client/internal/system/log"
)

const dbLoggerComponentName = "DBTokenStore"

// DBTokenStore implements UserTokenStoreInterface on a SQL database, for
// server-side apps that persist many users' credentials. The TOKEN_STORE table
// holds one row per (user, scope) registration with the serialized token line.
type DBTokenStore struct {
	dbProvider provider.DBProviderInterface
	// rsaKey, when set, is reattached to deserialized tokens that sign with
	// RSA-SHA1. Private keys are never persisted.
	rsaKey *rsa.PrivateKey
}

// NewDBTokenStore creates a token store over the given database provider.
func NewDBTokenStore(dbProvider provider.DBProviderInterface, rsaKey *rsa.PrivateKey) UserTokenStoreInterface {
	return &DBTokenStore{
		dbProvider: dbProvider,
		rsaKey:     rsaKey,
	}
}

// AddToken registers the token for the given user. Overlapping scope rows are
// replaced within one transaction.
func (s *DBTokenStore) AddToken(userID string, token auth.Token) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, dbLoggerComponentName))

	scopes, err := canonicalScopes(token)
	if err != nil {
		return err
	}
	line, err := token.Serialize()
	if err != nil {
		return err
	}

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}

	results, err := dbClient.Query(queryGetMaxSeq, userID)
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	seq := int64(1)
	if len(results) == 1 {
		seq = asInt64(results[0]["max_seq"]) + 1
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	for _, scope := range scopes {
		if _, err := tx.Exec(queryDeleteTokenScope.Query, userID, scope); err != nil {
			return rollbackOnError(logger, tx, err)
		}
		if _, err := tx.Exec(queryInsertTokenScope.Query, userID, scope, seq, line); err != nil {
			return rollbackOnError(logger, tx, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return ErrorPersistenceFailure.WithError(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// FindTokenForURL returns the user's longest-prefix match for the target URL.
func (s *DBTokenStore) FindTokenForURL(userID, targetURL string) (auth.Token, error) {
	candidates, err := s.loadCandidates(userID)
	if err != nil {
		return nil, err
	}
	return bestMatch(candidates, targetURL)
}

// RemoveToken removes every registration of the token, matched by serialized
// form.
func (s *DBTokenStore) RemoveToken(userID string, token auth.Token) error {
	line, err := token.Serialize()
	if err != nil {
		return err
	}

	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	if _, err := dbClient.Execute(queryDeleteTokenByLine, userID, line); err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	return nil
}

// RemoveAllTokens removes every registration of the user.
func (s *DBTokenStore) RemoveAllTokens(userID string) error {
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	if _, err := dbClient.Execute(queryDeleteAllTokensForUser, userID); err != nil {
		return ErrorPersistenceFailure.WithError(err)
	}
	return nil
}

// GetAllTokens returns the distinct tokens of the user.
func (s *DBTokenStore) GetAllTokens(userID string) ([]auth.Token, error) {
	candidates, err := s.loadCandidates(userID)
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

// loadCandidates reads and deserializes every scope registration of the user.
func (s *DBTokenStore) loadCandidates(userID string) ([]scopeEntryWithScope, error) {
	dbClient, err := s.dbProvider.GetDBClient()
	if err != nil {
		return nil, ErrorPersistenceFailure.WithError(err)
	}

	results, err := dbClient.Query(queryGetTokensByUser, userID)
	if err != nil {
		return nil, ErrorPersistenceFailure.WithError(err)
	}

	candidates := make([]scopeEntryWithScope, 0, len(results))
	for _, row := range results {
		line := asString(row["token"])
		token, err := auth.DeserializeWithRSAKey(line, s.rsaKey)
		if err != nil {
			return nil, ErrorStoredTokenCorrupt.WithError(err)
		}
		candidates = append(candidates, scopeEntryWithScope{
			scope: asString(row["scope"]),
			seq:   uint64(asInt64(row["seq"])),
			token: token,
		})
	}
	return candidates, nil
}

// rollbackOnError rolls back the transaction and wraps the original error.
func rollbackOnError(logger *log.Logger, tx model.TxInterface, err error) error {
	if rollbackErr := tx.Rollback(); rollbackErr != nil {
		logger.Error("Failed to rollback transaction", log.Error(rollbackErr))
		err = errors.Join(err, errors.New("failed to rollback transaction: "+rollbackErr.Error()))
	}
	return ErrorPersistenceFailure.WithError(err)
}

// asString reads a column value scanned as string or []byte.
func asString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// asInt64 reads a column value scanned as a numeric type.
func asInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		var n int64
		for _, b := range v {
			if b < '0' || b > '9' {
				break
			}
			n = n*10 + int64(b-'0')
		}
		return n
	default:
		return 0
	}
}
