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

// Package databasemock provides mock implementations of the database
// interfaces for testing.
package databasemock

import (
	"database/sql"

	"github.com/google/gdata-go-client/internal/system/database/client"
	"github.com/google/gdata-go-client/internal/system/database/model"
)

// MockSQLResult is a mock implementation of sql.Result.
type MockSQLResult struct {
	LastID  int64
	Rows    int64
	LastErr error
	RowsErr error
}

// LastInsertId mocks the LastInsertId method of sql.Result.
func (m MockSQLResult) LastInsertId() (int64, error) {
	return m.LastID, m.LastErr
}

// RowsAffected mocks the RowsAffected method of sql.Result.
func (m MockSQLResult) RowsAffected() (int64, error) {
	return m.Rows, m.RowsErr
}

// MockDBClient is a mock implementation of the DBClientInterface.
type MockDBClient struct {
	// MockQuery defines the behavior for the Query method.
	MockQuery func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)

	// MockExecute defines the behavior for the Execute method.
	MockExecute func(query model.DBQuery, args ...interface{}) (int64, error)

	// MockBeginTx defines the behavior for the BeginTx method.
	MockBeginTx func() (model.TxInterface, error)

	// MockClose defines the behavior for the Close method.
	MockClose func() error

	// QueryCalls tracks the arguments passed to Query.
	QueryCalls []struct {
		Query model.DBQuery
		Args  []interface{}
	}

	// ExecuteCalls tracks the arguments passed to Execute.
	ExecuteCalls []struct {
		Query model.DBQuery
		Args  []interface{}
	}

	// BeginTxCalls tracks the calls to BeginTx.
	BeginTxCalls int

	// CloseCalls tracks the calls to Close.
	CloseCalls int
}

// Query mocks the Query method of the DBClientInterface.
func (m *MockDBClient) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	m.QueryCalls = append(m.QueryCalls, struct {
		Query model.DBQuery
		Args  []interface{}
	}{query, args})

	if m.MockQuery != nil {
		return m.MockQuery(query, args...)
	}
	return []map[string]interface{}{}, nil
}

// Execute mocks the Execute method of the DBClientInterface.
func (m *MockDBClient) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	m.ExecuteCalls = append(m.ExecuteCalls, struct {
		Query model.DBQuery
		Args  []interface{}
	}{query, args})

	if m.MockExecute != nil {
		return m.MockExecute(query, args...)
	}
	return 0, nil
}

// BeginTx mocks the BeginTx method of the DBClientInterface.
func (m *MockDBClient) BeginTx() (model.TxInterface, error) {
	m.BeginTxCalls++

	if m.MockBeginTx != nil {
		return m.MockBeginTx()
	}
	return &MockTx{}, nil
}

// Close mocks the Close method of the DBClientInterface.
func (m *MockDBClient) Close() error {
	m.CloseCalls++

	if m.MockClose != nil {
		return m.MockClose()
	}
	return nil
}

// MockTx is a mock implementation of the TxInterface.
type MockTx struct {
	// MockCommit defines the behavior for the Commit method.
	MockCommit func() error

	// MockRollback defines the behavior for the Rollback method.
	MockRollback func() error

	// MockExec defines the behavior for the Exec method.
	MockExec func(query string, args ...interface{}) (sql.Result, error)

	// ExecCalls tracks the arguments passed to Exec.
	ExecCalls []struct {
		Query string
		Args  []interface{}
	}

	// CommitCalls tracks the calls to Commit.
	CommitCalls int

	// RollbackCalls tracks the calls to Rollback.
	RollbackCalls int
}

// Commit mocks the Commit method of the TxInterface.
func (m *MockTx) Commit() error {
	m.CommitCalls++

	if m.MockCommit != nil {
		return m.MockCommit()
	}
	return nil
}

// Rollback mocks the Rollback method of the TxInterface.
func (m *MockTx) Rollback() error {
	m.RollbackCalls++

	if m.MockRollback != nil {
		return m.MockRollback()
	}
	return nil
}

// Exec mocks the Exec method of the TxInterface.
func (m *MockTx) Exec(query string, args ...interface{}) (sql.Result, error) {
	m.ExecCalls = append(m.ExecCalls, struct {
		Query string
		Args  []interface{}
	}{query, args})

	if m.MockExec != nil {
		return m.MockExec(query, args...)
	}
	return MockSQLResult{Rows: 1}, nil
}

// MockDBProvider is a mock implementation of the DBProviderInterface.
type MockDBProvider struct {
	// MockGetDBClient defines the behavior for the GetDBClient method.
	MockGetDBClient func() (client.DBClientInterface, error)

	// MockClose defines the behavior for the Close method.
	MockClose func() error
}

// GetDBClient mocks the GetDBClient method of the DBProviderInterface.
func (m *MockDBProvider) GetDBClient() (client.DBClientInterface, error) {
	if m.MockGetDBClient != nil {
		return m.MockGetDBClient()
	}
	return &MockDBClient{}, nil
}

// Close mocks the Close method of the DBProviderInterface.
func (m *MockDBProvider) Close() error {
	if m.MockClose != nil {
		return m.MockClose()
	}
	return nil
}
