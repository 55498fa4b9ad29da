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

package client

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/google/gdata-go-client/internal/system/database/model"
)

type DBClientTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   model.DBInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.db = model.NewDB(db)
}

func (suite *DBClientTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryLowercasesColumnNames() {
	suite.mock.ExpectQuery("SELECT SCOPE, TOKEN FROM GD_TOKEN WHERE USER_ID = $1").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"SCOPE", "TOKEN"}).
			AddRow("https://www.google.com/calendar/", "ClientLogin Token=t,Scope=s"))

	dbClient := NewDBClient(suite.db, "postgres")
	rows, err := dbClient.Query(model.DBQuery{
		ID:    "TST-001",
		Query: "SELECT SCOPE, TOKEN FROM GD_TOKEN WHERE USER_ID = $1",
	}, "alice")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 1)
	assert.Equal(suite.T(), "https://www.google.com/calendar/", rows[0]["scope"])
	assert.Equal(suite.T(), "ClientLogin Token=t,Scope=s", rows[0]["token"])
}

func (suite *DBClientTestSuite) TestQuerySelectsDialectVariant() {
	suite.mock.ExpectQuery("SELECT SCOPE FROM GD_TOKEN WHERE USER_ID = ?").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"SCOPE"}))

	dbClient := NewDBClient(suite.db, "sqlite")
	_, err := dbClient.Query(model.DBQuery{
		ID:          "TST-002",
		Query:       "SELECT SCOPE FROM GD_TOKEN WHERE USER_ID = $1",
		SQLiteQuery: "SELECT SCOPE FROM GD_TOKEN WHERE USER_ID = ?",
	}, "alice")
	assert.NoError(suite.T(), err)
}

func (suite *DBClientTestSuite) TestQueryErrorPropagates() {
	suite.mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection reset"))

	dbClient := NewDBClient(suite.db, "postgres")
	_, err := dbClient.Query(model.DBQuery{ID: "TST-003", Query: "SELECT 1"})
	assert.ErrorContains(suite.T(), err, "connection reset")
}

func (suite *DBClientTestSuite) TestExecuteReturnsRowsAffected() {
	suite.mock.ExpectExec("DELETE FROM GD_TOKEN WHERE USER_ID = $1").
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 3))

	dbClient := NewDBClient(suite.db, "postgres")
	affected, err := dbClient.Execute(model.DBQuery{
		ID:    "TST-004",
		Query: "DELETE FROM GD_TOKEN WHERE USER_ID = $1",
	}, "alice")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), affected)
}

func (suite *DBClientTestSuite) TestTransactionCommit() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO GD_TOKEN (USER_ID) VALUES ($1)").
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(1, 1))
	suite.mock.ExpectCommit()

	dbClient := NewDBClient(suite.db, "postgres")
	tx, err := dbClient.BeginTx()
	assert.NoError(suite.T(), err)
	_, err = tx.Exec("INSERT INTO GD_TOKEN (USER_ID) VALUES ($1)", "alice")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), tx.Commit())
}

func (suite *DBClientTestSuite) TestTransactionRollback() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectRollback()

	dbClient := NewDBClient(suite.db, "postgres")
	tx, err := dbClient.BeginTx()
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), tx.Rollback())
}
