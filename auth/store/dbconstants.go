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

import dbmodel "github.com/google/gdata-go-client/internal/system/database/model"

var (
	// queryGetTokensByUser retrieves every scope registration of a user.
	queryGetTokensByUser = dbmodel.DBQuery{
		ID:          "TSQ-TOKEN_STORE-01",
		Query:       "SELECT SCOPE, SEQ, TOKEN FROM TOKEN_STORE WHERE USER_ID = $1",
		SQLiteQuery: "SELECT SCOPE, SEQ, TOKEN FROM TOKEN_STORE WHERE USER_ID = ?",
	}

	// queryGetMaxSeq retrieves the highest insertion sequence of a user.
	queryGetMaxSeq = dbmodel.DBQuery{
		ID:          "TSQ-TOKEN_STORE-02",
		Query:       "SELECT COALESCE(MAX(SEQ), 0) AS MAX_SEQ FROM TOKEN_STORE WHERE USER_ID = $1",
		SQLiteQuery: "SELECT COALESCE(MAX(SEQ), 0) AS MAX_SEQ FROM TOKEN_STORE WHERE USER_ID = ?",
	}

	// queryDeleteTokenScope removes one scope registration of a user.
	queryDeleteTokenScope = dbmodel.DBQuery{
		ID:          "TSQ-TOKEN_STORE-03",
		Query:       "DELETE FROM TOKEN_STORE WHERE USER_ID = $1 AND SCOPE = $2",
		SQLiteQuery: "DELETE FROM TOKEN_STORE WHERE USER_ID = ? AND SCOPE = ?",
	}

	// queryInsertTokenScope inserts one scope registration of a user.
	queryInsertTokenScope = dbmodel.DBQuery{
		ID:          "TSQ-TOKEN_STORE-04",
		Query:       "INSERT INTO TOKEN_STORE (USER_ID, SCOPE, SEQ, TOKEN) VALUES ($1, $2, $3, $4)",
		SQLiteQuery: "INSERT INTO TOKEN_STORE (USER_ID, SCOPE, SEQ, TOKEN) VALUES (?, ?, ?, ?)",
	}

	// queryDeleteTokenByLine removes every registration of one serialized token.
	queryDeleteTokenByLine = dbmodel.DBQuery{
		ID:          "TSQ-TOKEN_STORE-05",
		Query:       "DELETE FROM TOKEN_STORE WHERE USER_ID = $1 AND TOKEN = $2",
		SQLiteQuery: "DELETE FROM TOKEN_STORE WHERE USER_ID = ? AND TOKEN = ?",
	}

	// queryDeleteAllTokensForUser removes every registration of a user.
	queryDeleteAllTokensForUser = dbmodel.DBQuery{
		ID:          "TSQ-TOKEN_STORE-06",
		Query:       "DELETE FROM TOKEN_STORE WHERE USER_ID = $1",
		SQLiteQuery: "DELETE FROM TOKEN_STORE WHERE USER_ID = ?",
	}
)
