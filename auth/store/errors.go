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

import "github.com/google/gdata-go-client/autherror"

// Client errors for token store operations.
var (
	// ErrorInvalidTargetURL is the error when a lookup URL cannot be canonicalized.
	ErrorInvalidTargetURL = autherror.AuthError{
		Kind:             autherror.KindMalformedRequest,
		Type:             autherror.ClientErrorType,
		Code:             "STORE-1001",
		Message:          "Invalid target URL",
		ErrorDescription: "The lookup URL could not be parsed or is not absolute",
	}
	// ErrorInvalidScopeURL is the error when a token scope cannot be canonicalized.
	ErrorInvalidScopeURL = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "STORE-1002",
		Message:          "Invalid scope URL",
		ErrorDescription: "A scope URL of the token could not be parsed or is not absolute",
	}
	// ErrorTokenWithoutScope is the error when a scopeless token is added to a store.
	ErrorTokenWithoutScope = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "STORE-1003",
		Message:          "Token has no scope set",
		ErrorDescription: "Only tokens with at least one scope URL can be stored",
	}
)

// Server errors for token store operations.
var (
	// ErrorPersistenceFailure is the error when a store backend operation fails.
	ErrorPersistenceFailure = autherror.AuthError{
		Kind:             autherror.KindTransport,
		Type:             autherror.ServerErrorType,
		Code:             "STORE-1101",
		Message:          "Token store backend failure",
		ErrorDescription: "The persistent token store backend rejected the operation",
	}
	// ErrorStoredTokenCorrupt is the error when a persisted token line cannot be parsed.
	ErrorStoredTokenCorrupt = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ServerErrorType,
		Code:             "STORE-1102",
		Message:          "Stored token is corrupt",
		ErrorDescription: "A persisted credential could not be deserialized",
	}
)
