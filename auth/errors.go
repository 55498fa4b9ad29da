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

package auth

import "github.com/google/gdata-go-client/autherror"

// Client errors for token construction and serialization.
var (
	// ErrorMissingTokenValue is the error when a token is constructed without its credential string.
	ErrorMissingTokenValue = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "AUTH-1001",
		Message:          "Missing token value",
		ErrorDescription: "A credential string is required to construct the token",
	}
	// ErrorMissingScope is the error when a token is constructed without a scope set.
	ErrorMissingScope = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "AUTH-1002",
		Message:          "Missing scope",
		ErrorDescription: "Every token declares at least one scope URL",
	}
	// ErrorMalformedToken is the error when a serialized token is missing required keys.
	ErrorMalformedToken = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "AUTH-1003",
		Message:          "Malformed serialized token",
		ErrorDescription: "The serialized form is missing a required key or is not Scheme Key=Val,... shaped",
	}
	// ErrorUnsupportedScheme is the error when a serialized token carries an unknown scheme tag.
	ErrorUnsupportedScheme = autherror.AuthError{
		Kind:             autherror.KindUnsupportedVariant,
		Type:             autherror.ClientErrorType,
		Code:             "AUTH-1004",
		Message:          "Unsupported credential scheme",
		ErrorDescription: "The scheme tag does not identify a known credential variant",
	}
	// ErrorOpaqueAttach is the error when an opaque preserved token is attached to a request.
	ErrorOpaqueAttach = autherror.AuthError{
		Kind:             autherror.KindUnsupportedVariant,
		Type:             autherror.ClientErrorType,
		Code:             "AUTH-1005",
		Message:          "Cannot attach opaque token",
		ErrorDescription: "Tokens of an unrecognized scheme are preserved for round-trip only",
	}
	// ErrorInvalidRSAKey is the error when an RSA private key cannot be parsed.
	ErrorInvalidRSAKey = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "AUTH-1006",
		Message:          "Invalid RSA private key",
		ErrorDescription: "The key material is not a parsable RSA private key",
	}
	// ErrorMissingOAuthField is the error when an OAuth token is constructed without a required field.
	ErrorMissingOAuthField = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "AUTH-1007",
		Message:          "Missing OAuth token field",
		ErrorDescription: "A required OAuth credential field is empty",
	}
)

func errMissingOAuthField(field string) error {
	return ErrorMissingOAuthField.WithDescription("required field " + field + " is empty")
}
