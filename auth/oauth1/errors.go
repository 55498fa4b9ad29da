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

package oauth1

import "github.com/google/gdata-go-client/autherror"

// Client errors for OAuth 1.0a request signing.
var (
	// ErrorMissingRSAKey is the error when RSA-SHA1 signing is requested without a private key.
	ErrorMissingRSAKey = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "OAUTH1-1001",
		Message:          "Missing RSA private key",
		ErrorDescription: "The RSA-SHA1 signature method requires an RSA private key",
	}
	// ErrorUnknownSignatureMethod is the error when an unrecognized signature method is requested.
	ErrorUnknownSignatureMethod = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "OAUTH1-1002",
		Message:          "Unknown signature method",
		ErrorDescription: "The oauth_signature_method is not one of HMAC-SHA1, RSA-SHA1 or PLAINTEXT",
	}
	// ErrorDuplicateOAuthParam is the error when the request URL already carries oauth parameters.
	ErrorDuplicateOAuthParam = autherror.AuthError{
		Kind:             autherror.KindMalformedRequest,
		Type:             autherror.ClientErrorType,
		Code:             "OAUTH1-1003",
		Message:          "Duplicate oauth parameter",
		ErrorDescription: "The request already carries an oauth protocol parameter that the signer would add",
	}
	// ErrorInvalidRequestURL is the error when the request URL cannot be normalized.
	ErrorInvalidRequestURL = autherror.AuthError{
		Kind:             autherror.KindMalformedRequest,
		Type:             autherror.ClientErrorType,
		Code:             "OAUTH1-1004",
		Message:          "Invalid request URL",
		ErrorDescription: "The request URL could not be parsed or is not absolute",
	}
	// ErrorMissingConsumerKey is the error when signing is attempted without a consumer key.
	ErrorMissingConsumerKey = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "OAUTH1-1005",
		Message:          "Missing consumer key",
		ErrorDescription: "An oauth_consumer_key is required to sign a request",
	}
)

var errMissingRSAKey = &ErrorMissingRSAKey

func errUnknownSignatureMethod(method string) error {
	return ErrorUnknownSignatureMethod.WithDescription("unsupported oauth_signature_method: " + method)
}
