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

// OAuth 1.0a signature method identifiers.
const (
	// SignatureMethodHMACSHA1 is the HMAC-SHA1 signature method identifier.
	SignatureMethodHMACSHA1 = "HMAC-SHA1"
	// SignatureMethodRSASHA1 is the RSA-SHA1 signature method identifier.
	SignatureMethodRSASHA1 = "RSA-SHA1"
	// SignatureMethodPlaintext is the PLAINTEXT signature method identifier.
	SignatureMethodPlaintext = "PLAINTEXT"
)

// OAuth 1.0a protocol parameter names.
const (
	ParamConsumerKey     = "oauth_consumer_key"
	ParamToken           = "oauth_token"
	ParamTokenSecret     = "oauth_token_secret"
	ParamSignatureMethod = "oauth_signature_method"
	ParamSignature       = "oauth_signature"
	ParamTimestamp       = "oauth_timestamp"
	ParamNonce           = "oauth_nonce"
	ParamVersion         = "oauth_version"
	ParamCallback        = "oauth_callback"
	ParamCallbackOK      = "oauth_callback_confirmed"
	ParamVerifier        = "oauth_verifier"
	ParamRequestorID     = "xoauth_requestor_id"
)

// ProtocolVersion is the value sent for the oauth_version parameter.
const ProtocolVersion = "1.0"

// OutOfBand is the oauth_callback value for flows without a callback endpoint.
const OutOfBand = "oob"

// AuthorizationScheme is the scheme prefix of the OAuth Authorization header.
const AuthorizationScheme = "OAuth"
