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

// TokenType identifies a credential variant. The values double as the scheme
// tags of the persistence wire format.
type TokenType string

const (
	// TokenTypeClientLogin is an opaque bearer credential issued by the
	// ClientLogin username/password exchange.
	TokenTypeClientLogin TokenType = "ClientLogin"
	// TokenTypeAuthSub is a single-use or session AuthSub credential.
	TokenTypeAuthSub TokenType = "AuthSub"
	// TokenTypeOAuth1 is an OAuth 1.0a request or access credential.
	TokenTypeOAuth1 TokenType = "OAuth"
	// TokenTypeOAuth2 is an OAuth 2.0 bearer credential with refresh support.
	TokenTypeOAuth2 TokenType = "OAuth2"
	// TokenTypeTwoLegged is a 2-legged OAuth 1.0a credential that impersonates
	// a requestor within a domain.
	TokenTypeTwoLegged TokenType = "TwoLegged"
	// TokenTypeOpaque is a preserved credential of an unrecognized scheme.
	TokenTypeOpaque TokenType = "Opaque"
)

// Wire format keys shared by the serialized token forms.
const (
	wireKeyToken          = "Token"
	wireKeyScope          = "Scope"
	wireKeySession        = "Session"
	wireKeyKey            = "Key"
	wireKeySecret         = "Secret"
	wireKeyConsumerKey    = "ConsumerKey"
	wireKeyConsumerSecret = "ConsumerSecret"
	wireKeySigMethod      = "SigMethod"
	wireKeyCallback       = "Callback"
	wireKeyVerifier       = "Verifier"
	wireKeyAccess         = "Access"
	wireKeyAccessToken    = "AccessToken"
	wireKeyRefreshToken   = "RefreshToken"
	wireKeyClientID       = "ClientId"
	wireKeyClientSecret   = "ClientSecret"
	wireKeyTokenURI       = "TokenUri"
	wireKeyExpiresAt      = "ExpiresAt"
	wireKeyRequestor      = "Requestor"
)

// clientLoginAuthLabel is the Authorization header prefix for ClientLogin
// credentials.
const clientLoginAuthLabel = "GoogleLogin auth="

// authSubAuthLabel is the Authorization header prefix for AuthSub credentials.
const authSubAuthLabel = "AuthSub token="

// authSubSigAlg is the signature algorithm identifier emitted with secure
// AuthSub requests.
const authSubSigAlg = "rsa-sha1"
