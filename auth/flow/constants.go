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

package flow

// Default Google Accounts endpoints. All of them are overridable per flow for
// tests and non-Google deployments.
const (
	// DefaultRequestTokenURL is the OAuth 1.0a request token endpoint.
	DefaultRequestTokenURL = "https://www.google.com/accounts/OAuthGetRequestToken"
	// DefaultAuthorizeTokenURL is the OAuth 1.0a user approval page.
	DefaultAuthorizeTokenURL = "https://www.google.com/accounts/OAuthAuthorizeToken"
	// DefaultAccessTokenURL is the OAuth 1.0a access token endpoint.
	DefaultAccessTokenURL = "https://www.google.com/accounts/OAuthGetAccessToken"

	// DefaultOAuth2AuthURL is the OAuth 2.0 authorization endpoint.
	DefaultOAuth2AuthURL = "https://accounts.google.com/o/oauth2/auth"
	// DefaultOAuth2TokenURL is the OAuth 2.0 token endpoint.
	DefaultOAuth2TokenURL = "https://accounts.google.com/o/oauth2/token"

	// DefaultClientLoginURL is the ClientLogin exchange endpoint.
	DefaultClientLoginURL = "https://www.google.com/accounts/ClientLogin"

	// DefaultAuthSubRequestURL is the AuthSub approval page.
	DefaultAuthSubRequestURL = "https://www.google.com/accounts/AuthSubRequest"
	// DefaultAuthSubSessionURL is the AuthSub session upgrade endpoint.
	DefaultAuthSubSessionURL = "https://www.google.com/accounts/AuthSubSessionToken"
	// DefaultAuthSubRevokeURL is the AuthSub revocation endpoint.
	DefaultAuthSubRevokeURL = "https://www.google.com/accounts/AuthSubRevokeToken"
	// DefaultAuthSubInfoURL is the AuthSub token info endpoint.
	DefaultAuthSubInfoURL = "https://www.google.com/accounts/AuthSubTokenInfo"
)

// OAuth 2.0 request parameter names.
const (
	paramClientID       = "client_id"
	paramClientSecret   = "client_secret"
	paramRedirectURI    = "redirect_uri"
	paramResponseType   = "response_type"
	paramScope          = "scope"
	paramState          = "state"
	paramAccessType     = "access_type"
	paramApprovalPrompt = "approval_prompt"
	paramGrantType      = "grant_type"
	paramCode           = "code"
	paramRefreshToken   = "refresh_token"

	responseTypeCode      = "code"
	grantTypeAuthzCode    = "authorization_code"
	grantTypeRefreshToken = "refresh_token"
)

// ClientLogin request parameter names.
const (
	paramAccountType   = "accountType"
	paramEmail         = "Email"
	paramPasswd        = "Passwd"
	paramService       = "service"
	paramSource        = "source"
	paramLoginToken    = "logintoken"
	paramLoginCaptcha  = "logincaptcha"
	accountTypeDefault = "HOSTED_OR_GOOGLE"
)

// ClientLogin response body keys.
const (
	bodyKeyAuth         = "Auth"
	bodyKeyError        = "Error"
	bodyKeyCaptchaToken = "CaptchaToken"
	bodyKeyCaptchaURL   = "CaptchaUrl"
	bodyKeyToken        = "Token"

	clientLoginErrorCaptcha = "CaptchaRequired"

	captchaURLBase = "https://www.google.com/accounts/"
)
