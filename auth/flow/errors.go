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

import "github.com/google/gdata-go-client/autherror"

// Client errors for the authorization flows.
var (
	// ErrorInvalidFlowState is the error when a transition is invoked out of order.
	ErrorInvalidFlowState = autherror.AuthError{
		Kind:             autherror.KindMalformedRequest,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1001",
		Message:          "Invalid flow state",
		ErrorDescription: "The requested transition is not valid in the current state",
	}
	// ErrorAuthorizationFailed is the error when the service rejects a dance transition.
	ErrorAuthorizationFailed = autherror.AuthError{
		Kind:             autherror.KindAuthorizationFailed,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1002",
		Message:          "Authorization failed",
		ErrorDescription: "The service rejected the authorization request",
	}
	// ErrorMalformedTokenResponse is the error when a token endpoint response cannot be parsed.
	ErrorMalformedTokenResponse = autherror.AuthError{
		Kind:             autherror.KindAuthorizationFailed,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1003",
		Message:          "Malformed token response",
		ErrorDescription: "The token endpoint response is missing required fields",
	}
	// ErrorInvalidVerifier is the error when the access token exchange rejects the verifier.
	ErrorInvalidVerifier = autherror.AuthError{
		Kind:             autherror.KindInvalidVerifier,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1004",
		Message:          "Invalid verifier",
		ErrorDescription: "The access token exchange rejected the oauth_verifier",
	}
	// ErrorInvalidRefreshToken is the error when the token endpoint rejects a refresh.
	ErrorInvalidRefreshToken = autherror.AuthError{
		Kind:             autherror.KindInvalidRefreshToken,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1005",
		Message:          "Refresh rejected",
		ErrorDescription: "The token endpoint rejected the refresh token",
	}
	// ErrorBadAuthentication is the error when ClientLogin rejects the username or password.
	ErrorBadAuthentication = autherror.AuthError{
		Kind:             autherror.KindBadCredentials,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1006",
		Message:          "Bad authentication",
		ErrorDescription: "The service rejected the username or password",
	}
	// ErrorCaptchaRequired is the error when ClientLogin challenges with a CAPTCHA.
	ErrorCaptchaRequired = autherror.AuthError{
		Kind:             autherror.KindAuthorizationFailed,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1007",
		Message:          "CAPTCHA required",
		ErrorDescription: "The service requires a CAPTCHA response to complete the login",
	}
	// ErrorMissingVerifier is the error when the access upgrade is attempted before the verifier handoff.
	ErrorMissingVerifier = autherror.AuthError{
		Kind:             autherror.KindInvalidVerifier,
		Type:             autherror.ClientErrorType,
		Code:             "FLOW-1008",
		Message:          "Missing verifier",
		ErrorDescription: "An oauth_verifier is required before the access token exchange",
	}
)

// Server errors for the authorization flows.
var (
	// ErrorEndpointUnreachable is the error when a flow endpoint cannot be reached.
	ErrorEndpointUnreachable = autherror.AuthError{
		Kind:             autherror.KindTransport,
		Type:             autherror.ServerErrorType,
		Code:             "FLOW-1101",
		Message:          "Endpoint unreachable",
		ErrorDescription: "The authorization endpoint could not be reached",
	}
)

// CaptchaError carries the CAPTCHA challenge details of a ClientLogin
// response. The caller shows CaptchaURL to the user and retries the login
// with the token and the user's answer.
type CaptchaError struct {
	Err          *autherror.AuthError
	CaptchaToken string
	CaptchaURL   string
}

// Error returns the string representation of the error.
func (e *CaptchaError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying AuthError.
func (e *CaptchaError) Unwrap() error {
	return e.Err
}
