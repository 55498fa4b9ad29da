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

import "github.com/google/gdata-go-client/autherror"

// Client errors for the request pipeline.
var (
	// ErrorNoCredentialsForScope is the error when no stored token matches the request URL.
	ErrorNoCredentialsForScope = autherror.AuthError{
		Kind:             autherror.KindNoCredentialsForScope,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1001",
		Message:          "No credentials for scope",
		ErrorDescription: "The token store contains no token whose scope matches the request URL",
	}
	// ErrorAuthorizationRejected is the error when the service returns 401 for the attached credential.
	ErrorAuthorizationRejected = autherror.AuthError{
		Kind:             autherror.KindAuthorizationFailed,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1002",
		Message:          "Authorization rejected",
		ErrorDescription: "The service rejected the attached credential",
	}
	// ErrorScopeDenied is the error when the service returns 403 for the attached credential.
	ErrorScopeDenied = autherror.AuthError{
		Kind:             autherror.KindScopeDenied,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1003",
		Message:          "Scope denied",
		ErrorDescription: "The service denied the request; the credential likely needs a broader scope",
	}
	// ErrorTooManyRedirects is the error when redirect following exceeds the limit.
	ErrorTooManyRedirects = autherror.AuthError{
		Kind:             autherror.KindTransport,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1004",
		Message:          "Too many redirects",
		ErrorDescription: "The redirect chain exceeded the configured limit",
	}
	// ErrorInsecureRedirect is the error when a redirect would downgrade a credential to plain HTTP.
	ErrorInsecureRedirect = autherror.AuthError{
		Kind:             autherror.KindMalformedRequest,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1005",
		Message:          "Insecure redirect refused",
		ErrorDescription: "Refusing to follow an https to http redirect with a credential attached",
	}
	// ErrorMissingSessionURL is the error when a resumable initiation returns no Location header.
	ErrorMissingSessionURL = autherror.AuthError{
		Kind:             autherror.KindResumeStateInvalid,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1006",
		Message:          "Missing session URL",
		ErrorDescription: "The session initiation response carries no Location header",
	}
	// ErrorSessionCompleted is the error when a chunk is submitted to a completed session.
	ErrorSessionCompleted = autherror.AuthError{
		Kind:             autherror.KindResumeStateInvalid,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1007",
		Message:          "Session already completed",
		ErrorDescription: "The resumable session is complete and accepts no further chunks",
	}
	// ErrorResumeStateInvalid is the error when the service disagrees with the next byte offset.
	ErrorResumeStateInvalid = autherror.AuthError{
		Kind:             autherror.KindResumeStateInvalid,
		Type:             autherror.ClientErrorType,
		Code:             "CLIENT-1008",
		Message:          "Resume state invalid",
		ErrorDescription: "The upload service disagrees with the client's next byte offset",
	}
)

// Server errors for the request pipeline.
var (
	// ErrorTransport is the error for network failures and 5xx responses.
	ErrorTransport = autherror.AuthError{
		Kind:             autherror.KindTransport,
		Type:             autherror.ServerErrorType,
		Code:             "CLIENT-1101",
		Message:          "Transport failure",
		ErrorDescription: "The request failed at the transport level or the service returned 5xx",
	}
)
