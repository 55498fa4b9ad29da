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

// Package autherror defines the error structures returned by the authentication
// and request pipeline layers.
package autherror

import (
	"errors"
	"fmt"
)

// ErrorType defines the type of authentication error.
type ErrorType string

const (
	// ClientErrorType denotes the client error type.
	ClientErrorType ErrorType = "client_error"
	// ServerErrorType denotes the server error type.
	ServerErrorType ErrorType = "server_error"
)

// Kind identifies the class of authentication or transport failure.
type Kind string

const (
	// KindNoCredentialsForScope indicates that no stored token matches the request URL.
	KindNoCredentialsForScope Kind = "no_credentials_for_scope"
	// KindBadCredentials indicates that token fields are missing or invalid.
	KindBadCredentials Kind = "bad_credentials"
	// KindAuthorizationFailed indicates that the service rejected the credential.
	KindAuthorizationFailed Kind = "authorization_failed"
	// KindScopeDenied indicates that the service returned 403 for the credential's scope.
	KindScopeDenied Kind = "scope_denied"
	// KindMalformedRequest indicates an invalid request, such as duplicate oauth parameters.
	KindMalformedRequest Kind = "malformed_request"
	// KindInvalidVerifier indicates that the access token exchange rejected the verifier.
	KindInvalidVerifier Kind = "invalid_verifier"
	// KindInvalidRefreshToken indicates that the token endpoint rejected the refresh token.
	KindInvalidRefreshToken Kind = "invalid_refresh_token"
	// KindTransport indicates a network failure or a 5xx response.
	KindTransport Kind = "transport"
	// KindUnsupportedVariant indicates deserialization of an unknown credential scheme.
	KindUnsupportedVariant Kind = "unsupported_variant"
	// KindResumeStateInvalid indicates that the upload service disagrees with the
	// client's next byte offset.
	KindResumeStateInvalid Kind = "resume_state_invalid"
)

// AuthError defines a generic error structure used across the authentication layers.
// The zero StatusCode means no HTTP response was involved in the failure.
type AuthError struct {
	Kind             Kind
	Type             ErrorType
	Code             string
	Message          string
	ErrorDescription string
	StatusCode       int
	ResponseBody     string
	Err              error
}

// Error returns the string representation of the error.
func (e *AuthError) Error() string {
	if e.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.ErrorDescription)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches annotated copies against their predeclared error value by code,
// so errors.Is works across WithResponse, WithError and WithDescription.
func (e *AuthError) Is(target error) bool {
	targetErr, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return targetErr.Code == e.Code
}

// WithResponse returns a copy of the error annotated with the HTTP status code
// and the (truncated) response body for diagnosis. The receiver is not mutated
// so that predeclared error values stay constant.
func (e *AuthError) WithResponse(statusCode int, body string) *AuthError {
	clone := *e
	clone.StatusCode = statusCode
	clone.ResponseBody = body
	return &clone
}

// WithError returns a copy of the error wrapping the given underlying error.
func (e *AuthError) WithError(err error) *AuthError {
	clone := *e
	clone.Err = err
	return &clone
}

// WithDescription returns a copy of the error with the given description.
func (e *AuthError) WithDescription(desc string) *AuthError {
	clone := *e
	clone.ErrorDescription = desc
	return &clone
}

// IsKind reports whether err is an AuthError of the given kind.
func IsKind(err error, kind Kind) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or the empty kind when err is not an AuthError.
func KindOf(err error) Kind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return ""
}
