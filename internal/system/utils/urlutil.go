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

// Package utils provides utility functions for URL and string handling.
package utils

import (
	"errors"
	"net/url"
	"strings"
)

// CanonicalizeURL returns the canonical form of a URL for scope matching and
// signature base strings: lowercased scheme and host, default ports stripped,
// query string and fragment dropped, path preserved exactly.
func CanonicalizeURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("URL must be absolute: " + rawURL)
	}

	scheme := strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Host)
	if hostOnly, port, found := strings.Cut(host, ":"); found {
		if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
			host = hostOnly
		}
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}

	return scheme + "://" + host + path, nil
}

// IsScopePrefix reports whether scope is a prefix of the canonicalized target
// URL. Both arguments must already be canonical.
func IsScopePrefix(scope, canonicalURL string) bool {
	return scope != "" && strings.HasPrefix(canonicalURL, scope)
}
