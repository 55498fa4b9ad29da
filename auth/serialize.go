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

import (
	"crypto/rsa"
	"strconv"
	"strings"
	"time"

	"github.com/google/gdata-go-client/autherror"
	"github.com/google/gdata-go-client/internal/system/utils"
)

// The wire format is the historical one-line form
//
//	<SchemeTag> <Key>=<Value>[,<Key>=<Value>]*
//
// kept for round-trip compatibility with previously persisted credentials.
// Commas, equals signs and percent signs inside values are percent-escaped;
// the Scope value is the space-joined scope URL list. Unrecognized keys are
// ignored on read.

var wireEscaper = strings.NewReplacer("%", "%25", ",", "%2C", "=", "%3D")

var wireUnescaper = strings.NewReplacer("%25", "%", "%2C", ",", "%3D", "=")

// wireWriter accumulates the serialized form of one token.
type wireWriter struct {
	builder strings.Builder
	first   bool
}

func newWireWriter(scheme TokenType) *wireWriter {
	w := &wireWriter{first: true}
	w.builder.WriteString(string(scheme))
	w.builder.WriteString(" ")
	return w
}

func (w *wireWriter) add(key, value string) {
	if !w.first {
		w.builder.WriteString(",")
	}
	w.first = false
	w.builder.WriteString(key)
	w.builder.WriteString("=")
	w.builder.WriteString(wireEscaper.Replace(value))
}

func (w *wireWriter) addScopes(scopes []string) {
	w.add(wireKeyScope, strings.Join(scopes, " "))
}

func (w *wireWriter) String() string {
	return w.builder.String()
}

// wireFields is the parsed key set of one serialized line.
type wireFields map[string]string

func (f wireFields) require(key string) (string, error) {
	value, ok := f[key]
	if !ok || value == "" {
		return "", ErrorMalformedToken.WithDescription("missing required key " + key)
	}
	return value, nil
}

func (f wireFields) scopes() ([]string, error) {
	value, err := f.require(wireKeyScope)
	if err != nil {
		return nil, err
	}
	return utils.ParseStringArray(value, " "), nil
}

// parseWire splits a serialized line into its scheme tag and key set.
func parseWire(serialized string) (string, wireFields, error) {
	line := strings.TrimSpace(serialized)
	scheme, rest, found := strings.Cut(line, " ")
	if !found || scheme == "" {
		return "", nil, ErrorMalformedToken.WithDescription("expected Scheme Key=Val,...")
	}
	fields := make(wireFields)
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return "", nil, ErrorMalformedToken.WithDescription("malformed pair " + pair)
		}
		fields[key] = wireUnescaper.Replace(value)
	}
	return scheme, fields, nil
}

// Deserialize parses one serialized token line. An unknown scheme tag fails
// with an unsupported-variant error; use DeserializeTokens to preserve unknown
// schemes across a round-trip.
func Deserialize(serialized string) (Token, error) {
	return DeserializeWithRSAKey(serialized, nil)
}

// DeserializeWithRSAKey parses one serialized token line and reattaches the
// given private key to variants that sign with RSA-SHA1. Private keys are
// never part of the wire form.
func DeserializeWithRSAKey(serialized string, privateKey *rsa.PrivateKey) (Token, error) {
	scheme, fields, err := parseWire(serialized)
	if err != nil {
		return nil, err
	}
	switch TokenType(scheme) {
	case TokenTypeClientLogin:
		return deserializeClientLogin(fields)
	case TokenTypeAuthSub:
		return deserializeAuthSub(fields, privateKey)
	case TokenTypeOAuth1:
		return deserializeOAuth1(fields, privateKey)
	case TokenTypeOAuth2:
		return deserializeOAuth2(fields)
	case TokenTypeTwoLegged:
		return deserializeTwoLegged(fields, privateKey)
	default:
		return nil, ErrorUnsupportedScheme.WithDescription("unknown scheme tag " + scheme)
	}
}

func deserializeClientLogin(fields wireFields) (Token, error) {
	token, err := fields.require(wireKeyToken)
	if err != nil {
		return nil, err
	}
	scopes, err := fields.scopes()
	if err != nil {
		return nil, err
	}
	return NewClientLoginToken(token, scopes)
}

func deserializeAuthSub(fields wireFields, privateKey *rsa.PrivateKey) (Token, error) {
	token, err := fields.require(wireKeyToken)
	if err != nil {
		return nil, err
	}
	scopes, err := fields.scopes()
	if err != nil {
		return nil, err
	}
	if privateKey != nil {
		return NewSecureAuthSubToken(token, scopes, privateKey)
	}
	if fields[wireKeySession] == "true" {
		return NewAuthSubSessionToken(token, scopes)
	}
	return NewAuthSubToken(token, scopes)
}

func deserializeOAuth1(fields wireFields, privateKey *rsa.PrivateKey) (Token, error) {
	key, err := fields.require(wireKeyKey)
	if err != nil {
		return nil, err
	}
	consumerKey, err := fields.require(wireKeyConsumerKey)
	if err != nil {
		return nil, err
	}
	sigMethod, err := fields.require(wireKeySigMethod)
	if err != nil {
		return nil, err
	}
	scopes, err := fields.scopes()
	if err != nil {
		return nil, err
	}
	config := OAuth1TokenConfig{
		Key:             key,
		Secret:          fields[wireKeySecret],
		ConsumerKey:     consumerKey,
		ConsumerSecret:  fields[wireKeyConsumerSecret],
		SignatureMethod: sigMethod,
		Scopes:          scopes,
		Callback:        fields[wireKeyCallback],
		Verifier:        fields[wireKeyVerifier],
		PrivateKey:      privateKey,
	}
	if fields[wireKeyAccess] == "true" {
		return NewOAuth1AccessToken(config)
	}
	return NewOAuth1RequestToken(config)
}

func deserializeOAuth2(fields wireFields) (Token, error) {
	scopes, err := fields.scopes()
	if err != nil {
		return nil, err
	}
	expiresRaw, err := fields.require(wireKeyExpiresAt)
	if err != nil {
		return nil, err
	}
	expiresUnix, err := strconv.ParseInt(expiresRaw, 10, 64)
	if err != nil {
		return nil, ErrorMalformedToken.WithDescription("ExpiresAt is not Unix seconds").WithError(err)
	}
	var expiresAt time.Time
	if expiresUnix != 0 {
		expiresAt = time.Unix(expiresUnix, 0)
	}
	return NewOAuth2Token(OAuth2TokenConfig{
		AccessToken:  fields[wireKeyAccessToken],
		RefreshToken: fields[wireKeyRefreshToken],
		ClientID:     fields[wireKeyClientID],
		ClientSecret: fields[wireKeyClientSecret],
		TokenURI:     fields[wireKeyTokenURI],
		Scopes:       scopes,
		ExpiresAt:    expiresAt,
	})
}

func deserializeTwoLegged(fields wireFields, privateKey *rsa.PrivateKey) (Token, error) {
	consumerKey, err := fields.require(wireKeyConsumerKey)
	if err != nil {
		return nil, err
	}
	sigMethod, err := fields.require(wireKeySigMethod)
	if err != nil {
		return nil, err
	}
	requestor, err := fields.require(wireKeyRequestor)
	if err != nil {
		return nil, err
	}
	scopes, err := fields.scopes()
	if err != nil {
		return nil, err
	}
	return NewTwoLeggedToken(consumerKey, fields[wireKeyConsumerSecret], sigMethod,
		requestor, scopes, privateKey)
}

// SerializeTokens renders a token collection as newline-separated wire lines.
func SerializeTokens(tokens []Token) (string, error) {
	lines := make([]string, 0, len(tokens))
	for _, token := range tokens {
		line, err := token.Serialize()
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// DeserializeTokens parses a newline-separated token collection. Lines with an
// unrecognized scheme tag are preserved as OpaqueToken entries so the
// collection round-trips unchanged; malformed lines fail the whole parse.
func DeserializeTokens(serialized string) ([]Token, error) {
	var tokens []Token
	for _, line := range strings.Split(serialized, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		token, err := Deserialize(line)
		if err != nil {
			if autherror.IsKind(err, autherror.KindUnsupportedVariant) {
				scheme, _, parseErr := parseWire(line)
				if parseErr != nil {
					return nil, parseErr
				}
				tokens = append(tokens, &OpaqueToken{scheme: scheme, raw: strings.TrimSpace(line)})
				continue
			}
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
