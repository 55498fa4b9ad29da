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

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/utils"
)

// Param is a single request parameter. Repeated keys are represented as
// repeated Param entries.
type Param struct {
	Key   string
	Value string
}

// Delivery selects how the signed oauth parameters are added to the request.
type Delivery int

const (
	// DeliveryHeader emits the parameters as an OAuth Authorization header.
	DeliveryHeader Delivery = iota
	// DeliveryQuery appends the parameters to the request URL query string.
	DeliveryQuery
	// DeliveryBody appends the parameters to a form-encoded request body.
	DeliveryBody
)

// Params carries the oauth parameter values for one signing operation.
// Timestamp and nonce are supplied by the RequestSigner.
type Params struct {
	ConsumerKey string
	Token       string
	Callback    string
	Verifier    string
	RequestorID string
}

// isUnreserved reports whether b needs no percent-encoding per RFC 3986.
func isUnreserved(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') || b == '-' || b == '.' || b == '_' || b == '~'
}

// Encode percent-encodes s per RFC 3986 over its UTF-8 bytes. All reserved
// characters are encoded, including '+', '/', '=' and '&'; '~' is not.
// This is the single encoding point for signature base strings.
func Encode(s string) string {
	var builder strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isUnreserved(b) {
			builder.WriteByte(b)
		} else {
			builder.WriteByte('%')
			builder.WriteByte(upperhex[b>>4])
			builder.WriteByte(upperhex[b&0x0f])
		}
	}
	return builder.String()
}

const upperhex = "0123456789ABCDEF"

// NormalizeParameters percent-encodes every key and value, sorts the pairs by
// encoded key then encoded value, and joins them as k=v&k=v. The sort is
// stable so repeated entries keep their relative order.
func NormalizeParameters(params []Param) string {
	encoded := make([]Param, len(params))
	for i, p := range params {
		encoded[i] = Param{Key: Encode(p.Key), Value: Encode(p.Value)}
	}
	sort.SliceStable(encoded, func(i, j int) bool {
		if encoded[i].Key != encoded[j].Key {
			return encoded[i].Key < encoded[j].Key
		}
		return encoded[i].Value < encoded[j].Value
	})

	pairs := make([]string, len(encoded))
	for i, p := range encoded {
		pairs[i] = p.Key + "=" + p.Value
	}
	return strings.Join(pairs, "&")
}

// NormalizeURL returns the request URL in its signature base string form:
// lowercased scheme and host, default port stripped, query dropped, path
// preserved.
func NormalizeURL(rawURL string) (string, error) {
	normalized, err := utils.CanonicalizeURL(rawURL)
	if err != nil {
		return "", ErrorInvalidRequestURL.WithError(err)
	}
	return normalized, nil
}

// BaseString builds the OAuth 1.0a signature base string for the given method,
// URL and parameter list. The parameter list must exclude oauth_signature.
func BaseString(method, rawURL string, params []Param) (string, error) {
	normalizedURL, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(method) + "&" + Encode(normalizedURL) + "&" +
		Encode(NormalizeParameters(params)), nil
}

// RequestSigner produces authenticated versions of pending requests. The
// clock and the nonce source are injectable so signatures are reproducible
// under test; the zero value of either field selects the real source.
type RequestSigner struct {
	Clock func() time.Time
	Nonce func() string
}

// NewRequestSigner creates a RequestSigner using the wall clock and random
// hex nonces.
func NewRequestSigner() *RequestSigner {
	return &RequestSigner{
		Clock: time.Now,
		Nonce: GenerateNonce,
	}
}

// Sign authenticates req in place: it collects the request parameters, builds
// the signature base string, signs it with the given engine, and delivers the
// oauth parameters via the selected mechanism.
func (rs *RequestSigner) Sign(req *http.Request, p Params, signer SignerInterface, delivery Delivery) error {
	if p.ConsumerKey == "" {
		return &ErrorMissingConsumerKey
	}

	queryParams, err := collectQueryParams(req.URL)
	if err != nil {
		return err
	}
	bodyParams, err := collectBodyParams(req)
	if err != nil {
		return err
	}

	oauthParams := rs.oauthParams(p, signer.Method())

	all := make([]Param, 0, len(queryParams)+len(bodyParams)+len(oauthParams))
	all = append(all, queryParams...)
	all = append(all, bodyParams...)
	all = append(all, oauthParams...)

	baseString, err := BaseString(req.Method, req.URL.String(), all)
	if err != nil {
		return err
	}
	signature, err := signer.Sign(baseString)
	if err != nil {
		return err
	}
	signed := append(oauthParams, Param{Key: ParamSignature, Value: signature})

	switch delivery {
	case DeliveryQuery:
		appendToQuery(req.URL, signed)
	case DeliveryBody:
		return appendToBody(req, signed)
	default:
		req.Header.Set(constants.AuthorizationHeaderName, authorizationHeader(signed))
	}
	return nil
}

// oauthParams assembles the oauth protocol parameter list in emission order.
func (rs *RequestSigner) oauthParams(p Params, method string) []Param {
	clock := rs.Clock
	if clock == nil {
		clock = time.Now
	}
	nonce := rs.Nonce
	if nonce == nil {
		nonce = GenerateNonce
	}

	params := []Param{{Key: ParamConsumerKey, Value: p.ConsumerKey}}
	if p.Token != "" {
		params = append(params, Param{Key: ParamToken, Value: p.Token})
	}
	params = append(params,
		Param{Key: ParamSignatureMethod, Value: method},
		Param{Key: ParamTimestamp, Value: strconv.FormatInt(clock().Unix(), 10)},
		Param{Key: ParamNonce, Value: nonce()},
		Param{Key: ParamVersion, Value: ProtocolVersion},
	)
	if p.Callback != "" {
		params = append(params, Param{Key: ParamCallback, Value: p.Callback})
	}
	if p.Verifier != "" {
		params = append(params, Param{Key: ParamVerifier, Value: p.Verifier})
	}
	if p.RequestorID != "" {
		params = append(params, Param{Key: ParamRequestorID, Value: p.RequestorID})
	}
	return params
}

// collectQueryParams extracts the existing query parameters of the URL.
// A request URL that already carries oauth protocol parameters is malformed:
// the signer is the only producer of those, and duplicates would break
// signature verification on the server.
func collectQueryParams(u *url.URL) ([]Param, error) {
	if u.RawQuery == "" {
		return nil, nil
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, ErrorInvalidRequestURL.WithError(err)
	}
	var params []Param
	for key, vals := range values {
		if strings.HasPrefix(key, "oauth_") || strings.HasPrefix(key, "xoauth_") {
			return nil, ErrorDuplicateOAuthParam.WithDescription(
				"request URL already carries parameter " + key)
		}
		for _, val := range vals {
			params = append(params, Param{Key: key, Value: val})
		}
	}
	return params, nil
}

// collectBodyParams extracts form parameters when the body is form-encoded.
// The body is restored on the request after reading. Any other body content
// type is excluded from the base string.
func collectBodyParams(req *http.Request) ([]Param, error) {
	if req.Body == nil ||
		!strings.HasPrefix(req.Header.Get(constants.ContentTypeHeaderName), constants.ContentTypeFormURLEncoded) {
		return nil, nil
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(data))

	values, err := url.ParseQuery(string(data))
	if err != nil {
		return nil, ErrorInvalidRequestURL.WithError(err)
	}
	var params []Param
	for key, vals := range values {
		for _, val := range vals {
			params = append(params, Param{Key: key, Value: val})
		}
	}
	return params, nil
}

// authorizationHeader renders the OAuth Authorization header value. The
// parameters are emitted in a stable order for test reproducibility.
func authorizationHeader(params []Param) string {
	var builder strings.Builder
	builder.WriteString(AuthorizationScheme)
	builder.WriteString(` realm=""`)
	for _, p := range params {
		builder.WriteString(",")
		builder.WriteString(p.Key)
		builder.WriteString(`="`)
		builder.WriteString(Encode(p.Value))
		builder.WriteString(`"`)
	}
	return builder.String()
}

// appendToQuery adds the oauth parameters to the URL query string, preserving
// any existing parameters.
func appendToQuery(u *url.URL, params []Param) {
	var builder strings.Builder
	builder.WriteString(u.RawQuery)
	for _, p := range params {
		if builder.Len() > 0 {
			builder.WriteString("&")
		}
		builder.WriteString(Encode(p.Key))
		builder.WriteString("=")
		builder.WriteString(Encode(p.Value))
	}
	u.RawQuery = builder.String()
}

// appendToBody adds the oauth parameters to a form-encoded request body.
func appendToBody(req *http.Request, params []Param) error {
	var existing []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}
		existing = data
	}

	var builder strings.Builder
	builder.Write(existing)
	for _, p := range params {
		if builder.Len() > 0 {
			builder.WriteString("&")
		}
		builder.WriteString(Encode(p.Key))
		builder.WriteString("=")
		builder.WriteString(Encode(p.Value))
	}

	body := builder.String()
	req.Body = io.NopCloser(strings.NewReader(body))
	req.ContentLength = int64(len(body))
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeFormURLEncoded)
	return nil
}
