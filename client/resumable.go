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

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/google/gdata-go-client/auth"
	"github.com/google/gdata-go-client/internal/system/constants"
	"github.com/google/gdata-go-client/internal/system/log"
)

const resumableLoggerComponentName = "ResumableUpload"

// ResumableUpload describes a media upload to initiate.
type ResumableUpload struct {
	// URL is the session initiation endpoint.
	URL string
	// Metadata is the optional entry body sent with the initiation request.
	Metadata []byte
	// MetadataType is the content type of Metadata.
	MetadataType string
	// ContentType is the media content type.
	ContentType string
	// TotalSize is the media size in bytes.
	TotalSize int64
	// ChunkSize overrides the client's default chunk size.
	ChunkSize int64
	// Token pins the session to an explicit credential; nil selects from the
	// store by the initiation URL's scope.
	Token auth.Token
	// UserID selects the user partition of a multi-user store.
	UserID string
}

// ResumableSession is an open upload session. The next byte offset only moves
// forward: a confirmation from the service advances it, nothing rewinds it.
type ResumableSession struct {
	client      *client
	sessionID   string
	sessionURL  string
	contentType string
	totalSize   int64
	chunkSize   int64
	token       auth.Token

	mu         sync.Mutex
	nextOffset int64
	completed  bool
	result     []byte
}

// StartResumableUpload initiates a session: the media headers are posted to
// the initiation endpoint through the pipeline and the session URL is taken
// from the Location header of the response.
func (c *client) StartResumableUpload(ctx context.Context, upload ResumableUpload) (
	*ResumableSession, error) {
	sessionID := ksuid.New().String()
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, resumableLoggerComponentName),
		log.String(log.LoggerKeyUploadSessionID, sessionID))

	request := NewRequest(http.MethodPost, upload.URL).
		WithHeader(constants.UploadContentTypeHeaderName, upload.ContentType).
		WithHeader(constants.UploadContentLengthHeaderName, strconv.FormatInt(upload.TotalSize, 10)).
		WithUserID(upload.UserID)
	if upload.Token != nil {
		request.WithToken(upload.Token)
	}
	if len(upload.Metadata) > 0 {
		request.WithBody(upload.Metadata, upload.MetadataType)
	}

	resp, err := c.Do(ctx, request)
	if err != nil {
		return nil, err
	}
	sessionURL := resp.Header.Get(constants.LocationHeaderName)
	drainAndClose(resp)
	if sessionURL == "" {
		return nil, &ErrorMissingSessionURL
	}

	chunkSize := upload.ChunkSize
	if chunkSize <= 0 {
		chunkSize = c.chunkSize
	}

	// The session URL authorizes its own chunks; the credential selected at
	// initiation is reused for the session's lifetime.
	token, err := c.selectToken(request, upload.URL)
	if err != nil {
		return nil, err
	}

	logger.Debug("Resumable session opened", log.Int64("totalSize", upload.TotalSize))
	return &ResumableSession{
		client:      c,
		sessionID:   sessionID,
		sessionURL:  sessionURL,
		contentType: upload.ContentType,
		totalSize:   upload.TotalSize,
		chunkSize:   chunkSize,
		token:       token,
	}, nil
}

// SessionID returns the correlation identifier of the session.
func (s *ResumableSession) SessionID() string {
	return s.sessionID
}

// SessionURL returns the service-issued session URL.
func (s *ResumableSession) SessionURL() string {
	return s.sessionURL
}

// NextOffset returns the next byte offset the service expects.
func (s *ResumableSession) NextOffset() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextOffset
}

// Completed reports whether the service confirmed the final byte.
func (s *ResumableSession) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Result returns the entity the service sent with the completing response,
// such as the created entry. It is nil until the upload completes.
func (s *ResumableSession) Result() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Upload streams the media from the reader in chunks, resuming from the
// session's current offset until the service confirms completion.
func (s *ResumableSession) Upload(ctx context.Context, media io.ReaderAt) error {
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, resumableLoggerComponentName),
		log.String(log.LoggerKeyUploadSessionID, s.sessionID))

	buffer := make([]byte, s.chunkSize)
	for {
		s.mu.Lock()
		if s.completed {
			s.mu.Unlock()
			return nil
		}
		offset := s.nextOffset
		s.mu.Unlock()

		size := s.chunkSize
		if remaining := s.totalSize - offset; remaining < size {
			size = remaining
		}
		if size <= 0 {
			return ErrorResumeStateInvalid.WithDescription(
				fmt.Sprintf("offset %d at or past total size %d without completion", offset, s.totalSize))
		}

		chunk := buffer[:size]
		if _, err := media.ReadAt(chunk, offset); err != nil && err != io.EOF {
			return ErrorTransport.WithError(err)
		}
		if err := s.UploadChunk(ctx, chunk, offset); err != nil {
			return err
		}
		logger.Debug("Chunk accepted", log.Int64("offset", offset), log.Int64("size", size))
	}
}

// UploadChunk sends one chunk starting at the given offset. The offset must
// match the session's next expected byte.
func (s *ResumableSession) UploadChunk(ctx context.Context, chunk []byte, offset int64) error {
	s.mu.Lock()
	if s.completed {
		s.mu.Unlock()
		return &ErrorSessionCompleted
	}
	if offset != s.nextOffset {
		expected := s.nextOffset
		s.mu.Unlock()
		return ErrorResumeStateInvalid.WithDescription(
			fmt.Sprintf("chunk offset %d does not match expected offset %d", offset, expected))
	}
	s.mu.Unlock()

	end := offset + int64(len(chunk)) - 1
	header := make(http.Header)
	header.Set(constants.ContentTypeHeaderName, s.contentType)
	header.Set(constants.ContentRangeHeaderName,
		fmt.Sprintf("bytes %d-%d/%d", offset, end, s.totalSize))

	resp, err := s.client.roundTrip(ctx, http.MethodPut, s.sessionURL, header,
		bytes.NewReader(chunk), int64(len(chunk)), s.token)
	if err != nil {
		return err
	}
	return s.interpretChunkResponse(resp)
}

// QueryStatus asks the service for the session's current offset, typically
// after an interrupted chunk. The session offset is updated from the answer.
func (s *ResumableSession) QueryStatus(ctx context.Context) error {
	header := make(http.Header)
	header.Set(constants.ContentRangeHeaderName, fmt.Sprintf("bytes */%d", s.totalSize))

	resp, err := s.client.roundTrip(ctx, http.MethodPut, s.sessionURL, header, nil, 0, s.token)
	if err != nil {
		return err
	}
	return s.interpretChunkResponse(resp)
}

// Cancel abandons the session on the service side. A cancelled session
// accepts no further chunks.
func (s *ResumableSession) Cancel(ctx context.Context) error {
	resp, err := s.client.roundTrip(ctx, http.MethodDelete, s.sessionURL, nil, nil, 0, s.token)
	if err != nil {
		return err
	}
	body := drainAndClose(resp)
	// Cancellation answers vary; anything under 500 counts as gone.
	if resp.StatusCode >= 500 {
		return ErrorTransport.WithResponse(resp.StatusCode, body)
	}
	s.mu.Lock()
	s.completed = true
	s.mu.Unlock()
	return nil
}

// interpretChunkResponse applies the service's answer to the session state.
// 2xx completes the session and retains the response body as the upload
// result. 308, or a 5xx carrying a well-formed Range header, marks the upload
// incomplete and advances the offset to the byte after the service's
// confirmed range; a 308 without a Range header means no bytes of the chunk
// survived the attempt.
func (s *ResumableSession) interpretChunkResponse(resp *http.Response) error {
	rangeHeader := resp.Header.Get(constants.RangeHeaderName)
	body := drainAndClose(resp)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		s.mu.Lock()
		s.nextOffset = s.totalSize
		s.completed = true
		s.result = []byte(body)
		s.mu.Unlock()
		return nil

	case resp.StatusCode == http.StatusPermanentRedirect:
		confirmed, ok := parseConfirmedRange(rangeHeader)
		if !ok {
			// Nothing confirmed: the offset stays where it was.
			return nil
		}
		return s.advanceTo(confirmed + 1)

	case resp.StatusCode >= 500:
		if confirmed, ok := parseConfirmedRange(rangeHeader); ok {
			return s.advanceTo(confirmed + 1)
		}
		return ErrorTransport.WithResponse(resp.StatusCode, body)

	case resp.StatusCode == http.StatusUnauthorized:
		return ErrorAuthorizationRejected.WithResponse(resp.StatusCode, body)

	case resp.StatusCode == http.StatusForbidden:
		return ErrorScopeDenied.WithResponse(resp.StatusCode, body)

	default:
		return ErrorResumeStateInvalid.WithResponse(resp.StatusCode, body)
	}
}

// advanceTo moves the next offset forward; the offset never rewinds.
func (s *ResumableSession) advanceTo(offset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offset < s.nextOffset {
		return ErrorResumeStateInvalid.WithDescription(
			fmt.Sprintf("service confirmed offset %d behind local offset %d", offset, s.nextOffset))
	}
	s.nextOffset = offset
	return nil
}

// parseConfirmedRange parses a "bytes=0-N" Range header and returns N.
func parseConfirmedRange(rangeHeader string) (int64, bool) {
	value, found := strings.CutPrefix(rangeHeader, "bytes=")
	if !found {
		return 0, false
	}
	start, end, found := strings.Cut(value, "-")
	if !found || start != "0" {
		return 0, false
	}
	last, err := strconv.ParseInt(strings.TrimSpace(end), 10, 64)
	if err != nil || last < 0 {
		return 0, false
	}
	return last, true
}
