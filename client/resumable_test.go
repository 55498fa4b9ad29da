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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/google/gdata-go-client/autherror"
	"github.com/google/gdata-go-client/tests/mocks/httpmock"
)

const (
	initiationURL = "https://www.google.com/calendar/feeds/default/upload"
	sessionURL    = "https://www.google.com/calendar/upload/session/abc123"
)

func initiationResponse() httpmock.ScriptedResponse {
	return httpmock.ScriptedResponse{Status: http.StatusOK,
		Header: http.Header{"Location": {sessionURL}}}
}

// startSession opens a session against a scripted client whose first response
// is the initiation answer.
func startSession(suite *ResumableUploadTestSuite, totalSize, chunkSize int64,
	script ...httpmock.ScriptedResponse) (*ResumableSession, *httpmock.MockHTTPClient) {
	mockClient := httpmock.NewScriptedClient(append(
		[]httpmock.ScriptedResponse{initiationResponse()}, script...)...)
	pipeline := NewClient(nil, mockClient, nil, PipelineConfig{})

	session, err := pipeline.StartResumableUpload(context.Background(), ResumableUpload{
		URL:         initiationURL,
		ContentType: "video/mp4",
		TotalSize:   totalSize,
		ChunkSize:   chunkSize,
		Token:       clientLoginToken(suite.T(), "DQAAtok", calendarScope),
	})
	assert.NoError(suite.T(), err)
	return session, mockClient
}

type ResumableUploadTestSuite struct {
	suite.Suite
}

func TestResumableUploadSuite(t *testing.T) {
	suite.Run(t, new(ResumableUploadTestSuite))
}

func (suite *ResumableUploadTestSuite) TestInitiationOpensSession() {
	session, mockClient := startSession(suite, 1048576, 262144)

	assert.Equal(suite.T(), sessionURL, session.SessionURL())
	assert.NotEmpty(suite.T(), session.SessionID())
	assert.Zero(suite.T(), session.NextOffset())
	assert.False(suite.T(), session.Completed())

	initiation := mockClient.DoCalls[0]
	assert.Equal(suite.T(), http.MethodPost, initiation.Method)
	assert.Equal(suite.T(), "video/mp4", initiation.Header.Get("X-Upload-Content-Type"))
	assert.Equal(suite.T(), "1048576", initiation.Header.Get("X-Upload-Content-Length"))
	assert.Equal(suite.T(), "GoogleLogin auth=DQAAtok", initiation.Header.Get("Authorization"))
}

func (suite *ResumableUploadTestSuite) TestInitiationCarriesMetadataBody() {
	mockClient := httpmock.NewScriptedClient(initiationResponse())
	pipeline := NewClient(nil, mockClient, nil, PipelineConfig{})

	_, err := pipeline.StartResumableUpload(context.Background(), ResumableUpload{
		URL:          initiationURL,
		Metadata:     []byte("<entry/>"),
		MetadataType: "application/atom+xml",
		ContentType:  "video/mp4",
		TotalSize:    1024,
		Token:        clientLoginToken(suite.T(), "DQAAtok", calendarScope),
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "<entry/>", mockClient.DoBodies[0])
	assert.Equal(suite.T(), "application/atom+xml", mockClient.DoCalls[0].Header.Get("Content-Type"))
}

func (suite *ResumableUploadTestSuite) TestInitiationWithoutLocationFails() {
	mockClient := httpmock.NewScriptedClient(
		httpmock.ScriptedResponse{Status: http.StatusOK},
	)
	pipeline := NewClient(nil, mockClient, nil, PipelineConfig{})

	_, err := pipeline.StartResumableUpload(context.Background(), ResumableUpload{
		URL:         initiationURL,
		ContentType: "video/mp4",
		TotalSize:   1024,
		Token:       clientLoginToken(suite.T(), "DQAAtok", calendarScope),
	})
	assert.ErrorIs(suite.T(), err, &ErrorMissingSessionURL)
}

func (suite *ResumableUploadTestSuite) TestIncompleteChunkAdvancesOffset() {
	session, mockClient := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect,
			Header: http.Header{"Range": {"bytes=0-262143"}}},
	)

	err := session.UploadChunk(context.Background(), make([]byte, 262144), 0)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(262144), session.NextOffset())
	assert.False(suite.T(), session.Completed())
	assert.Nil(suite.T(), session.Result())

	chunkReq := mockClient.DoCalls[1]
	assert.Equal(suite.T(), http.MethodPut, chunkReq.Method)
	assert.Equal(suite.T(), sessionURL, chunkReq.URL.String())
	assert.Equal(suite.T(), "bytes 0-262143/1048576", chunkReq.Header.Get("Content-Range"))
	assert.Equal(suite.T(), "GoogleLogin auth=DQAAtok", chunkReq.Header.Get("Authorization"))
}

func (suite *ResumableUploadTestSuite) TestPartialAcceptanceAdvancesToConfirmedByte() {
	session, _ := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect,
			Header: http.Header{"Range": {"bytes=0-131071"}}},
	)

	// The service kept only half the chunk; the next offset follows its answer.
	assert.NoError(suite.T(), session.UploadChunk(context.Background(), make([]byte, 262144), 0))
	assert.Equal(suite.T(), int64(131072), session.NextOffset())
}

func (suite *ResumableUploadTestSuite) TestIncompleteWithoutRangeKeepsOffset() {
	session, _ := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect},
	)

	assert.NoError(suite.T(), session.UploadChunk(context.Background(), make([]byte, 262144), 0))
	assert.Zero(suite.T(), session.NextOffset())
}

func (suite *ResumableUploadTestSuite) TestFinalChunkCompletesSession() {
	session, _ := startSession(suite, 1024, 262144,
		httpmock.ScriptedResponse{Status: http.StatusCreated, Body: "<entry>created</entry>"},
	)

	assert.NoError(suite.T(), session.UploadChunk(context.Background(), make([]byte, 1024), 0))
	assert.True(suite.T(), session.Completed())
	assert.Equal(suite.T(), int64(1024), session.NextOffset())
	// The created entry the service answered with is kept for the caller.
	assert.Equal(suite.T(), "<entry>created</entry>", string(session.Result()))
}

func (suite *ResumableUploadTestSuite) TestOffsetMismatchRejectedLocally() {
	session, mockClient := startSession(suite, 1048576, 262144)

	err := session.UploadChunk(context.Background(), make([]byte, 262144), 262144)
	assert.ErrorIs(suite.T(), err, &ErrorResumeStateInvalid)
	assert.True(suite.T(), autherror.IsKind(err, autherror.KindResumeStateInvalid))
	// The mismatch never reaches the wire.
	assert.Len(suite.T(), mockClient.DoCalls, 1)
}

func (suite *ResumableUploadTestSuite) TestCompletedSessionRejectsChunks() {
	session, _ := startSession(suite, 1024, 262144,
		httpmock.ScriptedResponse{Status: http.StatusCreated},
	)
	assert.NoError(suite.T(), session.UploadChunk(context.Background(), make([]byte, 1024), 0))

	err := session.UploadChunk(context.Background(), make([]byte, 1024), 0)
	assert.ErrorIs(suite.T(), err, &ErrorSessionCompleted)
}

func (suite *ResumableUploadTestSuite) TestServerErrorWithRangeTreatedAsIncomplete() {
	session, _ := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusInternalServerError,
			Header: http.Header{"Range": {"bytes=0-99999"}}},
	)

	assert.NoError(suite.T(), session.UploadChunk(context.Background(), make([]byte, 262144), 0))
	assert.Equal(suite.T(), int64(100000), session.NextOffset())
}

func (suite *ResumableUploadTestSuite) TestServerErrorWithoutRangeIsTransport() {
	session, _ := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusServiceUnavailable, Body: "down"},
	)

	err := session.UploadChunk(context.Background(), make([]byte, 262144), 0)
	assert.True(suite.T(), autherror.IsKind(err, autherror.KindTransport))
}

func (suite *ResumableUploadTestSuite) TestQueryStatusResumesFromServiceOffset() {
	session, mockClient := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect,
			Header: http.Header{"Range": {"bytes=0-524287"}}},
	)

	assert.NoError(suite.T(), session.QueryStatus(context.Background()))
	assert.Equal(suite.T(), int64(524288), session.NextOffset())

	statusReq := mockClient.DoCalls[1]
	assert.Equal(suite.T(), http.MethodPut, statusReq.Method)
	assert.Equal(suite.T(), "bytes */1048576", statusReq.Header.Get("Content-Range"))
}

func (suite *ResumableUploadTestSuite) TestOffsetNeverRewinds() {
	session, _ := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect,
			Header: http.Header{"Range": {"bytes=0-524287"}}},
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect,
			Header: http.Header{"Range": {"bytes=0-1023"}}},
	)
	assert.NoError(suite.T(), session.QueryStatus(context.Background()))
	assert.Equal(suite.T(), int64(524288), session.NextOffset())

	err := session.QueryStatus(context.Background())
	assert.ErrorIs(suite.T(), err, &ErrorResumeStateInvalid)
	assert.Equal(suite.T(), int64(524288), session.NextOffset())
}

func (suite *ResumableUploadTestSuite) TestUnauthorizedChunkIsRejected() {
	session, _ := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusUnauthorized},
	)

	err := session.UploadChunk(context.Background(), make([]byte, 262144), 0)
	assert.ErrorIs(suite.T(), err, &ErrorAuthorizationRejected)
}

func (suite *ResumableUploadTestSuite) TestCancelAbandonsSession() {
	session, mockClient := startSession(suite, 1048576, 262144,
		httpmock.ScriptedResponse{Status: http.StatusNoContent},
	)

	assert.NoError(suite.T(), session.Cancel(context.Background()))
	assert.True(suite.T(), session.Completed())
	assert.Equal(suite.T(), http.MethodDelete, mockClient.DoCalls[1].Method)
	assert.Equal(suite.T(), sessionURL, mockClient.DoCalls[1].URL.String())

	err := session.UploadChunk(context.Background(), make([]byte, 262144), 0)
	assert.ErrorIs(suite.T(), err, &ErrorSessionCompleted)
}

func (suite *ResumableUploadTestSuite) TestUploadStreamsAllChunks() {
	media := bytes.NewReader(bytes.Repeat([]byte("x"), 10))
	session, mockClient := startSession(suite, 10, 4,
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect,
			Header: http.Header{"Range": {"bytes=0-3"}}},
		httpmock.ScriptedResponse{Status: http.StatusPermanentRedirect,
			Header: http.Header{"Range": {"bytes=0-7"}}},
		httpmock.ScriptedResponse{Status: http.StatusCreated, Body: "<entry/>"},
	)

	assert.NoError(suite.T(), session.Upload(context.Background(), media))
	assert.True(suite.T(), session.Completed())
	assert.Equal(suite.T(), "<entry/>", string(session.Result()))

	assert.Len(suite.T(), mockClient.DoCalls, 4)
	assert.Equal(suite.T(), "bytes 0-3/10", mockClient.DoCalls[1].Header.Get("Content-Range"))
	assert.Equal(suite.T(), "bytes 4-7/10", mockClient.DoCalls[2].Header.Get("Content-Range"))
	assert.Equal(suite.T(), "bytes 8-9/10", mockClient.DoCalls[3].Header.Get("Content-Range"))
	assert.Equal(suite.T(), "xxxx", mockClient.DoBodies[1])
	assert.Equal(suite.T(), "xx", mockClient.DoBodies[3])
}
