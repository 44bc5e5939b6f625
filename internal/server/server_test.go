package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krestn/HomeAI/internal/agent"
	"github.com/krestn/HomeAI/internal/config"
	"github.com/krestn/HomeAI/internal/documents"
)

type stubAgent struct {
	lastUserID     int64
	lastMessage    string
	lastPropertyID *int64
	response       *agent.Response
	err            error
}

func (s *stubAgent) Run(_ context.Context, userID int64, message string, propertyID *int64) (*agent.Response, error) {
	s.lastUserID = userID
	s.lastMessage = message
	s.lastPropertyID = propertyID
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func newTestServer(t *testing.T, stub *stubAgent) *Server {
	t.Helper()

	docs, err := documents.NewStore(t.TempDir())
	require.NoError(t, err)

	cfg := config.ServerConfig{
		Addr:   ":0",
		Tokens: map[string]int64{"secret-token": 7},
	}
	return New(cfg, stub, docs, nil)
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer secret-token")
	return req
}

func TestChatHappyPath(t *testing.T) {
	stub := &stubAgent{response: &agent.Response{Reply: "Hello there."}}
	srv := newTestServer(t, stub)

	body := `{"message": "hi", "property_id": 2}`
	req := authed(httptest.NewRequest(http.MethodPost, "/agent/chat", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), stub.lastUserID)
	assert.Equal(t, "hi", stub.lastMessage)
	require.NotNil(t, stub.lastPropertyID)
	assert.Equal(t, int64(2), *stub.lastPropertyID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Hello there.", payload["reply"])
	assert.Equal(t, float64(7), payload["user_id"])
}

func TestChatRejectsMissingToken(t *testing.T) {
	srv := newTestServer(t, &stubAgent{})

	req := httptest.NewRequest(http.MethodPost, "/agent/chat", strings.NewReader(`{"message": "hi"}`))
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t, &stubAgent{})

	req := authed(httptest.NewRequest(http.MethodPost, "/agent/chat", strings.NewReader(`{"message": "  "}`)))
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func uploadRequest(t *testing.T, filename, contentType, text string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	require.NoError(t, writer.WriteField("text", text))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return authed(req)
}

func TestDocumentUploadListDelete(t *testing.T) {
	srv := newTestServer(t, &stubAgent{})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, uploadRequest(t, "inspection.pdf", "application/pdf", "roof looks fine", []byte("%PDF-1.4 fake")))
	require.Equal(t, http.StatusOK, rec.Code)

	var uploaded documentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	assert.Equal(t, "inspection.pdf", uploaded.OriginalName)
	assert.Equal(t, "roof looks fine", uploaded.Preview)
	assert.Equal(t, "/documents/"+uploaded.ID+"/file", uploaded.PreviewURL)

	rec = httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/documents", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []documentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, uploaded.ID, listed[0].ID)

	rec = httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/documents/"+uploaded.ID+"/file", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, authed(httptest.NewRequest(http.MethodDelete, "/documents/"+uploaded.ID, nil)))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, authed(httptest.NewRequest(http.MethodDelete, "/documents/"+uploaded.ID, nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	srv := newTestServer(t, &stubAgent{})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, uploadRequest(t, "notes.txt", "text/plain", "", []byte("hello")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusReportsTurns(t *testing.T) {
	srv := newTestServer(t, &stubAgent{response: &agent.Response{Reply: "ok"}})

	rec := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPost, "/agent/chat", strings.NewReader(`{"message": "hi"}`)))
	srv.routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, float64(1), payload["turn_count"])
	assert.Equal(t, float64(0), payload["error_count"])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubAgent{})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
