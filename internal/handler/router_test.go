package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ushay-etl/internal/domain"
)

// MockContainerService echoes the upload back as a probe.
type MockContainerService struct {
	lastName string
	fields   *domain.Fields
}

func (m *MockContainerService) Inspect(ctx context.Context, fileName string, data []byte) *domain.FileResult {
	m.lastName = fileName
	offset := 0
	return &domain.FileResult{
		Probe: domain.ContainerProbe{
			SourceFile:       fileName,
			SourceByteLength: len(data),
			SignatureOffset:  &offset,
			ArchiveOpenable:  true,
		},
		Fields: m.fields,
	}
}

func newTestRouter(svc domain.ContainerService, maxSize int64) http.Handler {
	logger := NewMockHandlerLogger()
	h := NewContainerHandler(svc, []string{"RUC", "PLAZO"}, maxSize, logger)
	return NewRouter(h, logger)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestNewRouter_Health(t *testing.T) {
	router := newTestRouter(&MockContainerService{}, 1024)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestInspectContainer(t *testing.T) {
	fields := domain.NewFields()
	fields.Set("COD_PROC", "SIE-001")
	fields.Set("RUC", "1234567890")
	svc := &MockContainerService{fields: fields}
	router := newTestRouter(svc, 1024)

	body, ct := multipartBody(t, "file", "../../SIE-001.ushay", []byte("PK\x03\x04"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/containers/inspect", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if svc.lastName != "SIE-001.ushay" {
		t.Fatalf("expected sanitized file name, got %q", svc.lastName)
	}

	var resp struct {
		Probe    domain.ContainerProbe  `json:"probe"`
		Fields   []domain.MetadataField `json:"fields"`
		Sections []domain.SectionRecord `json:"sections"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Probe.SourceByteLength != 4 || !resp.Probe.ArchiveOpenable {
		t.Fatalf("unexpected probe: %+v", resp.Probe)
	}
	if len(resp.Fields) != 2 || resp.Fields[0].Tag != "COD_PROC" {
		t.Fatalf("unexpected fields: %+v", resp.Fields)
	}
	if resp.Sections == nil {
		t.Fatalf("sections must be an empty array, not null")
	}
}

func TestInspectContainer_WantedOnly(t *testing.T) {
	fields := domain.NewFields()
	fields.Set("COD_PROC", "SIE-001")
	fields.Set("RUC", "1234567890")
	router := newTestRouter(&MockContainerService{fields: fields}, 1024)

	body, ct := multipartBody(t, "file", "a.ushay", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/containers/inspect?wanted_only=true", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	var resp struct {
		Fields []domain.MetadataField `json:"fields"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []domain.MetadataField{{Tag: "RUC", Value: "1234567890"}, {Tag: "PLAZO", Value: ""}}
	if len(resp.Fields) != 2 || resp.Fields[0] != want[0] || resp.Fields[1] != want[1] {
		t.Fatalf("unexpected fields: %+v", resp.Fields)
	}
}

func TestInspectContainer_MissingFile(t *testing.T) {
	router := newTestRouter(&MockContainerService{}, 1024)

	body, ct := multipartBody(t, "other", "a.ushay", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/containers/inspect", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestInspectContainer_TooLarge(t *testing.T) {
	router := newTestRouter(&MockContainerService{}, 8)

	body, ct := multipartBody(t, "file", "a.ushay", bytes.Repeat([]byte("x"), 64))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/containers/inspect", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rr.Code)
	}
}

func TestInspectContainer_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(&MockContainerService{}, 1024)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/containers/inspect", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}
