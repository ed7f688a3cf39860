package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ushay-etl/internal/domain"
)

// s3Config supplies only the S3 settings.
type s3Config struct {
	domain.Config
	region, bucket string
}

func (c s3Config) GetAWSRegion() string    { return c.region }
func (c s3Config) GetS3Bucket() string     { return c.bucket }
func (c s3Config) GetAWSAccessKey() string { return "" }
func (c s3Config) GetAWSSecretKey() string { return "" }

func TestNewSupabaseStorage(t *testing.T) {
	svc := NewSupabaseStorage("http://localhost:54321/", "test-key", "artifacts")
	if svc.baseURL != "http://localhost:54321" {
		t.Fatalf("expected trailing slash trimmed, got %s", svc.baseURL)
	}
	if svc.apiKey != "test-key" {
		t.Fatalf("expected api key to be set, got %s", svc.apiKey)
	}
	if svc.client == nil {
		t.Fatalf("expected http client to be initialized")
	}
}

func TestSupabaseStorage_Upload(t *testing.T) {
	var gotPath, gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewSupabaseStorage(srv.URL, "key", "artifacts")
	loc, err := store.Upload(context.Background(), "ushay/run-1/probes.csv", strings.NewReader("file\n"), "text/csv")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if gotPath != "/storage/v1/object/artifacts/ushay/run-1/probes.csv" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bearer key" || gotType != "text/csv" || gotBody != "file\n" {
		t.Fatalf("unexpected request: auth=%q type=%q body=%q", gotAuth, gotType, gotBody)
	}
	if loc != "supabase://artifacts/ushay/run-1/probes.csv" {
		t.Fatalf("unexpected location %s", loc)
	}
}

func TestSupabaseStorage_UploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	store := NewSupabaseStorage(srv.URL, "key", "missing")
	_, err := store.Upload(context.Background(), "a.csv", strings.NewReader(""), "text/csv")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestNewS3Store_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  s3Config
	}{
		{"no region", s3Config{bucket: "b"}},
		{"no bucket", s3Config{region: "us-east-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewS3Store(context.Background(), tt.cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestS3Store_URL(t *testing.T) {
	s := &S3Store{bucket: "ushay", region: "us-east-1"}
	if got := s.URL("runs/r1/chunks.csv"); got != "https://ushay.s3.us-east-1.amazonaws.com/runs/r1/chunks.csv" {
		t.Fatalf("unexpected url %s", got)
	}
}
