package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SupabaseStorage implements domain.ObjectStore on a Supabase Storage bucket
// through its REST endpoint.
type SupabaseStorage struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

func NewSupabaseStorage(baseURL, apiKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: uploadTimeout},
	}
}

func (s *SupabaseStorage) objectPath(key string) string {
	return s.bucket + "/" + strings.TrimLeft(key, "/")
}

func (s *SupabaseStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	path := s.objectPath(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/storage/v1/object/"+path, data)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", contentType)
	// re-running a batch overwrites its artifacts
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return "supabase://" + path, nil
}
