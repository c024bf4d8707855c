package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrBucketNotFound = errors.New("storage bucket not found")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Storage is a minimal client for the Supabase storage REST API. It covers
// bucket provisioning and public object uploads, nothing more.
type Storage struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
}

func NewStorage(baseURL string, apiKey string, timeout time.Duration) *Storage {
	return &Storage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// EnsureBucket creates a public bucket if it does not exist yet. Creation of
// an already existing bucket is treated as success.
func (s *Storage) EnsureBucket(ctx context.Context, bucket string) error {

	body, err := json.Marshal(map[string]any{
		"id":     bucket,
		"name":   bucket,
		"public": true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal bucket request")
	}

	resp, err := s.sendRequest(ctx, http.MethodPost, "/storage/v1/bucket", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	msg := strings.ToLower(string(respBody))

	if strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate") {
		return nil
	}
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return errors.Errorf("no permission to create bucket %s, create it manually in the storage console: %s",
			bucket, string(respBody))
	}

	return errors.Errorf("failed to create bucket %s: status %d: %s", bucket, resp.StatusCode, string(respBody))
}

// Upload stores the object under the given bucket, overwriting any previous
// version, and returns its public URL.
func (s *Storage) Upload(ctx context.Context, bucket string, object string, data []byte, contentType string) (string, error) {

	path := fmt.Sprintf("/storage/v1/object/%s/%s", bucket, url.PathEscape(object))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "failed to create upload request")
	}
	s.setAuthHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to send upload request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusNotFound && strings.Contains(strings.ToLower(string(respBody)), "bucket") {
			return "", errors.Wrapf(ErrBucketNotFound, "bucket %s", bucket)
		}
		return "", errors.Errorf("failed to upload %s: status %d: %s", object, resp.StatusCode, string(respBody))
	}

	return s.PublicURL(bucket, object), nil
}

func (s *Storage) PublicURL(bucket string, object string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, url.PathEscape(object))
}

func (s *Storage) sendRequest(ctx context.Context, method string, path string, contentType string, body io.Reader) (*http.Response, error) {

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	s.setAuthHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	return resp, nil
}

func (s *Storage) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}
