package supabase

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newStorageWithClient(client HTTPClient) *Storage {
	s := NewStorage("https://project.supabase.co", "key", time.Second)
	s.httpClient = client
	return s
}

func Test_EnsureBucket_WhenBucketAlreadyExists_ShouldSucceed(t *testing.T) {

	client := &mockHTTPClient{}
	client.On("Do", mock.Anything).Return(newResponse(400, `{"error":"Duplicate","message":"bucket already exists"}`), nil)

	storage := newStorageWithClient(client)
	err := storage.EnsureBucket(context.Background(), "cvs")

	assert.NoError(t, err)
}

func Test_EnsureBucket_WhenNoPermission_ShouldReturnDescriptiveError(t *testing.T) {

	client := &mockHTTPClient{}
	client.On("Do", mock.Anything).Return(newResponse(403, `{"message":"new row violates row-level security policy"}`), nil)

	storage := newStorageWithClient(client)
	err := storage.EnsureBucket(context.Background(), "cvs")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "manually")
}

func Test_Upload_WhenSucceeds_ShouldReturnPublicURL(t *testing.T) {

	client := &mockHTTPClient{}
	client.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("x-upsert") == "true" &&
			req.Header.Get("Authorization") == "Bearer key"
	})).Return(newResponse(200, `{"Key":"cvs/cv.pdf"}`), nil)

	storage := newStorageWithClient(client)
	url, err := storage.Upload(context.Background(), "cvs", "cv.pdf", []byte("data"), "application/pdf")

	assert.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/cvs/cv.pdf", url)
}

func Test_Upload_WhenBucketMissing_ShouldReturnBucketNotFound(t *testing.T) {

	client := &mockHTTPClient{}
	client.On("Do", mock.Anything).Return(newResponse(404, `{"message":"Bucket not found"}`), nil)

	storage := newStorageWithClient(client)
	_, err := storage.Upload(context.Background(), "cvs", "cv.pdf", []byte("data"), "application/pdf")

	assert.True(t, errors.Is(err, ErrBucketNotFound))
}
