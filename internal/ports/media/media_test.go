package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSink_Store(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewLocalSink(fs, "")

	url, err := sink.Store(context.Background(), "selfies/1704441600000-me.jpg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/selfies/1704441600000-me.jpg", url)

	data, err := afero.ReadFile(fs, "/selfies/1704441600000-me.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestLocalSink_StoreWithBaseURL(t *testing.T) {
	sink := NewLocalSink(afero.NewMemMapFs(), "http://192.168.1.19:3000/")

	url, err := sink.Store(context.Background(), "a.jpg", strings.NewReader("x"), 1, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.19:3000/uploads/a.jpg", url)
}

func TestLocalSink_StoreStaysInsideRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewLocalSink(fs, "")

	url, err := sink.Store(context.Background(), "../../etc/passwd", strings.NewReader("x"), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/passwd", url)

	exists, err := afero.Exists(fs, "/etc/passwd")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalSink_StoreRejectsEmptyName(t *testing.T) {
	sink := NewLocalSink(afero.NewMemMapFs(), "")

	_, err := sink.Store(context.Background(), "/", strings.NewReader("x"), 1, "")
	assert.Error(t, err)
}

func TestLocalSink_FileSystemServesStoredFiles(t *testing.T) {
	sink := NewLocalSink(afero.NewMemMapFs(), "")
	_, err := sink.Store(context.Background(), "selfies/a.txt", strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)

	srv := http.StripPrefix(UploadsPrefix, http.FileServer(sink.FileSystem()))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/selfies/a.txt", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
}

func TestLocalSink_EscapesReference(t *testing.T) {
	sink := NewLocalSink(afero.NewMemMapFs(), "")

	ref, err := sink.Store(context.Background(), "selfies/1-a?b #1%.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/selfies/1-a%3Fb%20%231%25.jpg", ref)

	srv := http.StripPrefix(UploadsPrefix, http.FileServer(sink.FileSystem()))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, ref, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())
}

func TestLocalSink_FileSystemHidesDirectories(t *testing.T) {
	sink := NewLocalSink(afero.NewMemMapFs(), "")
	_, err := sink.Store(context.Background(), "selfies/1-me.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)

	srv := http.StripPrefix(UploadsPrefix, http.FileServer(sink.FileSystem()))
	for _, target := range []string{"/uploads/", "/uploads/selfies/", "/uploads/selfies"} {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.NotContains(t, w.Body.String(), "1-me.jpg", target)
	}
}

type fakeS3 struct {
	putFn func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return f.putFn(ctx, in)
}

func TestS3Sink_Store(t *testing.T) {
	var got *s3.PutObjectInput
	var body string
	client := &fakeS3{putFn: func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		got = in
		b, _ := io.ReadAll(in.Body)
		body = string(b)
		return &s3.PutObjectOutput{}, nil
	}}

	sink := NewS3Sink(client, "selfies-bucket", "https://cdn.example.com/")
	url, err := sink.Store(context.Background(), "selfies/1-me.jpg", strings.NewReader("img"), 3, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/selfies/1-me.jpg", url)
	require.NotNil(t, got)
	assert.Equal(t, "selfies-bucket", *got.Bucket)
	assert.Equal(t, "selfies/1-me.jpg", *got.Key)
	assert.Equal(t, "image/jpeg", *got.ContentType)
	assert.Equal(t, int64(3), *got.ContentLength)
	assert.Equal(t, "img", body)
}

func TestS3Sink_EscapesReference(t *testing.T) {
	var key string
	client := &fakeS3{putFn: func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		key = *in.Key
		return &s3.PutObjectOutput{}, nil
	}}

	ref, err := NewS3Sink(client, "b", "https://cdn.example.com").
		Store(context.Background(), "selfies/1-my photo?.jpg", strings.NewReader("img"), 3, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "selfies/1-my photo?.jpg", key)
	assert.Equal(t, "https://cdn.example.com/selfies/1-my%20photo%3F.jpg", ref)
}

func TestS3Sink_StoreError(t *testing.T) {
	s3Err := errors.New("access denied")
	client := &fakeS3{putFn: func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, s3Err
	}}

	url, err := NewS3Sink(client, "b", "https://b").Store(context.Background(), "k", strings.NewReader(""), 0, "")
	assert.ErrorIs(t, err, s3Err)
	assert.Empty(t, url)
}

func TestS3PublicURL(t *testing.T) {
	assert.Equal(t, "https://selfies.s3.eu-west-1.amazonaws.com", S3PublicURL("selfies", "eu-west-1", ""))
	assert.Equal(t, "http://localstack:4566/selfies", S3PublicURL("selfies", "us-east-1", "http://localstack:4566/"))
}

type fakeSink struct {
	calls   int
	storeFn func() (string, error)
}

func (f *fakeSink) Store(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error) {
	f.calls++
	return f.storeFn()
}

func TestBreakerSink_PassesThrough(t *testing.T) {
	next := &fakeSink{storeFn: func() (string, error) { return "https://b/k", nil }}
	sink := NewBreakerSink(next, "test")

	url, err := sink.Store(context.Background(), "k", strings.NewReader(""), 0, "")
	require.NoError(t, err)
	assert.Equal(t, "https://b/k", url)
	assert.Equal(t, 1, next.calls)
}

func TestBreakerSink_OpensAfterRepeatedFailures(t *testing.T) {
	uploadErr := errors.New("unavailable")
	next := &fakeSink{storeFn: func() (string, error) { return "", uploadErr }}
	sink := NewBreakerSink(next, "test")

	for i := 0; i < 10; i++ {
		_, err := sink.Store(context.Background(), "k", strings.NewReader(""), 0, "")
		assert.ErrorIs(t, err, uploadErr)
	}

	_, err := sink.Store(context.Background(), "k", strings.NewReader(""), 0, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, uploadErr)
	assert.Equal(t, 10, next.calls)
}
