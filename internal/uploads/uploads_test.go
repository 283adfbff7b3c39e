package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestInspect(t *testing.T) {
	ext, ct, err := Inspect("Lunch.PNG", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, "image/png", ct)

	_, _, err = Inspect("notes.txt", pngHeader)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = Inspect("fake.jpg", []byte("hello, I am plain text"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	a := FileName(now, "jpg")
	b := FileName(now, "jpg")

	assert.Regexp(t, regexp.MustCompile(`^20240501_123000_[0-9a-f]{8}\.jpg$`), a)
	assert.NotEqual(t, a, b)
}

func TestLocalStoreSaveAndServe(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../escape.png", pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "escape.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngHeader, rec.Body.Bytes())
}

func TestLocalStoreDoesNotListDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "meal.png", pngHeader, "image/png")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	for _, p := range []string{"/uploads/", "/uploads/nested/", "/uploads/nested", "/uploads/missing.png"} {
		rec := httptest.NewRecorder()
		store.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
		assert.NotContains(t, rec.Body.String(), "meal.png", p)
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreSave(t *testing.T) {
	putter := &fakePutter{}
	store := NewS3Store(putter, "meals", "eu-west-1", "meal-images", "")

	url, err := store.Save(context.Background(), "a.png", pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://meals.s3.eu-west-1.amazonaws.com/meal-images/a.png", url)
	assert.Equal(t, "meals", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "meal-images/a.png", aws.ToString(putter.input.Key))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.True(t, bytes.Equal(pngHeader, putter.body))

	cdn := NewS3Store(putter, "meals", "eu-west-1", "", "https://cdn.test")
	url, err = cdn.Save(context.Background(), "b.png", pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/b.png", url)

	putter.err = errors.New("denied")
	_, err = store.Save(context.Background(), "c.png", pngHeader, "image/png")
	assert.Error(t, err)
}
