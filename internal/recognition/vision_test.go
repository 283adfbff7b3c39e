package recognition

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestVisionClientRecognize(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completion("```json\n{\"foods\":[{\"name\":\"fried rice\",\"confidence\":0.8,\"estimated_calories\":350,\"estimated_macros\":{\"carbohydrates\":50,\"protein\":8,\"fat\":12},\"suggested_servings\":1.5}]}\n```"))
	}))
	defer srv.Close()

	client := NewVisionClient(srv.URL+"/v1/", "key-123", "qwen-vl-plus", 5*time.Second)
	foods, err := client.Recognize(context.Background(), []byte{0xff, 0xd8, 0xff}, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "qwen-vl-plus", gjson.GetBytes(gotBody, "model").String())
	assert.Equal(t, "data:image/jpeg;base64,/9j/", gjson.GetBytes(gotBody, "messages.0.content.0.image_url.url").String())

	require.Len(t, foods, 1)
	assert.Equal(t, "fried rice", foods[0].Name)
	assert.Equal(t, 350.0, foods[0].EstimatedCalories)
	assert.Equal(t, 50.0, foods[0].EstimatedMacros.Carbohydrates)
	assert.Equal(t, 1.5, foods[0].SuggestedServings)
}

func TestVisionClientUpstreamErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
		},
		"shape": func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"output":"nope"}`)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			client := NewVisionClient(srv.URL, "k", "m", time.Second)
			_, err := client.Recognize(context.Background(), []byte("img"), "image/png")
			assert.ErrorIs(t, err, ErrUpstream)
		})
	}
}

func TestVisionClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewVisionClient(url, "k", "m", time.Second)
	_, err := client.Recognize(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestVisionClientKeepsFullEndpoint(t *testing.T) {
	client := NewVisionClient("https://api.test/v1/chat/completions", "k", "m", time.Second)
	assert.Equal(t, "https://api.test/v1/chat/completions", client.apiURL)
}
