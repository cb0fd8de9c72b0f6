package leetcode_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lanki/internal/leetcode"
	"github.com/vytor/lanki/internal/models"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestFetchDifficulty(t *testing.T) {
	tests := []struct {
		answer string
		want   models.Difficulty
	}{
		{answer: "Easy", want: models.Easy},
		{answer: "Medium", want: models.Medium},
		{answer: "Hard", want: models.Hard},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			srv, got := newServer(t, http.StatusOK, `{"data":{"question":{"difficulty":"`+tt.answer+`"}}}`)
			client := leetcode.New(srv.URL, time.Second)

			d, err := client.FetchDifficulty(context.Background(), "https://leetcode.com/problems/two-sum/description/")
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)

			assert.Equal(t, "getQuestionDetail", (*got)["operationName"])
			assert.Equal(t, map[string]any{"titleSlug": "two-sum"}, (*got)["variables"])
		})
	}
}

func TestFetchDifficulty_UnrecognizedValue(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"question":{"difficulty":"Legendary"}}}`)

	_, err := leetcode.New(srv.URL, time.Second).FetchDifficulty(context.Background(), "https://leetcode.com/problems/two-sum")
	assert.ErrorIs(t, err, leetcode.ErrUnknownDifficulty)
}

func TestFetchDifficulty_MissingQuestion(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"question":null}}`)

	_, err := leetcode.New(srv.URL, time.Second).FetchDifficulty(context.Background(), "https://leetcode.com/problems/nope")
	assert.ErrorIs(t, err, leetcode.ErrUnknownDifficulty)
}

func TestFetchDifficulty_HTTPError(t *testing.T) {
	srv, _ := newServer(t, http.StatusTooManyRequests, `slow down`)

	_, err := leetcode.New(srv.URL, time.Second).FetchDifficulty(context.Background(), "https://leetcode.com/problems/two-sum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchDifficulty_InvalidURL(t *testing.T) {
	client := leetcode.New("http://127.0.0.1:0", time.Second)

	_, err := client.FetchDifficulty(context.Background(), "https://leetcode.com/problemset/")
	assert.ErrorIs(t, err, leetcode.ErrInvalidProblemURL)
}
