package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("some remote content"))
		case "/big":
			w.Write([]byte(strings.Repeat("x", maxContentBytes+100)))
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	text, err := FetchText(ctx, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "some remote content", text)

	text, err = FetchText(ctx, srv.URL+"/big")
	require.NoError(t, err)
	assert.Len(t, text, maxContentBytes)

	_, err = FetchText(ctx, srv.URL+"/gone")
	assert.ErrorIs(t, err, ErrURLNotFound)

	_, err = FetchText(ctx, srv.URL+"/boom")
	assert.Error(t, err)

	_, err = FetchText(ctx, "http://127.0.0.1:0/unreachable")
	assert.Error(t, err)
}
