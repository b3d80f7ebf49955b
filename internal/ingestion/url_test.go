package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURL_Success(t *testing.T) {
	htmlContent := `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Senior Software Engineer</h1>
<article>
<h2>Requirements</h2>
<ul>
<li>Go experience</li>
<li>Distributed systems</li>
</ul>
</article>
</main>
<footer>Footer</footer>
</body>
</html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(htmlContent))
	}))
	defer server.Close()

	cleanedText, metadata, err := FromURL(context.Background(), server.URL, Options{})
	require.NoError(t, err)

	assert.Contains(t, cleanedText, "Senior Software Engineer")
	assert.Contains(t, cleanedText, "Requirements")
	assert.NotContains(t, cleanedText, "Nav")
	assert.NotContains(t, cleanedText, "Footer")

	require.NotNil(t, metadata)
	assert.Equal(t, server.URL, metadata.URL)
	assert.Equal(t, "unknown", metadata.Platform)
	assert.Len(t, metadata.Hash, 64)
}

func TestFromURL_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "no scheme", url: "example.com/jobs"},
		{name: "unsupported scheme", url: "ftp://example.com/jobs"},
		{name: "empty", url: ""},
		{name: "no host", url: "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromURL(context.Background(), tt.url, Options{})
			require.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestFromURL_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := FromURL(context.Background(), server.URL, Options{})
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestFromURL_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	_, _, err := FromURL(context.Background(), url, Options{})
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestFromURL_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	_, _, err := FromURL(context.Background(), server.URL, Options{})
	require.ErrorIs(t, err, ErrNoContent)
}
