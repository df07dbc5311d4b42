package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_NoArgumentsFailsWithUsage(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	status := run(nil, 3, 0, &out, &errOut)

	require.Equal(t, 1, status)
	require.Contains(t, errOut.String(), "Usage: pingurl <URL>")
	require.Empty(t, out.String())
}

func TestRun_TooManyArgumentsFailsWithUsage(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	status := run([]string{"http://a", "http://b"}, 3, 0, &out, &errOut)

	require.Equal(t, 1, status)
	require.Contains(t, errOut.String(), "Usage: pingurl <URL>")
}

func TestRun_SingleURLSamplesAndReports(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var out, errOut bytes.Buffer
	status := run([]string{server.URL}, 3, 0, &out, &errOut)

	require.Equal(t, 0, status)
	require.Empty(t, errOut.String())
	require.Contains(t, out.String(), "33.33% done")
	require.Contains(t, out.String(), "100.00% done")
	require.Contains(t, out.String(), "over 3 requests")
	require.Contains(t, out.String(), "Average: ")
	require.Contains(t, out.String(), "Median: ")
	require.Contains(t, out.String(), "Minimum: ")
	require.Contains(t, out.String(), "Maximum: ")
}

func TestRun_AllFailuresReportsNoData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var out, errOut bytes.Buffer
	status := run([]string{server.URL}, 3, 0, &out, &errOut)

	require.Equal(t, 0, status)
	require.Contains(t, out.String(), "No successful samples")
	require.NotContains(t, out.String(), "Average: ")
}
