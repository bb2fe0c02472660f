package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPDF = "%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n"

// runCLI executes the root command in-process against upstream.
func runCLI(t *testing.T, upstream string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--upstream", upstream, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSearchCommand(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-jobs/" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"jobs": [
			{"title": "Go Developer", "company": "Acme", "location": "Remote", "description": "APIs", "apply_link": "https://acme.example/1"},
			{"title": "SRE", "company": "Globex", "description": "On-call", "apply_link": "No link available"}
		]}`)
	}))
	defer upstream.Close()

	out, err := runCLI(t, upstream.URL, "search", "--query", "go developer")
	require.NoError(t, err)

	assert.Equal(t, "go developer", gotQuery)
	assert.Contains(t, out, "AVAILABLE OPPORTUNITIES")
	assert.Contains(t, out, "Go Developer")
	assert.Contains(t, out, "Apply: https://acme.example/1")
	assert.Contains(t, out, "Application link not available")
}

func TestSearchCommand_NoResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"jobs": []}`)
	}))
	defer upstream.Close()

	out, err := runCLI(t, upstream.URL, "search", "-q", "astronaut")
	require.NoError(t, err)
	assert.Contains(t, out, "NO JOBS FOUND")
}

func TestSearchCommand_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	out, err := runCLI(t, upstream.URL, "search", "--query", "engineer")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "SEARCH FAILED")
	assert.Contains(t, out, "Server responded with 503")
}

func TestSearchCommand_BlankQuery(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer upstream.Close()

	out, err := runCLI(t, upstream.URL, "search", "--query", "   ")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "ENTER A SEARCH TERM")
	assert.False(t, called)
}

func TestSearchCommand_RequiresQueryFlag(t *testing.T) {
	_, err := runCLI(t, "http://127.0.0.1:1", "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "query" not set`)
}

func TestMatchCommand(t *testing.T) {
	var gotQuery, gotFile string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match-jobs/" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotQuery = r.FormValue("query")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFile = header.Filename
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"matches": [
			{"title": "Data Analyst", "company": "Initech", "description": "SQL", "score": 85},
			{"title": "BI Developer", "company": "Hooli", "description": "Dashboards", "score": "61.5"}
		]}`)
	}))
	defer upstream.Close()

	resume := writeFile(t, "resume.pdf", testPDF)
	out, err := runCLI(t, upstream.URL, "match", "--resume", resume, "--query", "Data Analyst")
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst", gotQuery)
	assert.Equal(t, "resume.pdf", gotFile)
	assert.Contains(t, out, "PERFECT JOB MATCHES")
	assert.Contains(t, out, "85% Match (high)")
	assert.Contains(t, out, "61.5% Match (medium)")
}

func TestMatchCommand_RejectsNonPDF(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer upstream.Close()

	resume := writeFile(t, "resume.pdf", "just some plain text")
	out, err := runCLI(t, upstream.URL, "match", "--resume", resume, "--query", "Analyst")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "UNSUPPORTED FILE")
	assert.False(t, called)
}

func TestMatchCommand_ServiceError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"error": "Could not read resume"}`)
	}))
	defer upstream.Close()

	resume := writeFile(t, "resume.pdf", testPDF)
	out, err := runCLI(t, upstream.URL, "match", "-r", resume, "-q", "Analyst")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "ANALYSIS FAILED")
	assert.Contains(t, out, "Could not read resume")
}

func TestMatchCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "http://127.0.0.1:1", "match", "--resume", filepath.Join(t.TempDir(), "nope.pdf"), "--query", "Analyst")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume")
}

func TestLoadRuntime_InvalidLogLevel(t *testing.T) {
	_, err := runCLI(t, "http://127.0.0.1:1", "search", "--query", "x", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadRuntime_InvalidUpstream(t *testing.T) {
	_, err := runCLI(t, "not a url", "search", "--query", "x")
	require.Error(t, err)
}
