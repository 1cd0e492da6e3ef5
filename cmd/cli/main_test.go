package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestGetJSONPrintsIndentedResponse(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"branch_id":"br-1","quantity":"42"}`))
	}))
	defer server.Close()

	origURL, origTimeout := baseURL, timeout
	baseURL = server.URL
	timeout = 5 * time.Second
	defer func() { baseURL, timeout = origURL, origTimeout }()

	out := captureOutput(t, func() {
		getJSON("/api/v1/stocks/br-1/ing-rice")
	})

	if requestedPath != "/api/v1/stocks/br-1/ing-rice" {
		t.Fatalf("unexpected request path %q", requestedPath)
	}

	expected := "{\n  \"branch_id\": \"br-1\",\n  \"quantity\": \"42\"\n}\n"
	if out != expected {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
