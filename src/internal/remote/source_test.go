package remote

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dist/index.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleIndex))
	})
	mux.HandleFunc("/broken/index.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/garbage/index.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		source := NewHTTPSourceWithClient(srv.URL+"/dist/", srv.Client())
		if got, want := source.URL(), srv.URL+"/dist/index.json"; got != want {
			t.Errorf("URL() = %q, want %q", got, want)
		}

		idx, err := source.Index(t.Context())
		if err != nil {
			t.Fatalf("Index() error: %v", err)
		}
		if len(idx) != 5 {
			t.Errorf("len(idx) = %d, want 5", len(idx))
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := NewHTTPSource(srv.URL + "/missing").Index(t.Context())
		if !IsIndexNotFound(err) {
			t.Errorf("Index() error = %v, want ErrIndexNotFound", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		_, err := NewHTTPSource(srv.URL + "/broken").Index(t.Context())
		if err == nil || IsIndexNotFound(err) {
			t.Errorf("Index() error = %v, want HTTP error", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := NewHTTPSource(srv.URL + "/garbage").Index(t.Context()); err == nil {
			t.Error("Index() should fail on a malformed document")
		}
	})
}
