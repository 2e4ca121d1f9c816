package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ekaraca/vspecs/internal/apperror"
)

func TestUpload_Success(t *testing.T) {
	var gotKey, gotFilename string
	var gotContent []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("upstream FormFile: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotContent, _ = io.ReadAll(file)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"url": "https://i.ibb.co/xyz/avatar.png"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "imgbb-key")
	url, err := c.Upload(context.Background(), "avatar.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if url != "https://i.ibb.co/xyz/avatar.png" {
		t.Errorf("url = %q", url)
	}
	if gotKey != "imgbb-key" {
		t.Errorf("key = %q, want imgbb-key", gotKey)
	}
	if gotFilename != "avatar.png" {
		t.Errorf("filename = %q", gotFilename)
	}
	if string(gotContent) != "png-bytes" {
		t.Errorf("content = %q", gotContent)
	}
}

func TestUpload_MissingKey(t *testing.T) {
	c := New("http://unused.invalid", "")

	_, err := c.Upload(context.Background(), "a.png", strings.NewReader("x"))
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("Upload() error = %v, want ErrUpstream", err)
	}
}

func TestUpload_UpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "imgbb-key")
	_, err := c.Upload(context.Background(), "a.png", strings.NewReader("x"))
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("Upload() error = %v, want ErrUpstream", err)
	}
}

func TestUpload_UnsuccessfulResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	c := New(srv.URL, "imgbb-key")
	_, err := c.Upload(context.Background(), "a.png", strings.NewReader("x"))
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("Upload() error = %v, want ErrUpstream", err)
	}
}
