package cloudinary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agrilink/domain"
)

func newTestRepository(baseURL string) *CloudinaryRepository {
	return NewCloudinaryRepository(CloudinaryConfig{
		BaseURL:   baseURL,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "agrilink/products",
	})
}

func TestUpload(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if folder := r.FormValue("folder"); folder != "agrilink/products" {
			t.Errorf("folder = %q, want agrilink/products", folder)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"agrilink/products/abc","secure_url":"https://res.cloudinary.com/demo/abc.jpg"}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)

	result, err := repo.Upload(context.Background(), "tomatoes.jpg", strings.NewReader("fake-image-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if gotPath != "/v1_1/demo/image/upload" {
		t.Errorf("path = %q, want /v1_1/demo/image/upload", gotPath)
	}
	if !strings.HasPrefix(gotAuth, "Basic ") {
		t.Errorf("expected basic auth header, got %q", gotAuth)
	}
	if result.PublicID != "agrilink/products/abc" {
		t.Errorf("public id = %q", result.PublicID)
	}
	if result.URL != "https://res.cloudinary.com/demo/abc.jpg" {
		t.Errorf("url = %q", result.URL)
	}
}

func TestUploadUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)

	_, err := repo.Upload(context.Background(), "tomatoes.jpg", strings.NewReader("x"))
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var gotPath, gotPublicID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotPublicID = r.FormValue("public_id")
		w.Write([]byte(`{"result":"ok"}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)

	if err := repo.Delete(context.Background(), "agrilink/products/abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "/v1_1/demo/image/destroy" {
		t.Errorf("path = %q, want /v1_1/demo/image/destroy", gotPath)
	}
	if gotPublicID != "agrilink/products/abc" {
		t.Errorf("public_id = %q", gotPublicID)
	}
}
