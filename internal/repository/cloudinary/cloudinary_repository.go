package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pobyzaarif/goshortcute"

	"agrilink/domain"
)

type CloudinaryConfig struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryRepository uploads media through the Cloudinary HTTP API using
// basic authentication instead of per-request signatures.
type CloudinaryRepository struct {
	cloudinaryConfig CloudinaryConfig
	client           *http.Client
}

func NewCloudinaryRepository(cfg CloudinaryConfig) *CloudinaryRepository {
	return &CloudinaryRepository{
		cloudinaryConfig: cfg,
		client:           &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

// UploadResult is the stored location of an uploaded asset.
type UploadResult struct {
	PublicID string
	URL      string
}

func (r *CloudinaryRepository) basicAuth() string {
	return "Basic " + goshortcute.StringtoBase64Encode(r.cloudinaryConfig.APIKey+":"+r.cloudinaryConfig.APISecret)
}

// Upload stores an image under a generated public ID and returns its URL.
func (r *CloudinaryRepository) Upload(ctx context.Context, filename string, file io.Reader) (UploadResult, error) {
	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", r.cloudinaryConfig.BaseURL, r.cloudinaryConfig.CloudName)
	publicID := uuid.NewString()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return UploadResult{}, fmt.Errorf("failed to copy upload body: %w", err)
	}
	_ = writer.WriteField("public_id", publicID)
	_ = writer.WriteField("folder", r.cloudinaryConfig.Folder)
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Add("Content-Type", writer.FormDataContentType())
	req.Header.Add("Authorization", r.basicAuth())

	res, err := r.client.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		return UploadResult{}, fmt.Errorf("%w: cloudinary returned %d: %s", domain.ErrUpstream, res.StatusCode, string(bodyBytes))
	}

	var uploadRes uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&uploadRes); err != nil {
		return UploadResult{}, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return UploadResult{
		PublicID: uploadRes.PublicID,
		URL:      uploadRes.SecureURL,
	}, nil
}

// Delete removes a previously uploaded asset by its public ID.
func (r *CloudinaryRepository) Delete(ctx context.Context, publicID string) error {
	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", r.cloudinaryConfig.BaseURL, r.cloudinaryConfig.CloudName)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("public_id", publicID)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize destroy form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return fmt.Errorf("failed to build destroy request: %w", err)
	}
	req.Header.Add("Content-Type", writer.FormDataContentType())
	req.Header.Add("Authorization", r.basicAuth())

	res, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%w: cloudinary returned %d: %s", domain.ErrUpstream, res.StatusCode, string(bodyBytes))
	}

	return nil
}
