package rest

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agrilink/domain"
	"agrilink/internal/repository/cloudinary"
	jsonres "agrilink/pkg/response"
)

// Uploader contract interface
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (cloudinary.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

const maxUploadBytes = 10 << 20 // 10 MiB

type UploadHandler struct {
	uploader Uploader
	timeout  time.Duration
}

func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		timeout:  30 * time.Second,
	}
}

type uploadPayload struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "Missing file field", nil))
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", "File too large", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.uploader.Upload(ctx, fileHeader.Filename, file)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("file uploaded", uploadPayload{
		URL:      result.URL,
		PublicID: result.PublicID,
	}))
}

func (h *UploadHandler) Delete(c echo.Context) error {
	publicID := c.Param("publicId")
	if publicID == "" {
		return writeError(c, domain.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.uploader.Delete(ctx, publicID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("file deleted", nil))
}
