package handler

import (
	"crypto/rand"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/api/metrics"
	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

const maxUploadBytes = 5 << 20 // 5MB

// UploadHandler exposes the unauthenticated story-upload flow: a multipart
// form with an image written to local disk and a flat document in the store.
type UploadHandler struct {
	service   ports.UploadService
	uploadDir string
	log       zerolog.Logger
}

func NewUploadHandler(service ports.UploadService, uploadDir string, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{service: service, uploadDir: uploadDir, log: log}
}

// Create handles POST /api/stories/upload.
//
// @Summary      Upload an anonymous story with an image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true  "Submitter name"
// @Param        email        formData  string  true  "Submitter email"
// @Param        description  formData  string  true  "Story description"
// @Param        image        formData  file    true  "Image file (max 5MB)"
// @Success      201          {object}  uploadResponse
// @Failure      400          {object}  map[string]string
// @Failure      500          {object}  map[string]string
// @Router       /api/stories/upload [post]
func (h *UploadHandler) Create(c echo.Context) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	description := c.FormValue("description")
	if name == "" || email == "" || description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, email, and description are required")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "Image must be 5MB or smaller")
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image files are allowed")
	}

	filename := uniqueFilename(fileHeader.Filename)
	path := filepath.Join(h.uploadDir, filename)
	if err := h.saveFile(fileHeader, path); err != nil {
		h.log.Error().Err(err).Str("path", path).Msg("failed to write upload")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create story")
	}

	upload, err := h.service.Create(c.Request().Context(), ports.UploadInput{
		Name:        name,
		Email:       email,
		Description: description,
		Image:       filename,
	})
	if err != nil {
		// The file is already on disk; remove the orphan before reporting.
		if rmErr := os.Remove(path); rmErr != nil {
			h.log.Error().Err(rmErr).Str("path", path).Msg("failed to remove orphaned upload file")
		}
		return err
	}

	metrics.UploadsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, uploadResponse{
		Message: "Story created successfully!",
		Story:   upload,
	})
}

// ListAll handles GET /api/stories/all, returning the 50 newest uploads.
//
// @Summary      List recent uploads
// @Tags         uploads
// @Produce      json
// @Success      200  {array}  domain.Upload
// @Router       /api/stories/all [get]
func (h *UploadHandler) ListAll(c echo.Context) error {
	uploads, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uploads)
}

// ListByEmail handles GET /api/stories/my/:email.
//
// @Summary      List uploads by submitter email
// @Tags         uploads
// @Produce      json
// @Param        email  path     string  true  "Submitter email"
// @Success      200    {array}  domain.Upload
// @Router       /api/stories/my/{email} [get]
func (h *UploadHandler) ListByEmail(c echo.Context) error {
	uploads, err := h.service.ListByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uploads)
}

func (h *UploadHandler) saveFile(fileHeader *multipart.FileHeader, path string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, maxUploadBytes)); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}

// uniqueFilename builds image-<unix>-<random>.<ext> so concurrent uploads of
// the same original name never collide.
func uniqueFilename(original string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("image-%d-%x%s", time.Now().UnixNano(), b, filepath.Ext(original))
}

type uploadResponse struct {
	Message string         `json:"message"`
	Story   *domain.Upload `json:"story"`
}
