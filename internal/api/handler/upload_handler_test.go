package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

type stubUploadService struct {
	createFn      func(ctx context.Context, in ports.UploadInput) (*domain.Upload, error)
	listAllFn     func(ctx context.Context) ([]*domain.Upload, error)
	listByEmailFn func(ctx context.Context, email string) ([]*domain.Upload, error)
}

func (s *stubUploadService) Create(ctx context.Context, in ports.UploadInput) (*domain.Upload, error) {
	return s.createFn(ctx, in)
}

func (s *stubUploadService) ListAll(ctx context.Context) ([]*domain.Upload, error) {
	return s.listAllFn(ctx)
}

func (s *stubUploadService) ListByEmail(ctx context.Context, email string) ([]*domain.Upload, error) {
	return s.listByEmailFn(ctx, email)
}

// multipartUpload builds a form with the given fields and one image part.
func multipartUpload(t *testing.T, fields map[string]string, filename, contentType string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(payload); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/stories/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func uploadFields() map[string]string {
	return map[string]string{
		"name":        "Alice",
		"email":       "alice@example.com",
		"description": "Street food from my childhood",
	}
}

func TestUploadHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	dir := t.TempDir()

	var gotInput ports.UploadInput
	stub := &stubUploadService{
		createFn: func(_ context.Context, in ports.UploadInput) (*domain.Upload, error) {
			gotInput = in
			return &domain.Upload{ID: "upload-1", Name: in.Name, Email: in.Email, Image: in.Image}, nil
		},
	}
	handler := NewUploadHandler(stub, dir, zerolog.Nop())

	req := multipartUpload(t, uploadFields(), "momo.jpg", "image/jpeg", []byte("jpeg-bytes"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Story created successfully!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	if !strings.HasPrefix(gotInput.Image, "image-") || !strings.HasSuffix(gotInput.Image, ".jpg") {
		t.Fatalf("unexpected stored filename: %q", gotInput.Image)
	}
	data, err := os.ReadFile(filepath.Join(dir, gotInput.Image))
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

func TestUploadHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	handler := NewUploadHandler(&stubUploadService{}, t.TempDir(), zerolog.Nop())

	fields := uploadFields()
	delete(fields, "description")
	req := multipartUpload(t, fields, "momo.jpg", "image/jpeg", []byte("x"))
	c := e.NewContext(req, httptest.NewRecorder())

	expectHTTPError(t, handler.Create(c), http.StatusBadRequest)
}

func TestUploadHandler_Create_MissingImage(t *testing.T) {
	e := newTestEcho()
	handler := NewUploadHandler(&stubUploadService{}, t.TempDir(), zerolog.Nop())

	req := multipartUpload(t, uploadFields(), "", "", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	expectHTTPError(t, handler.Create(c), http.StatusBadRequest)
}

func TestUploadHandler_Create_NonImageRejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubUploadService{
		createFn: func(context.Context, ports.UploadInput) (*domain.Upload, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewUploadHandler(stub, t.TempDir(), zerolog.Nop())

	req := multipartUpload(t, uploadFields(), "notes.txt", "text/plain", []byte("plain text"))
	c := e.NewContext(req, httptest.NewRecorder())

	expectHTTPError(t, handler.Create(c), http.StatusBadRequest)
}

func TestUploadHandler_Create_RemovesFileOnServiceFailure(t *testing.T) {
	e := newTestEcho()
	dir := t.TempDir()
	stub := &stubUploadService{
		createFn: func(context.Context, ports.UploadInput) (*domain.Upload, error) {
			return nil, domain.ErrValidation
		},
	}
	handler := NewUploadHandler(stub, dir, zerolog.Nop())

	req := multipartUpload(t, uploadFields(), "momo.jpg", "image/jpeg", []byte("jpeg-bytes"))
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Create(c); err == nil {
		t.Fatalf("expected error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected orphaned file to be removed, found %d entries", len(entries))
	}
}

func TestUploadHandler_ListAll(t *testing.T) {
	e := newTestEcho()
	stub := &stubUploadService{
		listAllFn: func(context.Context) ([]*domain.Upload, error) {
			return []*domain.Upload{{ID: "upload-1"}, {ID: "upload-2"}}, nil
		},
	}
	handler := NewUploadHandler(stub, t.TempDir(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/stories/all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// The contract is a bare JSON array, not an envelope.
	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Fatalf("expected array response, got %q", rec.Body.String())
	}
}

func TestUploadHandler_ListByEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubUploadService{
		listByEmailFn: func(_ context.Context, email string) ([]*domain.Upload, error) {
			if email != "alice@example.com" {
				t.Fatalf("unexpected email: %q", email)
			}
			return []*domain.Upload{{ID: "upload-1", Email: email}}, nil
		},
	}
	handler := NewUploadHandler(stub, t.TempDir(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/stories/my/alice@example.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("alice@example.com")

	if err := handler.ListByEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
