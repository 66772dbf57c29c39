package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/storage"
)

type Uploader interface {
	Upload(ctx context.Context, kind storage.Kind, owner, contentType string, r io.Reader) (*storage.Stored, error)
}

type UploadHandler struct {
	store Uploader
}

func NewUploadHandler(store Uploader) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadImage stores the multipart "file" field and returns its url and path.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return unauthorized(c)
	}
	if h.store == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "image storage is not configured"))
	}
	kind, err := storage.ParseKind(c.QueryParam("kind"))
	if err != nil {
		return writeError(c, err, "image")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file is required"))
	}
	if fh.Size > storage.MaxImageBytes {
		return writeError(c, storage.ErrTooLarge, "image")
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable file"))
	}
	defer f.Close()

	stored, err := h.store.Upload(c.Request().Context(), kind, uid, fh.Header.Get("Content-Type"), f)
	if err != nil {
		return writeError(c, err, "image")
	}
	return c.JSON(http.StatusCreated, stored)
}
