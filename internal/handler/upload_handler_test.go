package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/storage"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	kind        storage.Kind
	owner       string
	contentType string
	data        []byte
}

func (f *fakeUploader) Upload(_ context.Context, kind storage.Kind, owner, contentType string, r io.Reader) (*storage.Stored, error) {
	path, err := storage.ObjectPath(kind, owner, contentType)
	if err != nil {
		return nil, err
	}
	f.kind, f.owner, f.contentType = kind, owner, contentType
	f.data, _ = io.ReadAll(r)
	return &storage.Stored{URL: "https://files/" + path, Path: path}, nil
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="card.jpg"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadHandler_UploadImage(t *testing.T) {
	store := &fakeUploader{}
	h := NewUploadHandler(store)
	e := echo.New()
	e.POST("/api/uploads/images", h.UploadImage, withUser("seller", "Sam"))

	send := func(query, contentType string) *httptest.ResponseRecorder {
		body, ct := multipartImage(t, contentType, []byte("jpegdata"))
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/images"+query, body)
		req.Header.Set(echo.HeaderContentType, ct)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := send("?kind=auction", "image/jpeg")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, storage.KindAuction, store.kind)
	require.Equal(t, "seller", store.owner)
	require.Equal(t, []byte("jpegdata"), store.data)
	require.Contains(t, rec.Body.String(), `"path":"auctions/seller/`)

	rec = send("?kind=video", "image/jpeg")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send("?kind=chat", "application/pdf")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_NotConfigured(t *testing.T) {
	h := NewUploadHandler(nil)
	e := echo.New()
	e.POST("/api/uploads/images", h.UploadImage, withUser("seller", "Sam"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/uploads/images?kind=auction", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
