package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/consultia/expense-system/internal/infrastructure/storage"
)

// FilesHandler serves stored files behind signed URLs. The signature check
// is the only gate; no session is required, so receipt and avatar links can
// be embedded directly in clients.
type FilesHandler struct {
	files *storage.DiskStore
}

func NewFilesHandler(files *storage.DiskStore) *FilesHandler {
	return &FilesHandler{files: files}
}

func (h *FilesHandler) Download(c echo.Context) error {
	bucket := c.Param("bucket")
	name := c.Param("name")

	exp, err := strconv.ParseInt(c.QueryParam("exp"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "invalid signature")
	}
	if err := h.files.Verify(bucket, name, exp, c.QueryParam("sig")); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "invalid signature")
	}

	rc, err := h.files.Open(bucket, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "file not found")
		}
		return err
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, "application/octet-stream", rc)
}
