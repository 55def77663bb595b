// Package handler contains the HTTP handlers for the service.
package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"estate/internal/delivery/http/middleware"
	"estate/internal/delivery/http/response"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/errors"
	"estate/internal/media"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Per-request file limits for the listing multipart routes.
const (
	maxGalleryFiles  = 20
	maxBrochureFiles = 5
)

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return response.JSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// callerID returns the authenticated account id set by the auth middleware.
func callerID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(middleware.ContextAccountID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return id, nil
}

func callerRole(c echo.Context) entity.Role {
	role, _ := c.Get(middleware.ContextRole).(entity.Role)

	return role
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithMessage("Invalid id")
	}

	return id, nil
}

// formOptional distinguishes an absent form field (nil) from a supplied one,
// empty included. Absent fields mean "no change" in partial updates.
func formOptional(c echo.Context, name string) *string {
	values, err := c.FormParams()
	if err != nil {
		return nil
	}
	vs, ok := values[name]
	if !ok || len(vs) == 0 {
		return nil
	}

	return &vs[0]
}

// readAttachment reads an optional single-file multipart field. A missing
// field is not an error.
func readAttachment(c echo.Context, field string) (*media.Attachment, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	return attachmentFromHeader(fh)
}

// readAttachments reads a multi-file multipart field, enforcing the per-field
// file limit.
func readAttachments(c echo.Context, field string, limit int) ([]media.Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > limit {
		return nil, domainerrors.ErrValidationFailed.
			WithMessage("Too many files in field '" + field + "'")
	}

	attachments := make([]media.Attachment, 0, len(files))
	for _, fh := range files {
		attachment, err := attachmentFromHeader(fh)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *attachment)
	}

	return attachments, nil
}

func attachmentFromHeader(fh *multipart.FileHeader) (*media.Attachment, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "read uploaded file")
	}

	return &media.Attachment{Filename: fh.Filename, Data: data}, nil
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return v
}

func queryIntPtr(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}

	return &v
}

func queryBoolPtr(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v := raw == "true"

	return &v
}

func queryFloatPtr(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &v
}

func formFloat(c echo.Context, name string) (float64, error) {
	raw := c.FormValue(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.
			WithMessage("Invalid number in field '" + name + "'")
	}

	return v, nil
}

func formFloatPtr(c echo.Context, name string) (*float64, error) {
	raw := formOptional(c, name)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.
			WithMessage("Invalid number in field '" + name + "'")
	}

	return &v, nil
}

func formBoolPtr(c echo.Context, name string) *bool {
	raw := formOptional(c, name)
	if raw == nil {
		return nil
	}
	v := *raw == "true"

	return &v
}
