package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/matchapi"
	"github.com/jonathan/resume-matcher/internal/ui"
)

// ErrUploadTooLarge indicates the multipart body exceeded the upload limit
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ui.ValidationError
	var tooLarge *ErrUploadTooLarge
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.Is(err, ui.ErrUnknownTab):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ui.ErrBusy):
		return http.StatusConflict
	}

	switch matchapi.KindOf(err) {
	case matchapi.KindRequest:
		return http.StatusBadRequest
	case matchapi.KindTransport, matchapi.KindStatus, matchapi.KindDecode, matchapi.KindService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text to show for err in a JSON error body
func userMessage(err error) string {
	var validationErr *ui.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if matchapi.KindOf(err) != "" {
		return matchapi.Message(err)
	}
	return err.Error()
}
