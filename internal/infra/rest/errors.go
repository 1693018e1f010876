package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	domainerrors "storefront/internal/domain/errors"
)

// apiErrorBody is the backend's error envelope. The message field arrives as
// either a single string or an array of strings.
type apiErrorBody struct {
	Message flexMessage `json:"message"`
	Error   string      `json:"error"`
	Status  int         `json:"statusCode"`
}

type flexMessage string

func (m *flexMessage) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = flexMessage(single)

		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*m = flexMessage(strings.Join(many, ", "))

		return nil
	}

	// Unknown shape: leave empty and fall back to status-based messages.
	*m = ""

	return nil
}

// mapResponseError converts an HTTP failure into the domain taxonomy,
// preferring the backend's own message when one is present.
func mapResponseError(status int, payload []byte) domainerrors.AppError {
	var body apiErrorBody
	_ = json.Unmarshal(payload, &body)
	message := string(body.Message)

	var base *domainerrors.BaseError
	switch {
	case status == http.StatusUnauthorized:
		base = domainerrors.ErrInvalidCredentials
	case status == http.StatusConflict:
		base = domainerrors.ErrEmailExists
	case status == http.StatusNotFound:
		base = domainerrors.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		base = domainerrors.ErrValidationFailed
	case status >= http.StatusInternalServerError:
		base = domainerrors.ErrServer
	default:
		base = domainerrors.NewBaseError(status, "HTTP_ERROR", "An unknown error occurred!", "")
	}

	if message == "" {
		message = base.Message()
	}

	// Rebuild on the actual status so a 502 is not reported as a 500.
	return domainerrors.NewBaseError(status, base.ErrorCode(), message, "")
}
