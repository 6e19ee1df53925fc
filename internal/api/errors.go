package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/gbsav/pkg/sav"
)

var (
	ErrSessionNotFound = errors.New("session_not_found")
	ErrSessionLimit    = errors.New("session_limit")
)

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type apiError struct {
	status int
	body   ErrorBody
}

// classify maps engine errors to an HTTP status and error body.
func classify(err error) apiError {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return apiError{http.StatusRequestEntityTooLarge, ErrorBody{Type: "invalid_request_error", Code: "body_too_large"}}
	case errors.Is(err, ErrSessionNotFound):
		return apiError{http.StatusNotFound, ErrorBody{Type: "not_found_error", Code: "session_not_found"}}
	case errors.Is(err, ErrSessionLimit):
		return apiError{http.StatusServiceUnavailable, ErrorBody{Type: "server_busy_error", Code: "session_limit"}}
	case errors.Is(err, sav.ErrNoFreeSlot):
		return apiError{http.StatusConflict, ErrorBody{Type: "conflict_error", Code: "no_free_slot"}}
	case errors.Is(err, sav.ErrOutOfBlocks):
		return apiError{http.StatusConflict, ErrorBody{Type: "conflict_error", Code: "out_of_blocks"}}
	case errors.Is(err, sav.ErrInvalidSong):
		return apiError{http.StatusUnprocessableEntity, ErrorBody{Type: "invalid_save_error", Code: "invalid_song"}}
	case errors.Is(err, sav.ErrInvalidContainerSize):
		return apiError{http.StatusUnprocessableEntity, ErrorBody{Type: "invalid_save_error", Code: "invalid_container_size"}}
	case errors.Is(err, sav.ErrCorrupt):
		return apiError{http.StatusUnprocessableEntity, ErrorBody{Type: "invalid_save_error", Code: "corrupt"}}
	case errors.Is(err, sav.ErrInvalidProject):
		return apiError{http.StatusBadRequest, ErrorBody{Type: "invalid_request_error", Code: "invalid_project", Param: "body"}}
	case errors.Is(err, sav.ErrSongRange):
		return apiError{http.StatusBadRequest, ErrorBody{Type: "invalid_request_error", Code: "song_out_of_range", Param: "song"}}
	default:
		return apiError{http.StatusInternalServerError, ErrorBody{Type: "server_error"}}
	}
}
