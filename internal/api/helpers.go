package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/samcharles93/gbsav/pkg/sav"
)

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

func writeBinary(c *echo.Context, filename string, data []byte) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMEOctetStream)
	w.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return writeJSON(c, status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

func writeBadRequest(c *echo.Context, msg, param string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, param, "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "", "")
}

// writeEngineError reports err using the status its kind maps to.
func writeEngineError(c *echo.Context, err error) error {
	ae := classify(err)
	return writeError(c, ae.status, ae.body.Type, err.Error(), ae.body.Param, ae.body.Code)
}

// readBody reads the request body, failing once more than limit bytes arrive.
func readBody(c *echo.Context, limit int64) ([]byte, error) {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, limit)
	defer func() { _ = body.Close() }()
	return io.ReadAll(body)
}

func songParam(c *echo.Context) (int, error) {
	raw := c.Param("song")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a song number", sav.ErrSongRange, raw)
	}
	if n < 0 || n >= sav.SongCount {
		return 0, fmt.Errorf("%w: %d", sav.ErrSongRange, n)
	}
	return n, nil
}
