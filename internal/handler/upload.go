package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-metrics/internal/stats"
)

// errNoUpload is returned when a request carries neither a "file" form
// part nor a CSV body.
var errNoUpload = errors.New("no CSV uploaded")

// readCSVUpload accepts a multipart form with a "file" field or a raw
// text/csv body and parses it into records.
func readCSVUpload(c echo.Context) ([]stats.Record, error) {
	req := c.Request()
	var src io.Reader

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errNoUpload
		}
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	} else {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, errNoUpload
		}
		src = bytes.NewReader(body)
	}
	return stats.ParseCSV(src)
}

// uploadError maps a readCSVUpload failure to a 400 response.
func uploadError(c echo.Context, err error) error {
	msg := "Could not read CSV"
	switch {
	case errors.Is(err, errNoUpload):
		msg = "Upload a CSV file"
	case errors.Is(err, stats.ErrEmptyCSV):
		msg = "CSV has no header row"
	}
	var tooLarge *http.MaxBytesError
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) || errors.As(err, &tooLarge) {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "CSV is too large"})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
