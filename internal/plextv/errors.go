package plextv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNoTokenSource indicates that no token source was provided,
	// i.e. no credentials could be resolved to build one.
	ErrNoTokenSource = errors.New("no token source provided")
	// ErrUnauthorized indicates that plex.tv could not authenticate the user.
	ErrUnauthorized = errors.New("user could not be authenticated")
	// ErrTooManyRequests indicates that the plex.tv API rate limit has been reached.
	ErrTooManyRequests = errors.New("too many requests")
)

var _ error = &PlexError{}

// PlexError wraps an error response from plex.tv, preserving the HTTP status and response body.
type PlexError struct {
	errors     error
	Status     string
	Body       []byte
	StatusCode int
}

func (p *PlexError) Error() string {
	txt := p.Status
	if p.errors != nil {
		txt = p.errors.Error()
	}
	return "plex: " + txt
}

func (p *PlexError) Unwrap() error {
	return p.errors
}

var plexErrors = map[int]error{
	1001: ErrUnauthorized,
	1003: ErrTooManyRequests,
}

// ParsePlexError parses the errors text returned by plex.tv and returns a PlexError.
func ParsePlexError(r *http.Response) error {
	var errorBody struct {
		Error  string `json:"error"`
		Errors []struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
			Status  int    `json:"status"`
		} `json:"errors"`
	}

	var buf bytes.Buffer
	if r.Body != nil {
		_ = json.NewDecoder(io.TeeReader(r.Body, &buf)).Decode(&errorBody)
	}

	e := PlexError{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		Body:       buf.Bytes(),
	}

	switch {
	case errorBody.Error != "":
		// single-message error
		e.errors = errors.New(errorBody.Error)
	case len(errorBody.Errors) > 0:
		// multi-message error
		errs := make([]error, len(errorBody.Errors))
		for i, entry := range errorBody.Errors {
			var ok bool
			if errs[i], ok = plexErrors[entry.Code]; !ok {
				errs[i] = fmt.Errorf("%d - %s", entry.Code, entry.Message)
			}
		}
		e.errors = errors.Join(errs...)
	}
	return &e
}
