package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goerror"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// GetParam reads a path parameter stored by httprouter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt returns 0 for a missing value.
func (r *Request) GetQueryInt(key string) (int, error) {
	v := r.GetQuery(key)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return n, nil
}

// GetQueryTime returns the zero time for a missing value.
func (r *Request) GetQueryTime(key, layout string) (time.Time, error) {
	v := r.GetQuery(key)
	if v == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(layout, v)
	if err != nil {
		return time.Time{}, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return t, nil
}

// DecodeBody decodes exactly one JSON value into dst, rejecting unknown fields.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
