package http

import (
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
)

// pagination reads page and limit. Bad values fall back to the filter defaults.
func pagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}

func optionalString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// optionalDate parses a YYYY-MM-DD query parameter and records a field error when it is malformed.
func optionalDate(r *http.Request, key string, errs *validator.ValidationErrors) *civil.Date {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	d, ok := validator.ParseCivilDate(v)
	if !ok {
		errs.Add(key, key+" must be YYYY-MM-DD")
		return nil
	}
	return &d
}

func exportFilename(prefix, ext string, from, to *civil.Date) string {
	name := prefix
	if from != nil {
		name += "_" + from.String()
	}
	if to != nil {
		name += "_" + to.String()
	}
	return name + ext
}
