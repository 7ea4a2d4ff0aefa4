package httputil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, league.Invalidf("invalid %s", name)
	}
	return id, nil
}

// FormUUID parses an optional id field; an empty field yields uuid.Nil.
func FormUUID(r *http.Request, field string) (uuid.UUID, error) {
	value := strings.TrimSpace(r.Form.Get(field))
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, league.Invalidf("invalid %s", field)
	}
	return id, nil
}

// FormOptionalInt parses an integer field, returning nil when it is empty.
func FormOptionalInt(r *http.Request, field string) (*int, error) {
	if strings.TrimSpace(r.Form.Get(field)) == "" {
		return nil, nil
	}
	n, err := FormInt(r, field, 0)
	if err != nil {
		return nil, err
	}
	return utils.Ptr(n), nil
}

// FormInt parses an integer field, using fallback when the field is empty.
func FormInt(r *http.Request, field string, fallback int) (int, error) {
	value := strings.TrimSpace(r.Form.Get(field))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, league.Invalidf("%s must be a whole number", field)
	}
	return n, nil
}
