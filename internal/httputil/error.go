package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/AdamBeresnev/domino-league/internal/league"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	slog.Warn("conflict", "message", msg, "error", err)
	http.Error(w, msg, http.StatusConflict)
}

// Error picks the response for err from the league error taxonomy, falling
// back to a 500.
func Error(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, league.ErrNotFound):
		NotFound(w, msg, err)
	case errors.Is(err, league.ErrInvalidInput):
		BadRequest(w, msg, err)
	case errors.Is(err, league.ErrConflict), errors.Is(err, league.ErrMatchAlreadyFinished):
		Conflict(w, msg, err)
	default:
		InternalServerError(w, msg, err)
	}
}

// IsUserError reports whether err is caused by the request rather than the
// server, so it can be shown back to the user.
func IsUserError(err error) bool {
	return errors.Is(err, league.ErrNotFound) ||
		errors.Is(err, league.ErrInvalidInput) ||
		errors.Is(err, league.ErrConflict) ||
		errors.Is(err, league.ErrMatchAlreadyFinished)
}

// UserMessage returns the text shown to the user for a request-caused error.
// Driver and wrapping details stay in the logs.
func UserMessage(err error) string {
	var userErr *league.UserError
	if errors.As(err, &userErr) {
		return capitalize(userErr.Msg)
	}

	switch {
	case errors.Is(err, league.ErrNotFound):
		return "That record no longer exists."
	case errors.Is(err, league.ErrMatchAlreadyFinished):
		return "The match is already finished."
	case errors.Is(err, league.ErrConflict):
		return "That change conflicts with existing data."
	case errors.Is(err, league.ErrInvalidInput):
		return "Please check the submitted values."
	}
	return "Something went wrong."
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
