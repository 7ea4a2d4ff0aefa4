package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, r.ParseForm())
	return r
}

func TestFormInt(t *testing.T) {
	r := newFormRequest(t, url.Values{"points": {" 25 "}, "bad": {"treinta"}})

	n, err := FormInt(r, "points", 0)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	n, err = FormInt(r, "missing", 100)
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	_, err = FormInt(r, "bad", 0)
	assert.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestFormOptionalInt(t *testing.T) {
	r := newFormRequest(t, url.Values{"target": {"0"}, "blank": {"  "}, "bad": {"cien"}})

	n, err := FormOptionalInt(r, "target")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 0, *n)

	n, err = FormOptionalInt(r, "blank")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = FormOptionalInt(r, "bad")
	assert.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestUserMessage(t *testing.T) {
	driverErr := errors.New("UNIQUE constraint failed: players.name")
	wrapped := fmt.Errorf("create player: %w (%v)", league.Conflictf("a player named %q already exists", "Ana"), driverErr)

	assert.Equal(t, `A player named "Ana" already exists`, UserMessage(wrapped))
	assert.ErrorIs(t, wrapped, league.ErrConflict)

	assert.Equal(t, "The match is already finished.", UserMessage(fmt.Errorf("record round: %w", league.ErrMatchAlreadyFinished)))
	assert.Equal(t, "That record no longer exists.", UserMessage(fmt.Errorf("get match: %w", league.ErrNotFound)))
	assert.Equal(t, "Points cannot be negative (-1, 0)", UserMessage(league.Invalidf("points cannot be negative (%d, %d)", -1, 0)))
	assert.NotContains(t, UserMessage(fmt.Errorf("x: %w: %v", league.ErrConflict, driverErr)), "UNIQUE")
}

func TestFormUUID(t *testing.T) {
	id := uuid.New()
	r := newFormRequest(t, url.Values{"team": {id.String()}, "bad": {"42"}})

	parsed, err := FormUUID(r, "team")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	parsed, err = FormUUID(r, "missing")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, parsed)

	_, err = FormUUID(r, "bad")
	assert.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestError(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{err: league.ErrNotFound, status: http.StatusNotFound},
		{err: league.ErrInvalidInput, status: http.StatusBadRequest},
		{err: league.ErrConflict, status: http.StatusConflict},
		{err: league.ErrMatchAlreadyFinished, status: http.StatusConflict},
		{err: assert.AnError, status: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		w := httptest.NewRecorder()
		Error(w, "failed", tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Equal(t, tc.status != http.StatusInternalServerError, IsUserError(tc.err))
	}
}
