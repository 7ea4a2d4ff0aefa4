package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

type ContextKey string

const FlashKey ContextKey = "flash"

const (
	flashKindSessionKey    = "flash_kind"
	flashMessageSessionKey = "flash_message"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashInfo    FlashKind = "info"
	FlashWarning FlashKind = "warning"
	FlashDanger  FlashKind = "danger"
)

// Flash is a one-shot message shown on the next page the user loads.
type Flash struct {
	Kind    FlashKind
	Message string
}

type Flasher struct {
	sessionManager *scs.SessionManager
}

func NewFlasher(sessionManager *scs.SessionManager) *Flasher {
	return &Flasher{sessionManager: sessionManager}
}

func (f *Flasher) Put(ctx context.Context, kind FlashKind, message string) {
	f.sessionManager.Put(ctx, flashKindSessionKey, string(kind))
	f.sessionManager.Put(ctx, flashMessageSessionKey, message)
}

// LoadFlash moves a pending flash from the session into the request context
// of GET requests. Must run inside sessionManager.LoadAndSave.
func LoadFlash(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			message := sessionManager.PopString(r.Context(), flashMessageSessionKey)
			kind := sessionManager.PopString(r.Context(), flashKindSessionKey)
			if message == "" {
				next.ServeHTTP(w, r)
				return
			}

			if kind == "" {
				kind = string(FlashInfo)
			}
			ctx := context.WithValue(r.Context(), FlashKey, &Flash{Kind: FlashKind(kind), Message: message})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetFlash(ctx context.Context) *Flash {
	val := ctx.Value(FlashKey)
	if val == nil {
		return nil
	}
	flash, ok := val.(*Flash)
	if !ok {
		return nil
	}
	return flash
}
