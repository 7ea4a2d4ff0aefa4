package views

import (
	"context"
	"fmt"
	"time"

	"github.com/AdamBeresnev/domino-league/internal/middleware"
	"github.com/a-h/templ"
)

func GetFlash(ctx context.Context) *middleware.Flash {
	return middleware.GetFlash(ctx)
}

func urlf(format string, args ...any) templ.SafeURL {
	return templ.URL(fmt.Sprintf(format, args...))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
