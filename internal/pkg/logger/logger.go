package logger

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
)

// New returns a JSON slog logger whose attribute names follow the ECS schema
// used by the request logger, so service logs and access logs line up.
func New(w io.Writer, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "garage-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}
