package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

type contextKeyClientMeta struct{}

// ContextKeyClientMeta is exported for use in handlers and tests.
var ContextKeyClientMeta = contextKeyClientMeta{}

// ClientMeta summarizes the calling client for audit enrichment.
type ClientMeta struct {
	RemoteAddr string
	Browser    string
	OS         string
}

// GetClientMeta retrieves client metadata from the context.
func GetClientMeta(ctx context.Context) ClientMeta {
	if meta, ok := ctx.Value(ContextKeyClientMeta).(ClientMeta); ok {
		return meta
	}
	return ClientMeta{}
}

// WithClientMeta injects client metadata into a context. Useful for service
// unit tests that don't run the full HTTP middleware chain.
func WithClientMeta(ctx context.Context, meta ClientMeta) context.Context {
	return context.WithValue(ctx, ContextKeyClientMeta, meta)
}

// ClientMetadata parses the User-Agent once per request so audit events can
// record which tool performed an ingestion.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		browser, version := ua.Browser()
		meta := ClientMeta{
			RemoteAddr: r.RemoteAddr,
			Browser:    browser + " " + version,
			OS:         ua.OS(),
		}
		next.ServeHTTP(w, r.WithContext(WithClientMeta(r.Context(), meta)))
	})
}
