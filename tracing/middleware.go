package tracing

import (
	"net/http"

	"github.com/riandyrn/otelchi"
)

// Middleware returns an OpenTelemetry middleware for Chi routers.
func Middleware(serviceName string, opts ...otelchi.Option) func(http.Handler) http.Handler {
	return otelchi.Middleware(serviceName, opts...)
}
