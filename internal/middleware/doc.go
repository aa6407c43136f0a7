// Package middleware provides HTTP middleware for the festival API.
//
// # Available Middleware
//
//   - RequestID: propagates or assigns X-Request-ID
//   - Logger: one slog line per request
//   - Recovery: converts panics into a 500 error envelope
//   - CORS: origin allow list
//   - RateLimit: per-client token buckets (golang.org/x/time/rate)
//   - Compress: gzip responses
//
// Compose them with Chain; the first middleware is the outermost:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	)
package middleware
