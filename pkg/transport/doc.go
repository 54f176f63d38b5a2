// Package transport provides HTTP-level plumbing shared by the quotevault
// adapter: envelope serialization, error-to-status mapping, and middleware
// for recovery, request IDs, logging, and CORS.
package transport
