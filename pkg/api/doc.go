// Package api defines the transport-agnostic request and response shapes
// for the quotevault service, together with the error taxonomy shared by
// the account service and the HTTP adapter.
//
// Every operation resolves to a response struct carrying a Status of "ok"
// or "error". The structs replace the loose {status, error} object of the
// original API with typed variants while keeping the wire format identical.
package api
