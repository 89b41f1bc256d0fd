// Package mirror implements chunked event-log counting and drift
// comparison between a source chain and its destination mirror.
package mirror

import "errors"

var (
	// ErrInvalidAddress is returned when a contract address string is malformed.
	ErrInvalidAddress = errors.New("mirror: invalid contract address")

	// ErrInvalidSignature is returned when an event signature string is malformed.
	ErrInvalidSignature = errors.New("mirror: invalid event signature")

	// ErrInvalidEndpoint is returned when an RPC URL lacks a usable scheme.
	ErrInvalidEndpoint = errors.New("mirror: invalid rpc endpoint")

	// ErrInvalidRange is returned when a block range has from > to.
	ErrInvalidRange = errors.New("mirror: invalid block range")

	// ErrConnection is returned when an endpoint is unreachable during setup.
	ErrConnection = errors.New("mirror: rpc connection failed")

	// ErrTransport is returned when a log query fails mid-run.
	ErrTransport = errors.New("mirror: log query failed")
)
