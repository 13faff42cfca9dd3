// Package server runs the record server's listeners: the chi HTTP API and
// the gRPC health service. Both stop together when the run context ends.
package server
