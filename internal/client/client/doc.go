// Package client is the CLI's transport to the key broker.
//
// GRPCClient wraps the generated-style api.KeyBrokerClient: it dials with
// the JSON codec, keeps the session token returned by ConfirmLogin and
// attaches it as the "sid" header on every later call. Server failures
// come back as the shared sentinels from package common (match them with
// errors.Is); transport failures come back as ErrUnavailable.
package client
