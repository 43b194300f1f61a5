// Package config loads runtime configuration for the gophkms CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   address:port of the key broker
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds)
//
// The JSON loader uses timex.Duration, so intervals may be strings like
// "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
