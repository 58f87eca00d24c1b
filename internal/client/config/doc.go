// Package config loads runtime configuration for the linekeeper admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. The LINEKEEPER_TOKEN environment variable for the access token.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string         address:port of the backend gRPC endpoint
//	-t string         access token returned by "login" or "badge"
//	-timeout duration per-call deadline
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "timeout": "5s"
//	}
//
// Everything after the flags is the command and its arguments.
package config
