// Package openapi embeds the OpenAPI description of the campmatch HTTP API.
// The server publishes it at GET /openapi.yaml.
package openapi

import _ "embed"

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var Document []byte
