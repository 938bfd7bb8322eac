// Package migrations embebe el esquema SQL versionado con goose.
package migrations

import "embed"

// FS archivos NNNNN_*.sql con bloques "-- +goose Up" / "-- +goose Down".
//
//go:embed *.sql
var FS embed.FS
