// Package migrations embeds the goose SQL files for the camp catalog and
// quiz tables. Both `campmatch migrate` and the integration tests read them
// from FS.
package migrations

import "embed"

// FS holds every *.sql migration.
//
//go:embed *.sql
var FS embed.FS
