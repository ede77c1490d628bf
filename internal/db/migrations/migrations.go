package migrations

import "embed"

// FS: goose-миграции схемы, встраиваются в бинарник.
//
//go:embed *.sql
var FS embed.FS
