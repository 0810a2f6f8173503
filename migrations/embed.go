// Package migrations esquema de la base de datos, embebido en el binario.
package migrations

import "embed"

// FS archivos NNNNNN_nombre.{up,down}.sql en formato golang-migrate.
//
//go:embed *.sql
var FS embed.FS
