// Package migrations contiene los scripts SQL del esquema, aplicados en orden de nombre.
package migrations

import "embed"

// FS archivos *.sql embebidos en el binario.
//
//go:embed *.sql
var FS embed.FS
