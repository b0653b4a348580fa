package data

import (
	"embed"
)

// Assets holds the built-in definition files.
//
//go:embed char.def
var Assets embed.FS
