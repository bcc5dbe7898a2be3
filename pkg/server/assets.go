package server

import "embed"

//go:embed assets/index.html
var assets embed.FS
