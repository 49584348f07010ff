// Package embedded provides access to embedded UI palette configuration files.
package embedded

import _ "embed"

// PaletteData contains the embedded palette YAML data.
//
//go:embed palettes/palettes.yaml
var PaletteData []byte
