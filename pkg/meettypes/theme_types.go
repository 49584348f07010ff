package meettypes

// PaletteFile is the top-level structure of the embedded palette YAML.
type PaletteFile struct {
	Palettes []PaletteConfig `yaml:"palettes"`
}

// PaletteConfig describes one UI color palette as loaded from YAML.
// Gradient lists the background gradient stops in display order.
type PaletteConfig struct {
	Name            string   `yaml:"name"`
	Gradient        []string `yaml:"gradient"`
	Text            string   `yaml:"text"`
	Accent          string   `yaml:"accent"`
	UserBubble      string   `yaml:"user_bubble"`
	AssistantBubble string   `yaml:"assistant_bubble"`
}
