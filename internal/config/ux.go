package config

import "fmt"

// Theme names accepted by ux.theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UXConfig holds terminal UI preferences.
type UXConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

func (c *UXConfig) validate() error {
	switch c.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
		return nil
	}
	return fmt.Errorf("invalid ux.theme %q (want auto, light or dark)", c.Theme)
}
