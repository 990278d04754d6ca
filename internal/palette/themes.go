package palette

import "github.com/san-kum/lavalamp/internal/colorspace"

// Theme names a base colour and the hue rotation applied toward the bottom.
type Theme struct {
	Name     string
	Base     colorspace.RGB
	HueShift float64
}

// Available themes
var (
	ThemeLava = Theme{
		Name:     "lava",
		Base:     colorspace.RGB{R: 0xff, G: 0x50, B: 0x14}, // Molten orange
		HueShift: 60,
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Base:     colorspace.RGB{R: 0xff, G: 0x00, B: 0xff}, // Magenta
		HueShift: 90,
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Base:     colorspace.RGB{R: 0x00, G: 0xff, B: 0x00}, // Green phosphor
		HueShift: 20,
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Base:     colorspace.RGB{R: 0x00, G: 0xa8, B: 0xcc},
		HueShift: -40,
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Base:     colorspace.RGB{R: 0xfe, G: 0xca, B: 0x57},
		HueShift: 50,
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Base:     colorspace.RGB{R: 0xff, G: 0xff, B: 0xff},
		HueShift: 0,
	}

	// All available themes, in cycling order
	Themes = []Theme{
		ThemeLava,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeLava, false
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
