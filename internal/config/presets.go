package config

import "sort"

var Presets = map[string]Options{
	"heading": {
		Speed: Int(70), Repeat: Bool(false), Cursor: Bool(false), Color: String("orange"), Interval: Int(1000),
	},
	"subheading": {
		Speed: Int(70), Repeat: Bool(false), Cursor: Bool(true), Color: String("yellowgreen"), Interval: Int(1000),
	},
	"loop": {
		Speed: Int(60), Repeat: Bool(true), Cursor: Bool(true), Color: String("black"), Interval: Int(1000),
	},
	"instant": {
		Speed: Int(100), Repeat: Bool(false), Cursor: Bool(false),
	},
	"slow": {
		Speed: Int(0), Cursor: Bool(true), Interval: Int(2000),
	},
}

// GetPreset returns the named preset and whether it exists.
func GetPreset(name string) (Options, bool) {
	o, ok := Presets[name]
	return o, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
