// Package specs derives the technical specification sheet and usage scenarios shown on a
// product detail page from the handful of fields stored in the catalog.
package specs

import (
	"fmt"
	"strings"

	"touchsync.io/touchsync-web/internal/catalog"
	"touchsync.io/touchsync-web/internal/format"
)

// Row is one label/value line of a spec card.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled group of rows. Icon names the glyph drawn next to the title.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Rows  []Row  `json:"rows"`
}

// Sheet is the full derived specification for one product.
type Sheet struct {
	Display     Section `json:"display"`
	Performance Section `json:"performance"`
	Touch       Section `json:"touch"`
	System      Section `json:"system"`
}

// Sections returns the four sections in display order.
func (s Sheet) Sections() []Section {
	return []Section{s.Display, s.Performance, s.Touch, s.System}
}

// Derive computes the spec sheet for p. It is a pure function of p.
func Derive(p catalog.Product) Sheet {
	capacitive := p.TouchType == "Capacitive"
	oled := strings.Contains(p.Series, "OLED")
	antiGlare := p.HasFeature(featureAntiGlare)
	android := strings.Contains(p.System, "Android")

	return Sheet{
		Display: Section{
			Key:   "display",
			Title: "Display Specifications",
			Icon:  "monitor",
			Rows: []Row{
				{"Diagonal Size", p.Size},
				{"Panel Type", pick(capacitive, "IPS (Full Lamination)", "IPS")},
				{"Resolution", ResolutionValue(p.Resolution, p.AspectRatio)},
				{"Pixel Pitch (HxV)", PixelPitch(p.Resolution, p.Size)},
				{"Brightness (Typ)", Brightness(p.Brightness)},
				{"Contrast Ratio", orDefault(p.ContrastRatio, defaultContrast)},
			},
		},
		Performance: Section{
			Key:   "performance",
			Title: "Performance",
			Icon:  "zap",
			Rows: []Row{
				{"Viewing Angle (H/V)", "178°/178°"},
				{"Response Time", pick(oled, "1ms", "8ms")},
				{"Colour Gamut", pick(oled, "99% DCI-P3", "72% NTSC")},
				{"Refresh Rate", pick(p.HasFeature(featureHighRefresh), "120 Hz", "60 Hz")},
				{"H-Scanning Frequency", "135 kHz"},
				{"V-Scanning Frequency", "60 Hz"},
			},
		},
		Touch: Section{
			Key:   "touch",
			Title: "Touch Technology",
			Icon:  "layers",
			Rows: []Row{
				{"Touch Type", orDefault(p.TouchType, notAvailable)},
				{"Touch Points", orDefault(p.TouchPoints, notAvailable)},
				{"Glass Type", pick(antiGlare, "Anti-glare Tempered Glass", "4mm Tempered Glass")},
				{"Glass Haze", pick(antiGlare, "25%", "3%")},
				{"Touch Accuracy", "±1mm"},
				{"Writing Delay", "<35ms"},
			},
		},
		System: Section{
			Key:   "system",
			Title: "System & Connectivity",
			Icon:  "cpu",
			Rows: []Row{
				{"Operating System", orDefault(p.System, notAvailable)},
				{"Processor", pick(android, "Quad-Core A55", notAvailable)},
				{"RAM", pick(android, "4GB DDR4", notAvailable)},
				{"Storage", pick(android, "32GB eMMC", notAvailable)},
				{"Wi-Fi", pick(p.HasFeature(featureWiFi6), "Wi-Fi 6 (802.11ax)", "Wi-Fi 5 (802.11ac)")},
				{"Bluetooth", "Bluetooth 5.0"},
			},
		},
	}
}

// PixelPitch returns the pitch string for a resolution and size label, e.g. "0.372 x 0.372 mm".
// Only the leading integer of size is considered.
func PixelPitch(resolution, size string) string {
	v := defaultPitch
	if table, ok := pitchTables[resolution]; ok {
		v = table.fallback
		if inches, ok := leadingInt(size); ok {
			for _, step := range table.steps {
				if inches <= step.maxInches {
					v = step.pitch
					break
				}
			}
		}
	}
	return fmt.Sprintf("%s x %s mm", v, v)
}

// ResolutionValue returns the native pixel dimensions, e.g. "3,840 x 2,160".
func ResolutionValue(resolution, aspectRatio string) string {
	d, ok := resolutionDimensions[resolution]
	switch {
	case ok:
	case resolution == "Special" && aspectRatio == "21:9":
		d = specialUltraWide
	case resolution == "Special":
		d = specialDefault
	default:
		d = unknownDefault
	}
	return format.Thousands(d.width) + " x " + format.Thousands(d.height)
}

// Brightness takes the first run of digits in raw and appends " nits".
func Brightness(raw string) string {
	start := strings.IndexFunc(raw, isDigit)
	if start < 0 {
		return defaultBrightness
	}
	end := start
	for end < len(raw) && isDigit(rune(raw[end])) {
		end++
	}
	return raw[start:end] + " nits"
}

// Scenarios returns the five usage scenarios for p's application category.
func Scenarios(p catalog.Product) []string {
	list, ok := scenarios[p.Application]
	if !ok {
		list = scenarios[ScenarioFallback]
	}
	return append([]string(nil), list...)
}

// leadingInt parses an optionally signed run of digits at the start of s, after leading
// whitespace. Trailing text such as the inch mark is ignored.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && isDigit(rune(s[digits])) {
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
