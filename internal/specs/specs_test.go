package specs

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"touchsync.io/touchsync-web/internal/catalog"
)

func TestPixelPitch(t *testing.T) {
	cases := []struct {
		resolution, size, want string
	}{
		{"4K", `55"`, "0.315 x 0.315 mm"},
		{"4K", `65"`, "0.372 x 0.372 mm"},
		{"4K", `75"`, "0.429 x 0.429 mm"},
		{"4K", `86"`, "0.493 x 0.493 mm"},
		{"4K", `98"`, "0.561 x 0.561 mm"},
		{"4K", `110"`, "0.630 x 0.630 mm"},
		{"4K", "Custom", "0.630 x 0.630 mm"},
		{"FHD", `43"`, "0.630 x 0.630 mm"},
		{"FHD", `55"`, "0.630 x 0.630 mm"},
		{"FHD", `65"`, "0.744 x 0.744 mm"},
		{"FHD", "", "0.744 x 0.744 mm"},
		{"8K", `98"`, "0.315 x 0.315 mm"},
		{"Special", `37"`, "0.315 x 0.315 mm"},
	}
	for _, tc := range cases {
		if got := PixelPitch(tc.resolution, tc.size); got != tc.want {
			t.Errorf("PixelPitch(%q, %q) = %q, want %q", tc.resolution, tc.size, got, tc.want)
		}
	}
}

func TestResolutionValue(t *testing.T) {
	cases := []struct {
		resolution, aspect, want string
	}{
		{"4K", "16:9", "3,840 x 2,160"},
		{"FHD", "", "1,920 x 1,080"},
		{"2K", "", "2,560 x 1,440"},
		{"8K", "", "7,680 x 4,320"},
		{"Special", "21:9", "2,560 x 1,080"},
		{"Special", "32:9", "1,920 x 1,080"},
		{"Special", "", "1,920 x 1,080"},
		{"16K", "", "3,840 x 2,160"},
	}
	for _, tc := range cases {
		if got := ResolutionValue(tc.resolution, tc.aspect); got != tc.want {
			t.Errorf("ResolutionValue(%q, %q) = %q, want %q", tc.resolution, tc.aspect, got, tc.want)
		}
	}
}

func TestBrightness(t *testing.T) {
	cases := map[string]string{
		"":             "400 nits",
		"bright":       "400 nits",
		"450 cd/m²":    "450 nits",
		"up to 700nit": "700 nits",
		"1000/500":     "1000 nits",
	}
	for in, want := range cases {
		if got := Brightness(in); got != want {
			t.Errorf("Brightness(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDeriveMeetingRoom4K(t *testing.T) {
	p := catalog.Product{
		ID:          "mr-pro-65",
		Series:      "MR Pro Series",
		Application: "Meeting Room",
		Size:        `65"`,
		Resolution:  "4K",
		TouchType:   "Infrared",
		TouchPoints: "20 points",
		System:      "Android 13",
		Brightness:  "400 cd/m²",
		Features:    []string{"Wi-Fi 6"},
	}
	sheet := Derive(p)

	wantDisplay := []Row{
		{"Diagonal Size", `65"`},
		{"Panel Type", "IPS"},
		{"Resolution", "3,840 x 2,160"},
		{"Pixel Pitch (HxV)", "0.372 x 0.372 mm"},
		{"Brightness (Typ)", "400 nits"},
		{"Contrast Ratio", "1,200:1"},
	}
	if diff := cmp.Diff(wantDisplay, sheet.Display.Rows); diff != "" {
		t.Errorf("display rows mismatch (-want +got):\n%s", diff)
	}

	wantSystem := []Row{
		{"Operating System", "Android 13"},
		{"Processor", "Quad-Core A55"},
		{"RAM", "4GB DDR4"},
		{"Storage", "32GB eMMC"},
		{"Wi-Fi", "Wi-Fi 6 (802.11ax)"},
		{"Bluetooth", "Bluetooth 5.0"},
	}
	if diff := cmp.Diff(wantSystem, sheet.System.Rows); diff != "" {
		t.Errorf("system rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveOLEDCapacitiveNoSystem(t *testing.T) {
	p := catalog.Product{
		Series:      "Transparent OLED Series",
		Application: "Transparent Display",
		Size:        `55"`,
		Resolution:  "FHD",
		TouchType:   "Capacitive",
		Features:    []string{"Anti-glare glass", "120Hz refresh rate"},
	}
	sheet := Derive(p)

	wantPerf := []Row{
		{"Viewing Angle (H/V)", "178°/178°"},
		{"Response Time", "1ms"},
		{"Colour Gamut", "99% DCI-P3"},
		{"Refresh Rate", "120 Hz"},
		{"H-Scanning Frequency", "135 kHz"},
		{"V-Scanning Frequency", "60 Hz"},
	}
	if diff := cmp.Diff(wantPerf, sheet.Performance.Rows); diff != "" {
		t.Errorf("performance rows mismatch (-want +got):\n%s", diff)
	}

	wantTouch := []Row{
		{"Touch Type", "Capacitive"},
		{"Touch Points", "N/A"},
		{"Glass Type", "Anti-glare Tempered Glass"},
		{"Glass Haze", "25%"},
		{"Touch Accuracy", "±1mm"},
		{"Writing Delay", "<35ms"},
	}
	if diff := cmp.Diff(wantTouch, sheet.Touch.Rows); diff != "" {
		t.Errorf("touch rows mismatch (-want +got):\n%s", diff)
	}

	if got := sheet.Display.Rows[1].Value; got != "IPS (Full Lamination)" {
		t.Errorf("panel type = %q", got)
	}
	for _, row := range sheet.System.Rows[:4] {
		if row.Value != "N/A" {
			t.Errorf("%s = %q, want N/A", row.Label, row.Value)
		}
	}
	if got := sheet.System.Rows[4].Value; got != "Wi-Fi 5 (802.11ac)" {
		t.Errorf("wifi = %q", got)
	}
}

func TestSectionsOrderAndShape(t *testing.T) {
	sections := Derive(catalog.Product{}).Sections()
	gotKeys := make([]string, 0, len(sections))
	for _, s := range sections {
		gotKeys = append(gotKeys, s.Key+"/"+s.Icon+"/"+s.Title)
		if len(s.Rows) != 6 {
			t.Errorf("section %s has %d rows, want 6", s.Key, len(s.Rows))
		}
	}
	want := []string{
		"display/monitor/Display Specifications",
		"performance/zap/Performance",
		"touch/layers/Touch Technology",
		"system/cpu/System & Connectivity",
	}
	if diff := cmp.Diff(want, gotKeys); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	for _, p := range c.Products() {
		if diff := cmp.Diff(Derive(p), Derive(p)); diff != "" {
			t.Errorf("%s: derive not deterministic:\n%s", p.ID, diff)
		}
	}
}

func TestScenarios(t *testing.T) {
	preschool := Scenarios(catalog.Product{Application: "Preschool"})
	want := []string{
		"Child-friendly interactive learning",
		"Group activity games",
		"Creative drawing and painting",
		"Educational app experiences",
		"Safe and durable for young learners",
	}
	if diff := cmp.Diff(want, preschool); diff != "" {
		t.Errorf("preschool mismatch (-want +got):\n%s", diff)
	}

	fallback := Scenarios(catalog.Product{Application: "Kiosk"})
	if diff := cmp.Diff(Scenarios(catalog.Product{Application: "Meeting Room"}), fallback); diff != "" {
		t.Errorf("unknown application should fall back to meeting room:\n%s", diff)
	}
	if len(Scenarios(catalog.Product{})) != 5 {
		t.Errorf("expected five fallback scenarios")
	}

	// callers cannot mutate the shared table
	fallback[0] = "mutated"
	if Scenarios(catalog.Product{Application: "Meeting Room"})[0] == "mutated" {
		t.Errorf("scenario table leaked")
	}
}
