package specs

// pitchStep maps a maximum diagonal (inches, inclusive) to a pixel pitch in millimetres.
type pitchStep struct {
	maxInches int
	pitch     string
}

// pitchTables holds the pitch ladder per resolution. The last step of each ladder has no
// upper bound and also catches sizes without a leading number.
var pitchTables = map[string]struct {
	steps    []pitchStep
	fallback string
}{
	"4K": {
		steps: []pitchStep{
			{55, "0.315"},
			{65, "0.372"},
			{75, "0.429"},
			{86, "0.493"},
			{98, "0.561"},
		},
		fallback: "0.630",
	},
	"FHD": {
		steps:    []pitchStep{{55, "0.630"}},
		fallback: "0.744",
	},
}

const defaultPitch = "0.315"

type dimensions struct{ width, height int }

var resolutionDimensions = map[string]dimensions{
	"4K":  {3840, 2160},
	"FHD": {1920, 1080},
	"2K":  {2560, 1440},
	"8K":  {7680, 4320},
}

var (
	specialUltraWide = dimensions{2560, 1080}
	specialDefault   = dimensions{1920, 1080}
	unknownDefault   = resolutionDimensions["4K"]
)

const (
	defaultBrightness = "400 nits"
	defaultContrast   = "1,200:1"
	notAvailable      = "N/A"

	featureHighRefresh = "120Hz refresh rate"
	featureAntiGlare   = "Anti-glare glass"
	featureWiFi6       = "Wi-Fi 6"
)

// ScenarioFallback is used for applications without their own scenario list.
const ScenarioFallback = "Meeting Room"

var scenarios = map[string][]string{
	"Meeting Room": {
		"Video conferencing with remote teams",
		"Computer screen mirroring and presentations",
		"Interactive whiteboard brainstorming sessions",
		"Multi-participant collaborative annotation",
		"Wireless content sharing from any device",
	},
	"Education": {
		"Interactive classroom teaching",
		"Student-teacher collaboration",
		"Digital textbook display",
		"Multi-student touch interaction",
		"Eye-protection for extended use",
	},
	"Preschool": {
		"Child-friendly interactive learning",
		"Group activity games",
		"Creative drawing and painting",
		"Educational app experiences",
		"Safe and durable for young learners",
	},
	"Digital Signage": {
		"Retail advertising and promotions",
		"Wayfinding and directory displays",
		"Queue management systems",
		"Corporate communication boards",
		"Menu boards for hospitality",
	},
	"Transparent Display": {
		"Luxury retail product showcases",
		"Museum and gallery exhibits",
		"Automotive showroom displays",
		"High-end real estate presentations",
		"Interactive window displays",
	},
	"Video Wall": {
		"Control room monitoring",
		"Large venue presentations",
		"Event and concert backdrops",
		"Corporate lobby displays",
		"Multi-source content display",
	},
	"Monitor": {
		"Video conferencing rooms",
		"Computer screen mirroring",
		"Presentation displays",
		"Digital signage applications",
		"Multi-input source switching",
	},
	"Professional Meeting": {
		"High-security enterprise meetings",
		"Dual-system presentations",
		"Cross-platform collaboration",
		"Government and military briefings",
		"Financial trading rooms",
	},
	"Mobile Display": {
		"Pop-up retail displays",
		"Trade show presentations",
		"Mobile training sessions",
		"Outdoor events and exhibitions",
		"Portable meeting setups",
	},
}
