package handlers

// Stat is a headline number with its caption.
type Stat struct {
	Value string
	Label string
}

// Tile is an icon, a title and a short description.
type Tile struct {
	Icon        string
	Title       string
	Description string
}

// Milestone is one entry of the company timeline.
type Milestone struct {
	Year  string
	Event string
}

// Region lists countries served in one part of the world.
type Region struct {
	Name      string
	Countries string
}

// HomeContent is the static copy of the landing page.
type HomeContent struct {
	Stats    []Stat
	Features []Tile
}

// BuildHomeContent returns the landing page copy in the translator's language.
func BuildHomeContent(t Translator) HomeContent {
	return HomeContent{
		Stats: []Stat{
			{"50+", t("home.stats.models", "Product Models")},
			{"100+", t("home.stats.countries", "Countries Served")},
			{"10K+", t("home.stats.installations", "Installations")},
			{"24/7", t("home.stats.support", "Support")},
		},
		Features: []Tile{
			{"monitor", t("home.features.uhd.title", "4K UHD Resolution"), t("home.features.uhd.desc", "Crystal-clear visuals with stunning 4K and 8K display options for every application.")},
			{"users", t("home.features.touch.title", "Multi-touch Collaboration"), t("home.features.touch.desc", "Up to 50-point touch enabling multiple users to interact simultaneously.")},
			{"zap", t("home.features.smart.title", "Smart Integration"), t("home.features.smart.desc", "Seamless connectivity with wireless casting, video conferencing, and cloud services.")},
			{"shield", t("home.features.security.title", "Enterprise Security"), t("home.features.security.desc", "Dual-system support with enhanced security features for sensitive environments.")},
		},
	}
}

// AboutContent is the static copy of the about page. The mission body comes from the
// content store.
type AboutContent struct {
	Stats      []Stat
	Values     []Tile
	Milestones []Milestone
	Regions    []Region
}

// BuildAboutContent returns the about page copy in the translator's language.
func BuildAboutContent(t Translator) AboutContent {
	return AboutContent{
		Stats: []Stat{
			{"15+", t("about.stats.years", "Years of Innovation")},
			{"50+", t("about.stats.lines", "Product Lines")},
			{"10M+", t("about.stats.users", "Users Worldwide")},
			{"500+", t("about.stats.partners", "Global Partners")},
		},
		Values: []Tile{
			{"target", t("about.values.innovation.title", "Innovation"), t("about.values.innovation.desc", "Continuously pushing the boundaries of interactive display technology.")},
			{"globe", t("about.values.reach.title", "Global Reach"), t("about.values.reach.desc", "Serving customers across 100+ countries with localized support.")},
			{"award", t("about.values.quality.title", "Quality"), t("about.values.quality.desc", "Premium materials and rigorous testing ensure lasting performance.")},
			{"users", t("about.values.customer.title", "Customer Focus"), t("about.values.customer.desc", "Building solutions that address real-world collaboration needs.")},
		},
		Milestones: []Milestone{
			{"2010", t("about.milestones.2010", "Founded in Shenzhen with a vision for interactive education")},
			{"2014", t("about.milestones.2014", "Launched first 4K interactive display series")},
			{"2017", t("about.milestones.2017", "Expanded to enterprise meeting room solutions")},
			{"2019", t("about.milestones.2019", "Introduced AI-powered camera and audio systems")},
			{"2022", t("about.milestones.2022", "Released next-gen Android 13/14 platforms")},
			{"2024", t("about.milestones.2024", "Achieved 100+ country distribution network")},
		},
		Regions: []Region{
			{t("about.regions.americas", "Americas"), "USA, Canada, Brazil, Mexico"},
			{t("about.regions.europe", "Europe"), "UK, Germany, France, Netherlands"},
			{t("about.regions.apac", "Asia-Pacific"), "China, Japan, Korea, Australia"},
			{t("about.regions.mea", "Middle East & Africa"), "UAE, Saudi Arabia, South Africa"},
		},
	}
}
