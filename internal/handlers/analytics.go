package handlers

import "touchsync.io/touchsync-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	Debug            bool
}

// Enabled reports whether any tag should be rendered.
func (a Analytics) Enabled() bool {
	return a.GA4MeasurementID != "" || a.GTMContainerID != ""
}

// AnalyticsFromConfig maps loaded configuration onto the template view.
func AnalyticsFromConfig(cfg config.AnalyticsConfig) Analytics {
	return Analytics{
		GA4MeasurementID: cfg.GA4MeasurementID,
		GTMContainerID:   cfg.GTMContainerID,
		Debug:            cfg.Debug,
	}
}
