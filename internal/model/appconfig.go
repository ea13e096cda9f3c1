package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultMode          Mode    `json:"default_mode"`
	DefaultBinWidth      int     `json:"default_bin_width"`
	DefaultBinHeight     int     `json:"default_bin_height"`
	DefaultSortKey       string  `json:"default_sort_key"`
	DefaultMarginFactor  float64 `json:"default_margin_factor"`
	DefaultMinOffcutArea int     `json:"default_min_offcut_area"`

	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMode:          defaults.Mode,
		DefaultBinWidth:      defaults.BinWidth,
		DefaultBinHeight:     defaults.BinHeight,
		DefaultSortKey:       defaults.SortKey,
		DefaultMarginFactor:  defaults.MarginFactor,
		DefaultMinOffcutArea: defaults.MinOffcutArea,
		RecentJobs:           []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into s.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.Mode = c.DefaultMode
	s.BinWidth = c.DefaultBinWidth
	s.BinHeight = c.DefaultBinHeight
	s.SortKey = c.DefaultSortKey
	s.MarginFactor = c.DefaultMarginFactor
	s.MinOffcutArea = c.DefaultMinOffcutArea
}

// maxRecentJobs caps the recent job list.
const maxRecentJobs = 10

// AddRecentJob moves path to the front of the recent job list.
func (c *AppConfig) AddRecentJob(path string) {
	jobs := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			jobs = append(jobs, p)
		}
	}
	if len(jobs) > maxRecentJobs {
		jobs = jobs[:maxRecentJobs]
	}
	c.RecentJobs = jobs
}
