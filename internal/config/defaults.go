package config

const (
	defaultConfigPath    = "~/.config/seekr/config.toml"
	defaultProjectConfig = "seekr.toml"
	defaultReportDir     = "~/.local/share/seekr/reports"
	defaultLogDir        = "~/.local/share/seekr/logs"
	defaultThreshold     = 80
	defaultWorkers       = 1
	defaultLibraryFormat = LibraryFormatAuto
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultLogRetention  = 30
)

var defaultScanExtensions = []string{
	"mp3", "flac", "wav", "m4a", "aac", "ogg", "opus", "aiff", "aif", "alac", "wma",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ReportDir: defaultReportDir,
			LogDir:    defaultLogDir,
		},
		Matching: Matching{
			Threshold: defaultThreshold,
			Workers:   defaultWorkers,
		},
		Library: Library{
			Format: defaultLibraryFormat,
		},
		Scan: Scan{
			Extensions: append([]string(nil), defaultScanExtensions...),
			ReadTags:   true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
	}
}
