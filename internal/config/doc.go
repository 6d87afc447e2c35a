// Package config provides configuration for archive-downloader.
//
// There is no configuration file and no environment lookup: the CLI fills a
// Settings value from its flags on top of DefaultSettings.
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	settings.BaseURL = "https://archive.example/videos"
//	settings.Folder = "./videos"
//	settings.Threads = 4
//	if err := settings.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Page URL and destination folder
//   - Link extension filter
//   - Worker count
//   - Retry budget and delay
//   - Timeouts and chunk size
package config
