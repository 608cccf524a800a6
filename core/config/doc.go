// Package config provides configuration management for the country API.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: listen host, port and shutdown timeout
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the snapshot bucket
//   - Log: Logging level and format
//   - Sources: upstream endpoints, timeout, user agent and rate limit
//   - Refresh: cron schedule and run-on-start flag
//   - Snapshot: object name and top-N size
//
// Every leaf field carries a `default` tag; SECTION_KEY environment
// variables override it (e.g. DATABASE_DRIVER=sqlite).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
