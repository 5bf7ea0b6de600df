// Package config loads dynotable's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves settings in this order, later steps winning:
//
//  1. Built-in defaults (DynamoDB source, every gesture allowed)
//  2. The TOML file at the given path, or ~/.config/dynotable/config.toml
//  3. DYNOTABLE_* environment variables, including any set by a .env file
//     in the working directory
//
// Command-line flags are applied on top by the caller. A missing config file
// is not an error.
//
// # TOML Format
//
//	source = "sqlite"              # or "dynamodb" (default)
//	table = "Dinosaurs"
//	auto_refresh_seconds = 30      # 0 disables the timer
//	log_file = "~/.local/share/dynotable/dynotable.log"
//
//	[dynamodb]
//	region = "eu-west-1"
//	endpoint = "http://localhost:8000"
//	profile = "dev"
//
//	[sqlite]
//	path = "~/data/dinos.db"
//
//	[draw]
//	header_height = 1
//	min_row_height = 1
//	max_row_height = 3
//	allow_hide = true
//	allow_resize = true
//	allow_refresh = true
//	allow_resort = true
//	show_menu = true
//	colors = "Kanagawa"
//	min_width = 20
//
// # Environment
//
// DYNOTABLE_SOURCE, DYNOTABLE_TABLE, DYNOTABLE_AUTO_REFRESH_SECONDS,
// DYNOTABLE_LOG_FILE, DYNOTABLE_DYNAMODB_REGION, DYNOTABLE_DYNAMODB_ENDPOINT,
// DYNOTABLE_DYNAMODB_PROFILE, DYNOTABLE_SQLITE_PATH and DYNOTABLE_COLORS
// override the matching file settings. Blank values are ignored.
//
// Tilde expansion is applied to the config path, log_file and the sqlite
// path (":memory:" is passed through).
package config
