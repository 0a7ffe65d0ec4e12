// Package config provides configuration structures and utilities for imgsentry.
// It defines the scan targets, classification settings, notification addresses,
// and per-operation network timeouts, populated from CLI flags, an optional
// YAML configuration file, and IMGSENTRY_* environment variables.
package config
