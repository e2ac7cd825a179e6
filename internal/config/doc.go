// Package config provides configuration structures and utilities for the
// scanner. It defines scan limits, detection thresholds, report format
// preferences, and the optional YAML config file that overrides them.
package config
