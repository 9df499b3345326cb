// Package config defines the tickstack settings file and provides helpers to
// load, validate and save it in YAML format.
//
// The settings cover the control endpoint address, clock frame period,
// wake-lock and speech backends, and logging.
package config
