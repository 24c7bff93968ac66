// Package config persists the scanner registry and scan preferences.
//
// The registry is a single YAML file in the platform config directory. It
// stores the scanners seen by discovery (keyed by name, overwritten on
// rediscovery so stale addresses heal themselves), default scan preferences,
// and the discovery helper settings. Saves are atomic: the file is written to
// a temporary path and renamed into place.
package config
