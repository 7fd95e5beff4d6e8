// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Several named servers may be listed; one is selected by name at startup.
package config
