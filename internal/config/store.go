package config

import "strings"

// StoreConfig selects the player store backend.
type StoreConfig struct {
	Backend     string
	DatabaseURL string
}

// NotifyConfig enables cross-instance change fan-out when URL is set.
type NotifyConfig struct {
	URL     string
	Subject string
}

// Enabled reports whether a NATS server is configured.
func (n NotifyConfig) Enabled() bool {
	return n.URL != ""
}

func loadStore() StoreConfig {
	return StoreConfig{
		Backend:     strings.ToLower(envOrDefault(envStoreBackend, defaultStoreBackend)),
		DatabaseURL: envOrDefault(envDatabaseURL, ""),
	}
}

func loadNotify() NotifyConfig {
	return NotifyConfig{
		URL:     envOrDefault(envNatsURL, ""),
		Subject: envOrDefault(envNatsSubject, defaultNatsSubject),
	}
}
