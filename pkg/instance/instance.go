package instance

import "os"

// GetID returns the identifier of this process for log correlation.
// Platform-assigned names win over the hostname.
func GetID() string {
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
