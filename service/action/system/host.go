package system

// Host represents a target system commands run on
type Host struct {
	URL         string `json:"url,omitempty" description:"host URL, e.g. bash://localhost/ or ssh://myhost:22"`
	Credentials string `json:"credentials,omitempty" description:"secret name or URL with SSH credentials"`
}

// IsLocal returns true when the host runs commands on the local machine
func (h *Host) IsLocal() bool {
	return h == nil || h.URL == "" || h.URL == "bash://localhost/"
}
