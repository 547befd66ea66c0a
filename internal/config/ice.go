package config

import (
	"fmt"
	"strings"

	"github.com/pion/webrtc/v4"
)

// ICEServers assembles the relay-address list clients receive inside
// every establishConnection payload. STUN entries come first; a TURN
// entry is appended only when enabled and fully credentialed.
func ICEServers(cfg *Config) ([]webrtc.ICEServer, error) {
	var servers []webrtc.ICEServer

	stunList := splitCommaSeparated(cfg.StunURLs)
	if len(stunList) > 0 {
		servers = append(servers, webrtc.ICEServer{URLs: stunList})
	}

	if cfg.TurnEnabled {
		turnList := splitCommaSeparated(cfg.TurnURLs)
		if len(turnList) == 0 {
			return nil, fmt.Errorf("turn_enabled is set but turn_urls is empty")
		}
		username := strings.TrimSpace(cfg.TurnUsername)
		credential := strings.TrimSpace(cfg.TurnCredential)
		if username == "" || credential == "" {
			return nil, fmt.Errorf("turn_username and turn_credential must both be set when turn is enabled")
		}
		servers = append(servers, webrtc.ICEServer{
			URLs:       turnList,
			Username:   username,
			Credential: credential,
		})
	}
	return servers, nil
}

func splitCommaSeparated(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
