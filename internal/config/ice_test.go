package config

import "testing"

func TestICEServersDefault(t *testing.T) {
	cfg := &Config{StunURLs: "stun:stun.l.google.com:19302"}
	servers, err := ICEServers(cfg)
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(servers) != 1 {
		t.Fatalf("got %d servers, want 1", len(servers))
	}
	if servers[0].URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("urls=%v", servers[0].URLs)
	}
}

func TestICEServersWithTURN(t *testing.T) {
	cfg := &Config{
		StunURLs:       "stun:stun.l.google.com:19302",
		TurnEnabled:    true,
		TurnURLs:       "turn:turn.example.com:3478, turn:turn2.example.com:3478",
		TurnUsername:   "user",
		TurnCredential: "pass",
	}
	servers, err := ICEServers(cfg)
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("got %d servers, want stun+turn", len(servers))
	}
	turn := servers[1]
	if len(turn.URLs) != 2 {
		t.Fatalf("turn urls=%v, want both entries", turn.URLs)
	}
	if turn.Username != "user" || turn.Credential != "pass" {
		t.Fatalf("turn credentials not carried: %+v", turn)
	}
}

func TestICEServersTURNRequiresCredentials(t *testing.T) {
	cases := []Config{
		{TurnEnabled: true, TurnURLs: "turn:t.example.com:3478"},
		{TurnEnabled: true, TurnURLs: "turn:t.example.com:3478", TurnUsername: "user"},
		{TurnEnabled: true},
	}
	for i, cfg := range cases {
		if _, err := ICEServers(&cfg); err == nil {
			t.Fatalf("case %d: expected error for incomplete turn config", i)
		}
	}
}
