package types

import wire "github.com/DoyleJ11/ball-contest-support/pkg/types"

type ClientMessage struct {
	Type        string            `json:"type"` // "Observe" | "SetEnabled"
	Observation *wire.Observation `json:"observation,omitempty"`
	Enabled     *bool             `json:"enabled,omitempty"`
}

type ServerMessage struct {
	Type     string         `json:"type"` // "Snapshot" | "Error"
	Snapshot *wire.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func ErrorMessage(msg string) ServerMessage {
	return ServerMessage{Type: "Error", Error: msg}
}
