// Package web hosts the arcade engines over WebSocket. Each connection owns
// one round runner; the browser sends key transitions and lifecycle
// commands and receives a snapshot after every tick.
package web

import (
	"strings"

	"github.com/vovakirdan/stake-arcade/internal/core"
)

// Client message types.
const (
	MsgKey   = "key"
	MsgStart = "start"
	MsgStop  = "stop"
)

// Server message types.
const (
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// ClientMessage is a command sent by the browser.
type ClientMessage struct {
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	Pressed bool   `json:"pressed,omitempty"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type     string         `json:"type"`
	Snapshot *core.Snapshot `json:"snapshot,omitempty"`
	Screen   string         `json:"screen,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// browserKeys maps KeyboardEvent.key values to engine keys.
var browserKeys = map[string]core.Key{
	"arrowleft":  core.KeyLeft,
	"a":          core.KeyLeft,
	"arrowright": core.KeyRight,
	"d":          core.KeyRight,
	"arrowup":    core.KeyUp,
	"w":          core.KeyUp,
	"arrowdown":  core.KeyDown,
	"s":          core.KeyDown,
	" ":          core.KeyAbility,
	"space":      core.KeyAbility,
	"shift":      core.KeyAbility,
}

// parseKey accepts engine key names ("left", "ability") as well as browser
// KeyboardEvent.key values ("ArrowLeft", "a", "Shift").
func parseKey(name string) core.Key {
	if k := core.ParseKey(name); k != core.KeyNone && k != core.KeyConfirm {
		return k
	}
	if k, ok := browserKeys[strings.ToLower(name)]; ok {
		return k
	}
	return core.KeyNone
}
