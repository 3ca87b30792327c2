package core

import (
	"fmt"
	"time"
)

// RuntimeConfig contains configuration passed to hosts at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// RoundState is the lifecycle state of a round.
type RoundState int

const (
	RoundIdle RoundState = iota
	RoundRunning
	RoundEnded
)

// String returns the lowercase state name.
func (s RoundState) String() string {
	switch s {
	case RoundIdle:
		return "idle"
	case RoundRunning:
		return "running"
	case RoundEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name so snapshots stay readable on the wire.
func (s RoundState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *RoundState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = RoundIdle
	case "running":
		*s = RoundRunning
	case "ended":
		*s = RoundEnded
	default:
		return fmt.Errorf("core: unknown round state %q", string(b))
	}
	return nil
}

// Outcome is what a single tick reports back to the round runner.
type Outcome struct {
	Ended   bool // Round terminated this tick
	Victory bool // Only meaningful when Ended
}

// Tick carries everything a game may read during one simulation step.
type Tick struct {
	N       int           // 1-based tick index within the round
	Keys    KeyReader     // Live input state, read-only
	Elapsed time.Duration // Wall-clock time since the round started
}

// Telemetry is the per-game portion of a snapshot.
type Telemetry struct {
	Score        int
	TokensEarned float64
	Level        int // Maze only
	TimeElapsed  int // Maze only, whole seconds
}

// Snapshot is the cheap, copyable view a host polls after every tick.
type Snapshot struct {
	GameID       string     `json:"game_id"`
	State        RoundState `json:"round_state"`
	Victory      bool       `json:"victory"`
	Score        int        `json:"score"`
	HighScore    int        `json:"high_score"`
	TokensEarned float64    `json:"tokens_earned"`
	Level        int        `json:"level,omitempty"`
	TimeElapsed  int        `json:"time_elapsed,omitempty"`
	Ticks        int        `json:"ticks"`
}
