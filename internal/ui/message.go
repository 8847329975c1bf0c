package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytlist/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgListingComplete MsgKind = iota
)

// listingCompleteMsg is the constructor for [MsgListingComplete]
func listingCompleteMsg(result models.ListingResult) Msg {
	return Msg{kind: MsgListingComplete, data: result}
}
