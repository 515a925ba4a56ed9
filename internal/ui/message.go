package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/liftlog/internal/tasks"
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
	MsgFlowDone MsgKind = iota
	MsgVideoDetected
)

type flowDone struct {
	flow  tasks.FlowID
	event tasks.Event
}

// flowDoneMsg is the constructor for [MsgFlowDone]
func flowDoneMsg(flow tasks.FlowID, ev tasks.Event) Msg {
	return Msg{kind: MsgFlowDone, data: flowDone{flow: flow, event: ev}}
}

// videoDetectedMsg is the constructor for [MsgVideoDetected]
func videoDetectedMsg(ev tasks.SelectVideo) Msg {
	return Msg{kind: MsgVideoDetected, data: ev}
}
