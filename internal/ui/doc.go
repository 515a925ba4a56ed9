// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a single screen with four tabs:
//  1. [tasks.DashboardTab] : Lift count, lifts this month, max weight and personal bests
//  2. [tasks.LogLiftTab] : Form for lift type, weight, reps and date
//  3. [tasks.UploadVideoTab] : File path input with an AI analysis toggle
//  4. [tasks.HistoryTab] : Table of every fetched lift
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. It holds no
// application state of its own beyond widgets: key presses become [tasks.Event] values applied to a
// [tasks.Controller], and the returned [tasks.Effect] is run as a [tea.Cmd] whose completion comes
// back through the Msg union type. Each request flow gets its own cancelable context, and all of them
// are cancelled on quit.
//
// Keyboard navigation uses ctrl+n/ctrl+p to switch tabs, tab/shift+tab to move between form fields,
// and q or ctrl+c to quit, with contextual help displayed via charmbracelet/bubbles/help.
package ui
