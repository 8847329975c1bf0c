// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks through a single listing:
//  1. [FormView] : Enter the channel URL, output directory and output option
//  2. [RunningView] : Wait on the listing tool behind a spinner
//  3. [ResultView] : Browse the extracted videos, or read why the listing failed
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// The listing runs in a [tea.Cmd], so the spinner keeps ticking while the tool works.
//
// Keyboard navigation uses tab/shift+tab between fields, ctrl+t to flip the output option, and
// vim-style bindings (j/k, esc, r, q) in the result view, with contextual help displayed via charmbracelet/bubbles/help.
package ui
