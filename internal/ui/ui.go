package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FormView ViewState = iota
	RunningView
	ResultView
)

// Form fields, in tab order.
const (
	fieldURL = iota
	fieldDir
	fieldMode
	fieldCount
)

// Pipeline runs a single listing request.
type Pipeline interface {
	Run(ctx context.Context, req tasks.ListingRequest) models.ListingResult
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	pipeline Pipeline
	width    int
	height   int
	inputs   [2]textinput.Model // channel URL, output directory
	focus    int
	mode     models.Mode
	spinner  spinner.Model
	videos   list.Model
	result   models.ListingResult
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model; defaultDir pre-fills the output directory.
func NewModel(ctx context.Context, pipeline Pipeline, defaultDir string) *Model {
	url := textinput.New()
	url.Placeholder = "https://www.youtube.com/@channel"
	url.Prompt = "› "
	url.CharLimit = 2048
	url.Focus()

	dir := textinput.New()
	dir.Placeholder = "output directory"
	dir.Prompt = "› "
	dir.SetValue(defaultDir)

	videos := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	videos.SetFilteringEnabled(false)
	videos.DisableQuitKeybindings()

	return &Model{
		ctx:      ctx,
		view:     FormView,
		pipeline: pipeline,
		inputs:   [2]textinput.Model{url, dir},
		focus:    fieldURL,
		mode:     models.ModeSave,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.focused)),
		videos:   videos,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts the cursor blinking in the URL field.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.videos.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		return m, nil

	case spinner.TickMsg:
		if m.view != RunningView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgListingComplete:
			m.showResult(msg.data.(models.ListingResult))
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		case RunningView:
			if key.Matches(msg, m.keys.abort) {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}
	}

	if m.view == FormView {
		return m.updateInput(msg)
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case RunningView:
		return m.renderRunning()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.abort):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, m.keys.toggle):
		m.toggleMode()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		m.view = RunningView
		return m, tea.Batch(m.spinner.Tick, m.runListing(m.request()))
	}

	if m.focus == fieldMode {
		if msg.String() == " " || msg.String() == "left" || msg.String() == "right" {
			m.toggleMode()
		}
		return m, nil
	}
	return m.updateInput(msg)
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.inputs[fieldURL].SetValue("")
		m.view = FormView
		return m, m.setFocus(fieldURL)
	case key.Matches(msg, m.keys.back):
		m.view = FormView
		return m, m.setFocus(m.focus)
	}

	var cmd tea.Cmd
	m.videos, cmd = m.videos.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) toggleMode() {
	if m.mode == models.ModeSave {
		m.mode = models.ModeTransient
	} else {
		m.mode = models.ModeSave
	}
}

func (m *Model) request() tasks.ListingRequest {
	return tasks.ListingRequest{
		ChannelURL:     strings.TrimSpace(m.inputs[fieldURL].Value()),
		DestinationDir: strings.TrimSpace(m.inputs[fieldDir].Value()),
		Mode:           m.mode,
	}
}

func (m *Model) runListing(req tasks.ListingRequest) tea.Cmd {
	ctx, pipeline := m.ctx, m.pipeline
	return func() tea.Msg {
		return listingCompleteMsg(pipeline.Run(ctx, req))
	}
}

func (m *Model) showResult(result models.ListingResult) {
	m.result = result
	m.view = ResultView
	m.videos.SetItems(videoItems(result.Records))
	m.videos.ResetSelected()
	m.videos.Title = fmt.Sprintf("%s (%d videos)", result.ChannelName, result.Count)
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("List a YouTube channel"))
	b.WriteString("\n")

	b.WriteString(m.label(fieldURL, "Channel URL") + "\n")
	b.WriteString(m.inputs[fieldURL].View() + "\n\n")

	dirLabel := "Output directory"
	if m.mode == models.ModeTransient {
		dirLabel += styles.help.Render(" (unused for transient listings)")
	}
	b.WriteString(m.label(fieldDir, dirLabel) + "\n")
	b.WriteString(m.inputs[fieldDir].View() + "\n\n")

	save, transient := "( )", "( )"
	if m.mode == models.ModeSave {
		save = "(•)"
	} else {
		transient = "(•)"
	}
	b.WriteString(m.label(fieldMode, "Output option") + "\n")
	fmt.Fprintf(&b, "  %s Save to folder   %s Transient\n\n", save, transient)

	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.toggle, m.keys.submit, m.keys.abort}))
	return b.String()
}

func (m *Model) label(field int, text string) string {
	if m.focus == field {
		return styles.focused.Render(text)
	}
	return text
}

func (m *Model) renderRunning() string {
	title := styles.title.Render("Listing videos")
	return fmt.Sprintf("%s\n\n%s Running yt-dlp for %s...\n\n%s",
		title, m.spinner.View(), m.inputs[fieldURL].Value(), m.help.ShortHelpView([]key.Binding{m.keys.abort}))
}

func (m *Model) renderResult() string {
	if !m.result.OK() {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(m.result.StatusMessage), helpView)
	}

	header := styles.ok.Render("✓ " + m.result.StatusMessage)
	if m.result.ArtifactPath != "" {
		header += "\n" + m.result.ArtifactPath
	}
	if n := len(m.result.Skipped); n > 0 {
		header += "\n" + styles.warn.Render(fmt.Sprintf("%d lines of tool output were skipped", n))
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.restart, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, m.videos.View(), m.help.ShortHelpView(helpKeys))
}
