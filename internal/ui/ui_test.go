package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/tasks"
)

type fakePipeline struct {
	result   models.ListingResult
	requests []tasks.ListingRequest
}

func (f *fakePipeline) Run(ctx context.Context, req tasks.ListingRequest) models.ListingResult {
	f.requests = append(f.requests, req)
	return f.result
}

func keyPress(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func successResult() models.ListingResult {
	return models.ListingResult{
		StatusMessage: "Success! 2 videos saved to: out/chan/chan_video_list.csv",
		ChannelName:   "chan",
		Count:         2,
		Records: []models.VideoRecord{
			{Title: "First", URL: "https://www.youtube.com/watch?v=a"},
			{Title: "Second", URL: "https://www.youtube.com/watch?v=b"},
		},
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel(context.Background(), &fakePipeline{}, "/srv/lists")

	if m.view != FormView {
		t.Errorf("expected FormView, got %v", m.view)
	}
	if m.mode != models.ModeSave {
		t.Errorf("expected save mode, got %s", m.mode)
	}
	if m.focus != fieldURL || !m.inputs[fieldURL].Focused() {
		t.Error("expected URL field to be focused")
	}
	if got := m.inputs[fieldDir].Value(); got != "/srv/lists" {
		t.Errorf("expected default dir to be pre-filled, got %q", got)
	}
	if m.Init() == nil {
		t.Error("expected Init to start the cursor blink")
	}
}

func TestForm(t *testing.T) {
	t.Run("typing fills the focused field", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")
		typeText(m, "https://youtube.com/@q")

		if got := m.inputs[fieldURL].Value(); got != "https://youtube.com/@q" {
			t.Errorf("unexpected URL value %q", got)
		}
		if m.view != FormView {
			t.Error("typing q must not leave the form")
		}
	})

	t.Run("tab cycles focus", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")

		for _, want := range []int{fieldDir, fieldMode, fieldURL} {
			m.Update(keyPress(tea.KeyTab))
			if m.focus != want {
				t.Fatalf("expected focus %d, got %d", want, m.focus)
			}
		}

		m.Update(keyPress(tea.KeyShiftTab))
		if m.focus != fieldMode {
			t.Errorf("expected shift+tab to wrap to the mode field, got %d", m.focus)
		}
		if m.inputs[fieldURL].Focused() || m.inputs[fieldDir].Focused() {
			t.Error("expected both inputs to be blurred on the mode field")
		}
	})

	t.Run("ctrl+t toggles the output option", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")

		m.Update(keyPress(tea.KeyCtrlT))
		if m.mode != models.ModeTransient {
			t.Fatalf("expected transient mode, got %s", m.mode)
		}
		if !strings.Contains(m.View(), "unused for transient listings") {
			t.Error("expected transient hint in form view")
		}

		m.Update(keyPress(tea.KeyCtrlT))
		if m.mode != models.ModeSave {
			t.Errorf("expected save mode, got %s", m.mode)
		}
	})

	t.Run("space toggles on the mode field", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")
		m.Update(keyPress(tea.KeyTab))
		m.Update(keyPress(tea.KeyTab))
		m.Update(keyPress(tea.KeySpace))

		if m.mode != models.ModeTransient {
			t.Errorf("expected transient mode, got %s", m.mode)
		}
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")
		_, cmd := m.Update(keyPress(tea.KeyCtrlC))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestSubmit(t *testing.T) {
	pipeline := &fakePipeline{result: successResult()}
	m := NewModel(context.Background(), pipeline, "out")
	typeText(m, "  https://www.youtube.com/@chan ")
	m.Update(keyPress(tea.KeyCtrlT))

	_, cmd := m.Update(keyPress(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected listing command")
	}
	if m.view != RunningView {
		t.Fatalf("expected RunningView, got %v", m.view)
	}
	if !strings.Contains(m.View(), "Running yt-dlp") {
		t.Errorf("unexpected running view %q", m.View())
	}

	msg := m.runListing(m.request())()
	if len(pipeline.requests) != 1 {
		t.Fatalf("expected 1 pipeline call, got %d", len(pipeline.requests))
	}
	want := tasks.ListingRequest{ChannelURL: "https://www.youtube.com/@chan", DestinationDir: "out", Mode: models.ModeTransient}
	if pipeline.requests[0] != want {
		t.Errorf("expected request %+v, got %+v", want, pipeline.requests[0])
	}

	m.Update(msg)
	if m.view != ResultView {
		t.Fatalf("expected ResultView, got %v", m.view)
	}
	if got := len(m.videos.Items()); got != 2 {
		t.Errorf("expected 2 list items, got %d", got)
	}
	if m.videos.Title != "chan (2 videos)" {
		t.Errorf("unexpected list title %q", m.videos.Title)
	}
	if !strings.Contains(m.View(), "Success! 2 videos") {
		t.Errorf("expected status message in result view, got %q", m.View())
	}
}

func TestResult(t *testing.T) {
	t.Run("failure shows status message", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")
		m.Update(listingCompleteMsg(models.Failure(models.KindInvalidInput, "Error: Please provide a Channel URL.")))

		if m.view != ResultView {
			t.Fatalf("expected ResultView, got %v", m.view)
		}
		if !strings.Contains(m.View(), "Error: Please provide a Channel URL.") {
			t.Errorf("unexpected view %q", m.View())
		}
		if len(m.videos.Items()) != 0 {
			t.Error("expected no list items for a failed listing")
		}
	})

	t.Run("restart clears the URL and keeps the directory", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "out")
		typeText(m, "https://www.youtube.com/@chan")
		m.Update(listingCompleteMsg(successResult()))

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
		if m.view != FormView {
			t.Fatalf("expected FormView, got %v", m.view)
		}
		if m.inputs[fieldURL].Value() != "" {
			t.Errorf("expected URL to be cleared, got %q", m.inputs[fieldURL].Value())
		}
		if m.inputs[fieldDir].Value() != "out" {
			t.Errorf("expected directory to be kept, got %q", m.inputs[fieldDir].Value())
		}
	})

	t.Run("esc returns to the filled form", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")
		typeText(m, "https://www.youtube.com/@chan")
		m.Update(listingCompleteMsg(successResult()))

		m.Update(keyPress(tea.KeyEsc))
		if m.view != FormView {
			t.Fatalf("expected FormView, got %v", m.view)
		}
		if m.inputs[fieldURL].Value() != "https://www.youtube.com/@chan" {
			t.Errorf("expected URL to be kept, got %q", m.inputs[fieldURL].Value())
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")
		m.Update(listingCompleteMsg(successResult()))

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})

	t.Run("window size resizes the list", func(t *testing.T) {
		m := NewModel(context.Background(), &fakePipeline{}, "")
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

		if m.videos.Width() != 76 || m.videos.Height() != 22 {
			t.Errorf("unexpected list size %dx%d", m.videos.Width(), m.videos.Height())
		}
	})
}

func TestVideoItem(t *testing.T) {
	items := videoItems([]models.VideoRecord{
		{Title: "Alpha", URL: "https://www.youtube.com/watch?v=1"},
		{Title: "Beta", URL: "https://www.youtube.com/watch?v=2"},
	})

	item := items[1].(videoItem)
	if item.Title() != "2. Beta" {
		t.Errorf("unexpected title %q", item.Title())
	}
	if item.Description() != "https://www.youtube.com/watch?v=2" {
		t.Errorf("unexpected description %q", item.Description())
	}
	if item.FilterValue() != "Beta" {
		t.Errorf("unexpected filter value %q", item.FilterValue())
	}
}
