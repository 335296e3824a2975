package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"movierec/internal/chat"
	"movierec/internal/domain"
)

type fakeChat struct {
	reply *chat.Reply
	err   error
	got   []string
}

func (f *fakeChat) Reply(msg chat.Message) (*chat.Reply, error) {
	f.got = append(f.got, msg.Text)
	return f.reply, f.err
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestAskRecommendations(t *testing.T) {
	fc := &fakeChat{reply: &chat.Reply{
		Type:           chat.TypeRecommendations,
		Message:        "Great choice!",
		RequestedMovie: "The Matrix",
		Recommendations: []chat.Recommendation{
			{Recommendation: domain.Recommendation{Title: "Inception", Overview: "A thief enters dreams.", SimilarityScore: 0.25}, Explanation: "Match: 25%"},
			{Recommendation: domain.Recommendation{Title: "Titanic", Overview: "A love story.", SimilarityScore: 0.1}},
		},
	}}
	m := send(t, New(fc, "3 movies"), tea.WindowSizeMsg{Width: 80, Height: 24})
	m.input.SetValue("I like the matrix")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(fc.got) != 1 || fc.got[0] != "I like the matrix" {
		t.Fatalf("chat got %v", fc.got)
	}
	if m.status != "Great choice!" || len(m.items) != 2 || m.requested != "The Matrix" {
		t.Errorf("model = status %q, %d items, requested %q", m.status, len(m.items), m.requested)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	out := m.renderCurrentItem()
	if !strings.Contains(out, "Inception") || !strings.Contains(out, "score=0.250") || !strings.Contains(out, "Match: 25%") {
		t.Errorf("render = %q", out)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.cursor)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Errorf("cursor wraps to %d, want 0", m.cursor)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 1 {
		t.Errorf("cursor after up = %d, want 1", m.cursor)
	}
}

func TestAskSearchAndError(t *testing.T) {
	fc := &fakeChat{reply: &chat.Reply{
		Type:    chat.TypeSearchResults,
		Message: "I found 1 movies matching 'inc':",
		Movies:  []domain.MovieSummary{{Title: "Inception", Overview: "Dreams.", Poster: "https://img.test/i.jpg"}},
	}}
	m := send(t, New(fc, ""), tea.WindowSizeMsg{Width: 80, Height: 24})
	m.input.SetValue("search for inc")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.items) != 1 || m.items[0].hasScore {
		t.Fatalf("items = %+v", m.items)
	}
	if out := m.renderCurrentItem(); !strings.Contains(out, "https://img.test/i.jpg") {
		t.Errorf("render lacks poster: %q", out)
	}

	fc.err = errors.New("model not ready")
	m.input.SetValue("hello")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.status != "Error: model not ready" || len(m.items) != 0 {
		t.Errorf("status = %q, items = %d", m.status, len(m.items))
	}
	if out := m.renderCurrentItem(); out != "No results yet." {
		t.Errorf("render = %q", out)
	}
}

func TestViewBeforeResize(t *testing.T) {
	if got := New(&fakeChat{}, "").View(); got != "Loading..." {
		t.Errorf("View() = %q", got)
	}
}

func TestHighlightBestSentence(t *testing.T) {
	text := "A love story. A thief enters dreams. The end."
	got := highlightBestSentence(text, "dreams thief")
	if !strings.Contains(got, "A love story.") || !strings.Contains(got, "The end.") {
		t.Errorf("highlightBestSentence() dropped text: %q", got)
	}
	if got := highlightBestSentence(text, "zebra"); got != text {
		t.Errorf("no overlap should leave text unchanged, got %q", got)
	}
	if got := highlightBestSentence("   ", "x"); got != "   " {
		t.Errorf("blank text = %q", got)
	}
}

func TestTokenOverlapScore(t *testing.T) {
	q := toTokenSet("The Matrix")
	if got := tokenOverlapScore(q, "the matrix, the MATRIX reloaded"); got != 2 {
		t.Errorf("tokenOverlapScore() = %d, want 2", got)
	}
}
