package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"movierec/internal/chat"
)

// ChatPort is the TUI-facing subset of the chat service.
type ChatPort interface {
	Reply(msg chat.Message) (*chat.Reply, error)
}

// item is one movie shown in the result box.
type item struct {
	title       string
	overview    string
	poster      string
	score       float64
	hasScore    bool
	explanation string
}

// Model is the Bubble Tea model for the chat client.
type Model struct {
	service   ChatPort
	input     textinput.Model
	viewport  viewport.Model
	items     []item
	requested string
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance.
func New(service ChatPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = `Try "I like The Matrix" or "search for star"`
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, summary: summary, status: "Ready. Tell me a movie you like."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentItem())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.ask(q)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderCurrentItem())
				return m, nil
			}
		case "down":
			if len(m.items) > 0 {
				m.cursor = (m.cursor + 1) % len(m.items)
				m.viewport.SetContent(m.renderCurrentItem())
				return m, nil
			}
		case "up":
			if len(m.items) > 0 {
				m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
				m.viewport.SetContent(m.renderCurrentItem())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(q string) Model {
	reply, err := m.service.Reply(chat.Message{Text: q})
	m.cursor = 0
	m.items = nil
	m.requested = ""
	m.lastQuery = q
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.status = reply.Message
	m.requested = reply.RequestedMovie
	for _, r := range reply.Recommendations {
		m.items = append(m.items, item{
			title:       r.Title,
			overview:    r.Overview,
			poster:      r.Poster,
			score:       r.SimilarityScore,
			hasScore:    true,
			explanation: r.Explanation,
		})
	}
	for _, mv := range reply.Movies {
		m.items = append(m.items, item{title: mv.Title, overview: mv.Overview, poster: mv.Poster})
	}
	return m
}

// View renders the TUI layout and current item.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Movie Recommender")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentItem() string {
	if len(m.items) == 0 {
		return "No results yet."
	}
	it := m.items[m.cursor]
	var b strings.Builder
	if m.requested != "" {
		b.WriteString("Because you liked " + highlightStyle.Render(m.requested) + "\n")
	}
	fmt.Fprintf(&b, "%d/%d  %s", m.cursor+1, len(m.items), titleStyle.Render(it.title))
	if it.hasScore {
		fmt.Fprintf(&b, "  score=%.3f", it.score)
	}
	b.WriteString("\n\n")
	if it.explanation != "" {
		b.WriteString(explanationStyle.Render(it.explanation) + "\n\n")
	}
	b.WriteString(highlightBestSentence(it.overview, m.lastQuery))
	if it.poster != "" {
		b.WriteString("\n\n" + posterStyle.Render(it.poster))
	}
	return b.String()
}

var (
	resultBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	titleStyle       = lipgloss.NewStyle().Bold(true)
	explanationStyle = lipgloss.NewStyle().Italic(true)
	posterStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Underline(true)
	unicodeWordRe    = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe       = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// highlightBestSentence marks the overview sentence sharing the most words
// with query.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := 0
	for i, s := range sentences {
		if score := tokenOverlapScore(qTokens, s); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if bestScore > 0 && i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
