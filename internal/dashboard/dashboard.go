// Package dashboard renders the interactive learner overview: per-topic
// mastery bars and the current recommendation list for each learner.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/progress"
	"github.com/learnpath/learnpath/internal/recommend"
	"github.com/learnpath/learnpath/internal/topicgraph"
)

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	graph  *topicgraph.Graph
	engine *recommend.Engine
	store  *mastery.Store

	users    []string
	selected int

	snap   mastery.Snapshot
	result *recommend.Result
	err    error

	width  int
	height int
	scroll int
}

// New creates a dashboard over the given mastery store and engine.
func New(g *topicgraph.Graph, engine *recommend.Engine, store *mastery.Store) Model {
	m := Model{
		graph:  g,
		engine: engine,
		store:  store,
	}
	m.refresh()
	return m
}

// refresh re-reads the store snapshot and recomputes recommendations for the
// selected user.
func (m *Model) refresh() {
	m.snap = m.store.Snapshot()
	m.users = m.store.Users()
	if len(m.users) == 0 {
		m.result = nil
		return
	}
	if m.selected >= len(m.users) {
		m.selected = len(m.users) - 1
	}

	result, err := m.engine.Recommend(m.users[m.selected], m.snap, 0)
	m.result = result
	m.err = err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.users) > 0 {
				m.selected = (m.selected + 1) % len(m.users)
				m.scroll = 0
				m.refresh()
			}
		case "shift+tab", "left", "h":
			if len(m.users) > 0 {
				m.selected = (m.selected - 1 + len(m.users)) % len(m.users)
				m.scroll = 0
				m.refresh()
			}
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "r":
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	body := m.renderBody()
	footer := renderFooter(m.width)

	bodyHeight := m.height - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = clipBody(body, m.scroll, bodyHeight)

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, body, footer))
	return v
}

func (m Model) renderBody() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Learning Path"))
	b.WriteString("\n\n")
	b.WriteString(renderUserTabs(m.users, m.selected))
	b.WriteString("\n\n")

	if len(m.users) == 0 {
		b.WriteString(dimStyle.Render("No activity recorded yet. Ingest events or run `learnpath seed` for demo data."))
		return b.String()
	}

	user := m.users[m.selected]
	scores := m.snap.Scores(user)

	sum := progress.Summarize(m.store.UserEvents(user))
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"streak %d day(s) · next milestone %d · %d quizzes (%d correct)",
		sum.CurrentStreak, progress.NextMilestone(sum.CurrentStreak), sum.TotalQuizzes, sum.TotalCorrect,
	)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("MASTERY"))
	b.WriteString("\n")
	attempted := 0
	for _, t := range m.graph.TopologicalOrder() {
		score, ok := scores[t.ID]
		if !ok {
			continue
		}
		attempted++
		b.WriteString(renderMasteryBar(t.Name, score, min(m.width-2, 72)))
		b.WriteString("\n")
	}
	if attempted == 0 {
		b.WriteString(dimStyle.Render("  no attempts yet"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("RECOMMENDED NEXT"))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(noticeStyle.Render("  ⚠ " + m.err.Error()))
		b.WriteString("\n")
	case m.result == nil || len(m.result.Recommendations) == 0:
		b.WriteString(dimStyle.Render("  nothing to recommend right now"))
		b.WriteString("\n")
	default:
		for i, rec := range m.result.Recommendations {
			name := rec.Topic
			if t, err := m.graph.Topic(rec.Topic); err == nil {
				name = t.Name
			}
			rec.Topic = name
			b.WriteString(renderRecommendation(i+1, rec, m.width))
			b.WriteString("\n")
		}
	}

	if m.result != nil && len(m.result.Notices) > 0 {
		b.WriteString("\n")
		b.WriteString(renderNotices(m.result.Notices))
		b.WriteString("\n")
	}

	return b.String()
}

// clipBody returns the window of body lines starting at scroll, at most
// height lines.
func clipBody(body string, scroll, height int) string {
	lines := strings.Split(body, "\n")
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[scroll:end], "\n")
}

// Run starts the dashboard program.
func Run(g *topicgraph.Graph, engine *recommend.Engine, store *mastery.Store) error {
	p := tea.NewProgram(New(g, engine, store))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
