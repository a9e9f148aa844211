package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/casewalk/internal/cli/formatter"
	"github.com/alexanderramin/casewalk/internal/contract"
	"github.com/alexanderramin/casewalk/internal/domain"
	"github.com/alexanderramin/casewalk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// reportLoadedMsg carries a freshly read progress report into the picker.
type reportLoadedMsg struct {
	report contract.ProgressReport
}

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Switch key.Binding
	Quit   key.Binding
}

func defaultPickerKeys() pickerKeyMap {
	return pickerKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch patient")),
		Quit:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k pickerKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Switch, k.Quit}
}

// chapterPicker lists one patient track's chapters and lets the user pick
// an unlocked one. Locked chapters cannot be chosen.
type chapterPicker struct {
	progress service.ProgressService
	keys     pickerKeyMap

	patient domain.Patient
	report  contract.ProgressReport
	loading bool
	cursor  int
	notice  string

	chosen    int
	cancelled bool
}

func newChapterPicker(progress service.ProgressService, patient domain.Patient) *chapterPicker {
	return &chapterPicker{
		progress: progress,
		keys:     defaultPickerKeys(),
		patient:  patient.OrDefault(),
		loading:  true,
	}
}

// Chosen returns the selected visible chapter, or false when the picker was
// cancelled.
func (m *chapterPicker) Chosen() (int, domain.Patient, bool) {
	if m.chosen == 0 {
		return 0, m.patient, false
	}
	return m.chosen, m.patient, true
}

func (m *chapterPicker) Init() tea.Cmd {
	return m.loadReport()
}

func (m *chapterPicker) loadReport() tea.Cmd {
	progress, patient := m.progress, m.patient
	return func() tea.Msg {
		return reportLoadedMsg{report: progress.Report(context.Background(), patient)}
	}
}

func (m *chapterPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		m.report = msg.report
		m.cursor = m.lastUnlocked()
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			if key.Matches(msg, m.keys.Quit) {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *chapterPicker) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.report.Chapters)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Switch):
		if m.patient == domain.PatientFemale {
			m.patient = domain.PatientMale
		} else {
			m.patient = domain.PatientFemale
		}
		m.loading = true
		return m, m.loadReport()
	case key.Matches(msg, m.keys.Choose):
		if m.cursor >= len(m.report.Chapters) {
			return m, nil
		}
		c := m.report.Chapters[m.cursor]
		if !c.Unlocked {
			m.notice = fmt.Sprintf("Chapter %d is locked. Finish chapter %d first.", c.Chapter, c.Chapter-1)
			return m, nil
		}
		m.chosen = c.Chapter
		return m, tea.Quit
	}
	return m, nil
}

// lastUnlocked returns the index of the highest unlocked chapter so the
// cursor starts on the player's frontier.
func (m *chapterPicker) lastUnlocked() int {
	idx := 0
	for i, c := range m.report.Chapters {
		if c.Unlocked {
			idx = i
		}
	}
	return idx
}

func (m *chapterPicker) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading chapters...")
	}
	if m.chosen != 0 || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Select chapter") + "\n")
	b.WriteString("  " + formatter.PatientBadge(m.patient))
	if m.report.HasPlayer {
		b.WriteString("  " + formatter.Bold(m.report.PlayerName))
	}
	b.WriteString("\n\n")

	for i, c := range m.report.Chapters {
		cursor := "  "
		label := formatter.StyleFg
		if !c.Unlocked {
			label = formatter.StyleDim
		}
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			if c.Unlocked {
				label = formatter.StyleBold
			}
		}

		score := formatter.Dim("--")
		if c.Attempted {
			score = formatter.FormatScore(c.Score, c.MaxScore)
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s  %s\n",
			cursor,
			label.Render(fmt.Sprintf("Chapter %d", c.Chapter)),
			formatter.LockBadge(c.Unlocked, c.Attempted),
			score,
		))
	}

	if m.notice != "" {
		b.WriteString("\n  " + formatter.StyleYellow.Render(m.notice) + "\n")
	}

	b.WriteString("\n  " + pickerHelp(m.keys.bindings()) + "\n")
	return b.String()
}

func pickerHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}
