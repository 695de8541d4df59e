package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medrec/internal/models"
	"medrec/internal/recommend"
	"medrec/internal/validation"
)

const predictTimeout = 30 * time.Second

// predictionMsg carries the result of an asynchronous prediction.
type predictionMsg struct {
	rec *models.Recommendation
	err error
}

// Model is the Bubble Tea model for the interactive recommender.
type Model struct {
	predictor recommend.Predictor
	input     textinput.Model
	spinner   spinner.Model
	result    *models.Recommendation
	status    string
	loading   bool
	width     int
}

// New creates a new TUI model backed by predictor.
func New(predictor recommend.Predictor) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe your symptoms and press Enter"
	ti.Focus()
	ti.CharLimit = validation.MaxSymptomsLength

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		predictor: predictor,
		input:     ti,
		spinner:   sp,
		status:    "Ready.",
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and prediction events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case predictionMsg:
		m.loading = false
		if msg.err != nil {
			m.result = nil
			m.status = "Error: " + errorText(msg.err)
			return m, nil
		}
		m.result = msg.rec
		m.status = fmt.Sprintf("Results for %q", msg.rec.InputSymptoms)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			if m.loading {
				return m, nil
			}
			symptoms, err := validation.ValidateSymptoms(m.input.Value())
			if err != nil {
				m.status = "Error: " + errorText(err)
				return m, nil
			}
			m.loading = true
			m.status = "Analyzing symptoms..."
			return m, tea.Batch(m.spinner.Tick, m.predict(symptoms))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) predict(symptoms string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), predictTimeout)
		defer cancel()
		rec, err := m.predictor.Predict(ctx, symptoms)
		return predictionMsg{rec: rec, err: err}
	}
}

// View renders the input, the last recommendation and the status line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Medicine Recommender"))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n")

	if m.result != nil {
		b.WriteString(boxStyle.Render(renderRecommendation(m.result)))
		b.WriteString("\n")
	}

	status := m.status
	if m.loading {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: predict • esc: quit"))
	return b.String()
}

func renderRecommendation(r *models.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s %s\n", medicineStyle.Render(r.Medicine),
		FormatConfidence(r.Confidence), BandBadge(r.ConfidenceBand()))
	b.WriteString(r.Description)
	b.WriteString("\n")

	if r.HasAlternatives() {
		b.WriteString("\nAlternatives:\n")
		for _, alt := range r.AlternativeSuggestions {
			fmt.Fprintf(&b, "  • %s  %s  %s\n", alt.Medicine, FormatConfidence(alt.Confidence), alt.Description)
		}
	}

	b.WriteString("\n")
	b.WriteString(disclaimerStyle.Render(r.Disclaimer))
	return b.String()
}

// FormatConfidence renders a confidence score as a whole percentage.
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%.0f%%", c*100)
}

// BandBadge renders a confidence band label in its display color.
func BandBadge(band string) string {
	style, ok := bandStyles[band]
	if !ok {
		return band
	}
	return style.Render(band)
}

func errorText(err error) string {
	if msg := recommend.MessageOf(err); msg != "" {
		return msg
	}
	return err.Error()
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	boxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	medicineStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	disclaimerStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))

	bandStyles = map[string]lipgloss.Style{
		models.ConfidenceHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		models.ConfidenceMedium: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		models.ConfidenceLow:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
)
