package components

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/request"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntakeOwner is the ticket owner of the intake controller.
const IntakeOwner = "intake"

// SubmitFailedText is shown after a submission could not be scored.
const SubmitFailedText = "Prediction failed. Please try again."

// IntakeModel owns the transaction draft and its submission lifecycle.
type IntakeModel struct {
	ctx       context.Context
	client    scoring.Client
	newID     func() string
	fieldErrs map[model.Field]string
	theme     themes.Theme
	state     request.State[model.Verdict]
	draft     model.Draft
	inputs    []textinput.Model
	spinner   spinner.Model
	focus     int
	seq       int
	width     int
}

// IntakeOption configures an IntakeModel.
type IntakeOption func(*IntakeModel)

// WithIDGenerator replaces the transaction id generator.
func WithIDGenerator(gen func() string) IntakeOption {
	return func(m *IntakeModel) {
		m.newID = gen
	}
}

// WithClock seeds the draft's hour and weekday from now instead of the wall clock.
func WithClock(now time.Time) IntakeOption {
	return func(m *IntakeModel) {
		m.draft = model.NewDraft(now, m.draft.TransactionID)
	}
}

// NewIntakeModel creates the intake form with a default draft.
func NewIntakeModel(ctx context.Context, client scoring.Client, theme themes.Theme, opts ...IntakeOption) IntakeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := IntakeModel{
		ctx:       ctx,
		client:    client,
		theme:     theme,
		newID:     model.NewTransactionID,
		spinner:   s,
		fieldErrs: make(map[model.Field]string),
		state:     request.Idle[model.Verdict](),
	}
	m.draft = model.NewDraft(time.Now(), "")
	for _, opt := range opts {
		opt(&m)
	}
	m.draft.TransactionID = m.newID()

	m.inputs = make([]textinput.Model, len(model.Fields))
	for i, f := range model.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 32
		in.SetValue(m.draft.Value(f))
		m.inputs[i] = in
	}
	m.inputs[0].Focus()

	return m
}

// Init returns initial commands.
func (m IntakeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Draft returns the current draft.
func (m IntakeModel) Draft() model.Draft { return m.draft }

// State returns the submission lifecycle.
func (m IntakeModel) State() request.State[model.Verdict] { return m.state }

// Focused returns the field that receives typed input.
func (m IntakeModel) Focused() model.Field { return model.Fields[m.focus] }

// FieldError returns the inline validation message of a field, if any.
func (m IntakeModel) FieldError(f model.Field) string { return m.fieldErrs[f] }

// Edit replaces one draft field with raw input. Edits are refused while a
// submission is pending.
func (m *IntakeModel) Edit(e model.Edit) error {
	if err := m.apply(e); err != nil {
		return err
	}
	if idx := fieldIndex(e.Field); idx >= 0 {
		m.inputs[idx].SetValue(m.draft.Value(e.Field))
	}
	return nil
}

func (m *IntakeModel) apply(e model.Edit) error {
	if m.state.IsPending() {
		return common.ErrSubmissionPending
	}

	next, err := m.draft.Apply(e)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			m.fieldErrs[e.Field] = verr.Reason
		}
		return err
	}
	delete(m.fieldErrs, e.Field)
	m.draft = next
	return nil
}

// Submit scores the draft. It is a no-op while a submission is pending,
// while any field shows a validation error, or when the draft does not
// validate.
func (m *IntakeModel) Submit() tea.Cmd {
	if m.state.IsPending() || len(m.fieldErrs) > 0 || m.draft.Validate() != nil {
		return nil
	}

	m.draft = m.draft.Regenerate(m.newID)
	m.state = request.Pending[model.Verdict]()
	m.seq++
	ticket := Ticket{Owner: IntakeOwner, Seq: m.seq}

	return tea.Batch(
		m.spinner.Tick,
		submitTransaction(m.ctx, m.client, m.draft, ticket),
	)
}

// Update handles messages.
func (m IntakeModel) Update(msg tea.Msg) (IntakeModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case VerdictReceivedMsg:
		if m.current(msg.Ticket) {
			m.state = request.Succeeded(msg.Verdict)
			cmds = append(cmds, publishVerdict(msg.Draft, msg.Verdict))
		}

	case SubmitFailedMsg:
		if m.current(msg.Ticket) {
			m.state = request.Failed[model.Verdict](msg.Err)
		}

	case spinner.TickMsg:
		if m.state.IsPending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width

	default:
		// Cursor blink.
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m IntakeModel) current(t Ticket) bool {
	return t.Owner == IntakeOwner && t.Seq == m.seq && m.state.IsPending()
}

// handleKey handles key presses on the form.
func (m *IntakeModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	field := m.Focused()

	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1)

	case "shift+tab", "up":
		return m.moveFocus(-1)

	case "enter":
		return m.Submit()

	case " ":
		if field == model.FieldKYCVerified {
			_ = m.apply(model.Edit{Field: field, Raw: fmt.Sprint(!m.draft.KYCVerified)})
			return nil
		}

	case "left", "right":
		if field == model.FieldChannel {
			offset := 1
			if msg.String() == "left" {
				offset = -1
			}
			_ = m.apply(model.Edit{Field: field, Raw: string(m.draft.Channel.Shift(offset))})
			return nil
		}
	}

	if field == model.FieldChannel || field == model.FieldKYCVerified || m.state.IsPending() {
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	// A rejected keystroke keeps the last valid value in the draft and
	// surfaces the reason inline.
	_ = m.apply(model.Edit{Field: field, Raw: m.inputs[m.focus].Value()})
	return cmd
}

func (m *IntakeModel) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	// Leaving a field settles its text to the value the draft accepted.
	f := m.Focused()
	m.inputs[m.focus].SetValue(m.draft.Value(f))
	delete(m.fieldErrs, f)

	n := len(m.inputs)
	m.focus = ((m.focus+delta)%n + n) % n
	return m.inputs[m.focus].Focus()
}

func fieldIndex(f model.Field) int {
	for i, known := range model.Fields {
		if known == f {
			return i
		}
	}
	return -1
}

// View renders the intake form.
func (m IntakeModel) View() string {
	title := m.theme.Title.Render("New Transaction")
	id := m.theme.Label.Render("Transaction ID ") + m.theme.Code.Render(m.draft.TransactionID)

	rows := make([]string, 0, len(model.Fields))
	for i, f := range model.Fields {
		rows = append(rows, m.renderField(i, f))
	}

	sections := []string{title, id, "", strings.Join(rows, "\n"), "", m.renderStatus()}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m IntakeModel) renderField(i int, f model.Field) string {
	marker := "  "
	label := m.theme.Label
	if i == m.focus {
		marker = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("> ")
		label = m.theme.Bold
	}

	var value string
	switch f {
	case model.FieldChannel:
		value = "‹ " + m.draft.Channel.Label() + " ›"
	case model.FieldKYCVerified:
		value = "[ ]"
		if m.draft.KYCVerified {
			value = "[x]"
		}
	default:
		value = m.inputs[i].View()
	}

	line := fmt.Sprintf("%s%s %s", marker, label.Width(20).Render(f.String()), value)
	if reason := m.fieldErrs[f]; reason != "" {
		line += " " + m.theme.StatusError.Render(reason)
	}
	return line
}

func (m IntakeModel) renderStatus() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	switch {
	case m.state.IsPending():
		return m.spinner.View() + " " + m.theme.StatusPending.Render("Scoring transaction...")
	case m.state.IsFailed():
		return m.theme.StatusError.Render(SubmitFailedText) + " " + muted.Render("("+failureText(m.state.Err())+")")
	}

	var verr *model.ValidationError
	if err := m.draft.Validate(); errors.As(err, &verr) {
		return m.theme.StatusWarning.Render(fmt.Sprintf("%s %s", verr.Field, verr.Reason))
	}
	return muted.Render("tab/shift+tab move · space toggles KYC · ←/→ channel · enter analyze")
}
