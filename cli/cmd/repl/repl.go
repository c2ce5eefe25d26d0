package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/manifest/log"
	"github.com/ardnew/manifest/manifest"
)

// editDoneMsg is sent when the editor produced a manifest that parses.
type editDoneMsg struct {
	manifest *manifest.Manifest
	source   string
}

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process fails for any other reason.
type editErrorMsg struct{ err error }

const (
	prompt        = "➜ "
	commandPrefix = ":"
	defaultWidth  = 80
)

const helpMessage = `
Type an expression to evaluate it against the manifest. Sections are
variables and keys are their members:

  package.version
  semver(package.version, "1.0.0") >= 0
  $env["dev-dependencies"]

Commands:

  :help           Print this message
  :list           List sections
  :show SECTION   Print the entries of a section
  :edit           Edit the manifest in $EDITOR
  :clear          Clear screen
  :quit           Exit

Keys:

  Tab / Shift-Tab   Cycle through completions
  Enter             Accept completion, or submit
  Esc               Cancel completion, or clear input
  Up / Down         Browse history
  Ctrl-C / Ctrl-D   Exit on empty input`

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	manifest     *manifest.Manifest
	history      *History
	logger       log.Logger
	source       string
	preTabText   string
	opts         []manifest.Option
	matches      fuzzy.Matches
	input        textinput.Model
	historyIdx   int
	wordStart    int
	wordEnd      int
	selected     int // index into matches while tab-cycling, else -1
	preTabCursor int
	width        int
	tabActive    bool
	quitting     bool
}

// Run starts an interactive query session over the manifest read from r.
//
// History is kept in cacheDir. The options are applied to the initial parse
// and to every reparse after :edit.
func Run(
	ctx context.Context,
	r io.Reader,
	cacheDir string,
	logger log.Logger,
	opts ...manifest.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r == nil {
		return ErrNoSource
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return manifest.ErrReadInput.Wrap(err)
	}

	source := string(data)

	m, err := manifest.Parse(source, opts...)
	if err != nil {
		return err
	}

	logger.TraceContext(ctx, "repl manifest loaded",
		slog.Int("sections", m.Len()),
		slog.String("cache_dir", cacheDir),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}

	// Keys must come from the terminal when the manifest was read from stdin.
	if f, ok := r.(*os.File); ok && f == os.Stdin {
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	p := tea.NewProgram(newModel(ctx, m, source, history, logger, opts...), progOpts...)
	_, err = p.Run()

	return err
}

func newModel(
	ctx context.Context,
	m *manifest.Manifest,
	source string,
	history *History,
	logger log.Logger,
	opts ...manifest.Option,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		manifest:   m,
		history:    history,
		logger:     logger,
		source:     source,
		opts:       opts,
		input:      ti,
		historyIdx: history.Len(),
		selected:   -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(prompt)-2, 1)

		return m, nil

	case editDoneMsg:
		m.manifest = msg.manifest
		m.source = msg.source
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("sections", m.manifest.Len()),
		)

		return m, tea.Println(resultStyle.Render("manifest updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	return b.String()
}

// statusLine is the line under the input: history position, a usage hint,
// a signature hint, or the completion bar.
func (m model) statusLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(pos + "/" + strconv.Itoa(m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		return hintStyle.Render("Type an expression, or :help for commands")
	}

	if len(m.matches) == 0 && !strings.HasPrefix(input, commandPrefix) {
		call := detectFunctionCall(input, m.cursor())
		if call.inCall {
			return renderSignatureHint(call.name, call.argIndex)
		}
	}

	return renderCandidateBar(m.matches, m.selected, m.width)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		if msg.Type == tea.KeyCtrlC {
			m.input.SetValue("")
			m.tabActive = false
			m.historyIdx = m.history.Len()
			m.refreshMatches(false)
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.browse(-1), nil

	case tea.KeyDown:
		return m.browse(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
		} else {
			m.input.SetValue("")
			m.historyIdx = m.history.Len()
		}

		m.refreshMatches(false)

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)

	// Typed runes may complete an exact match; edits and cursor movement
	// never do.
	m.refreshMatches(msg.Type == tea.KeyRunes)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A single match is
// accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.selected = -1
		m.matches = nil

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if step < 0 {
			m.selected = 0
		} else {
			m.selected = -1
		}
	}

	m.selected = ((m.selected+step)%n + n) % n
	m.replaceWord(m.matches[m.selected].Str)

	return m
}

// browse moves through history by step. Moving past the newest entry clears
// the input.
func (m model) browse(step int) model {
	i := m.historyIdx + step
	if i < 0 {
		return m
	}

	m.tabActive = false
	m.historyIdx = min(i, m.history.Len())

	line, err := m.history.Entry(m.historyIdx)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.SetCursor(utf8.RuneCountInString(line))
	m.refreshMatches(false)

	return m
}

// replaceWord replaces the word under the cursor with s and moves the cursor
// past it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(utf8.RuneCountInString(input[:m.wordStart] + s))
	m.wordEnd = m.wordStart + len(s)
}

// cursor returns the byte offset of the cursor in the input value.
// The text input reports its position in runes.
func (m model) cursor() int {
	runes := []rune(m.input.Value())

	return len(string(runes[:min(m.input.Position(), len(runes))]))
}

// refreshMatches recomputes completions for the current input. With confirm
// set, a sole match equal to the typed word is accepted so the bar clears.
func (m *model) refreshMatches(confirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.selected = -1
	}

	if !confirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

func (m model) submit() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not write history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(input))

	if line, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.command(echo, strings.Fields(line))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	result, err := m.manifest.Evaluate(m.ctxFunc(), input)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(manifest.FormatResult(result))))
}

func (m model) command(echo tea.Cmd, fields []string) (model, tea.Cmd) {
	if len(fields) == 0 {
		return m, echo
	}

	name, args := fields[0], fields[1:]

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.list()))

	case "s", "show":
		out, err := m.show(args)
		if err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echo, tea.Println(out))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("unknown command: "+name+" (try :help)"),
		))
	}
}

// list renders each section name with its entry count.
func (m model) list() string {
	var b strings.Builder

	for _, name := range m.manifest.SortedSections() {
		section, _ := m.manifest.GetBySection(name)
		fmt.Fprintf(&b, "  %s %s\n", name,
			hintStyle.Render("["+strconv.Itoa(section.Len())+"]"))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) show(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: :show SECTION")
	}

	section, err := m.manifest.GetBySection(args[0])
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := section.FormatText(&b); err != nil {
		return "", err
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		source:  m.source,
		opts:    m.opts,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.manifest == nil:
			return editCancelledMsg{}
		}

		return editDoneMsg{manifest: cmd.manifest, source: cmd.source}
	})
}
