// Package tui is the interactive terminal client: an issue browser, a free
// text story editor and the generated test case table.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/mario1918/TestCaseGenie/client"
	"github.com/mario1918/TestCaseGenie/testcase"
	"github.com/mario1918/TestCaseGenie/tracker"
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 5 * time.Second

// requestTimeout bounds tracker calls. Generation uses the gateway client's
// own timeout.
const requestTimeout = 30 * time.Second

type view int

const (
	viewIssues view = iota
	viewStory
	viewCases
	viewCount
)

var viewNames = [viewCount]string{"Issues", "User Story", "Test Cases"}

var issueTypeCycle = []string{"Story", "Bug", "Task", "Sub-task", ""}

// IssueSource lists tracker issues. *tracker.Client satisfies it.
type IssueSource interface {
	Issues(ctx context.Context, q tracker.Query) (*tracker.IssuePage, error)
	FilterOptions(ctx context.Context, boardID int) *tracker.FilterOptions
}

// Options configures the terminal client.
type Options struct {
	PageSize               int
	BoardID                int
	BrowseURL              string
	ExportDir              string
	RejectEmptyIssuePrompt bool
	// MarkdownStyle is a glamour style name. Empty selects the style from
	// the terminal background.
	MarkdownStyle string
	Logger        *slog.Logger
}

type issuesLoadedMsg struct {
	page *tracker.IssuePage
	err  error
}

type optionsLoadedMsg struct {
	options *tracker.FilterOptions
}

type generatedMsg struct {
	cases   []testcase.TestCase
	message string
	err     error
}

type exportedMsg struct {
	path string
	err  error
}

type clearToastMsg struct {
	id int
}

type toast struct {
	id    int
	text  string
	isErr bool
}

// Model is the bubbletea model of the terminal client.
type Model struct {
	ctx    context.Context
	opts   Options
	issues IssueSource
	gen    client.Generator
	state  *client.State
	logger *slog.Logger
	now    func() time.Time

	active     view
	issueTable table.Model
	caseTable  table.Model
	story      textarea.Model
	jqlInput   textinput.Model
	editingJQL bool
	form       *caseForm
	detail     string
	showDetail bool

	spinner  spinner.Model
	loading  bool
	fetching bool
	toast    toast
	toastSeq int

	renderer *glamour.TermRenderer
	width    int
	height   int
}

// New creates the terminal client model.
func New(ctx context.Context, issues IssueSource, gen client.Generator, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	issueTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Key", Width: 10},
			{Title: "Summary", Width: 44},
			{Title: "Type", Width: 10},
			{Title: "Status", Width: 12},
			{Title: "Priority", Width: 9},
			{Title: "Assignee", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	caseTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Title", Width: 30},
			{Title: "Steps", Width: 36},
			{Title: "Expected Result", Width: 28},
			{Title: "Priority", Width: 9},
			{Title: "Status", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	story := textarea.New()
	story.Placeholder = "As a <role>, I want <goal> so that <benefit>..."
	story.CharLimit = 0
	story.SetWidth(80)
	story.SetHeight(10)
	story.Focus()

	jql := textinput.New()
	jql.Prompt = "JQL> "
	jql.Placeholder = `issuetype = "Story" AND status = "To Do"`
	jql.CharLimit = 500
	jql.Width = 70

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	var renderer *glamour.TermRenderer
	if opts.MarkdownStyle == "" {
		renderer, _ = glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	} else {
		renderer, _ = glamour.NewTermRenderer(glamour.WithStylePath(opts.MarkdownStyle), glamour.WithWordWrap(80))
	}

	return Model{
		ctx:        ctx,
		opts:       opts,
		issues:     issues,
		gen:        gen,
		state:      client.NewState(opts.PageSize),
		logger:     opts.Logger,
		now:        time.Now,
		issueTable: issueTable,
		caseTable:  caseTable,
		story:      story,
		jqlInput:   jql,
		spinner:    sp,
		renderer:   renderer,
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchIssues(), m.fetchOptions(), textarea.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.story.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case issuesLoadedMsg:
		m.fetching = false
		if msg.err != nil {
			m.logger.Warn("Failed to load issues", "error", msg.err)
			cmd := m.notify(fmt.Sprintf("Failed to load issues: %v", msg.err), true)
			return m, cmd
		}
		m.state.SetIssues(msg.page)
		m.syncIssueRows()
		return m, nil

	case optionsLoadedMsg:
		if msg.options != nil {
			m.state.Options = msg.options
		}
		return m, nil

	case generatedMsg:
		m.loading = false
		if msg.err != nil {
			cmd := m.notify(msg.err.Error(), true)
			return m, cmd
		}
		m.state.Table.Replace(msg.cases)
		m.syncCaseRows()
		m.active = viewCases
		m.story.Blur()
		cmd := m.notify(msg.message, false)
		return m, cmd

	case exportedMsg:
		if msg.err != nil {
			cmd := m.notify(fmt.Sprintf("Export failed: %v", msg.err), true)
			return m, cmd
		}
		cmd := m.notify("Exported to "+msg.path, false)
		return m, cmd

	case clearToastMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Inputs capture every other key while they are open.
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.editingJQL {
		return m.handleJQLKey(msg)
	}

	switch msg.String() {
	case "tab":
		return m.switchView((m.active + 1) % viewCount)
	case "shift+tab":
		return m.switchView((m.active + viewCount - 1) % viewCount)
	}

	switch m.active {
	case viewIssues:
		return m.handleIssuesKey(msg)
	case viewStory:
		return m.handleStoryKey(msg)
	default:
		return m.handleCasesKey(msg)
	}
}

func (m Model) switchView(v view) (tea.Model, tea.Cmd) {
	m.active = v
	m.showDetail = false
	if v == viewStory {
		cmd := m.story.Focus()
		return m, cmd
	}
	m.story.Blur()
	return m, nil
}

func (m Model) handleIssuesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		if m.fetching || !m.state.Pager.Next() {
			return m, nil
		}
		return m.startFetch()
	case "p":
		if m.fetching || !m.state.Pager.Prev() {
			return m, nil
		}
		return m.startFetch()
	case "r":
		return m.startFetch()
	case "t":
		f := m.state.Filters
		f.IssueType = cycle(issueTypeCycle, f.IssueType)
		f.JQL = ""
		m.state.ApplyFilters(f)
		return m.startFetch()
	case "o":
		f := m.state.Filters
		f.Component = cycle(append(m.state.Options.ComponentNames(), ""), f.Component)
		f.JQL = ""
		m.state.ApplyFilters(f)
		return m.startFetch()
	case "s":
		f := m.state.Filters
		f.Sprint = cycle(append(m.state.Options.SprintNames(), ""), f.Sprint)
		f.JQL = ""
		m.state.ApplyFilters(f)
		return m.startFetch()
	case "c":
		m.state.ClearFilters()
		return m.startFetch()
	case "/":
		m.editingJQL = true
		m.jqlInput.SetValue(m.state.Filters.JQL)
		cmd := m.jqlInput.Focus()
		return m, cmd
	case "enter":
		issue, ok := m.selectedIssue()
		if !ok {
			return m, nil
		}
		m.showDetail = !m.showDetail
		if m.showDetail {
			m.detail = m.renderIssue(issue)
		}
		return m, nil
	case "esc":
		m.showDetail = false
		return m, nil
	case "g":
		issue, ok := m.selectedIssue()
		if !ok || m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.generateFromIssue(issue))
	}

	var cmd tea.Cmd
	m.issueTable, cmd = m.issueTable.Update(msg)
	if m.showDetail {
		if issue, ok := m.selectedIssue(); ok {
			m.detail = m.renderIssue(issue)
		}
	}
	return m, cmd
}

func (m Model) handleJQLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editingJQL = false
		m.jqlInput.Blur()
		jql := strings.TrimSpace(m.jqlInput.Value())
		if jql == "" {
			m.state.ClearFilters()
		} else {
			m.state.ApplyFilters(tracker.Filters{JQL: jql})
		}
		return m.startFetch()
	case tea.KeyEsc:
		m.editingJQL = false
		m.jqlInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.jqlInput, cmd = m.jqlInput.Update(msg)
	return m, cmd
}

func (m Model) handleStoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlS:
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.generateFromStory(m.story.Value()))
	case tea.KeyEsc:
		m.story.Blur()
		return m, nil
	}

	if !m.story.Focused() {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if msg.String() == "i" {
			cmd := m.story.Focus()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.story, cmd = m.story.Update(msg)
	return m, cmd
}

func (m Model) handleCasesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		m.form = newCaseForm(0, client.Fields{})
		return m, textinput.Blink
	case "e":
		row, ok := m.selectedCase()
		if !ok {
			return m, nil
		}
		m.form = newCaseForm(row.Key, client.Fields{
			Title:          row.Case.Title,
			Steps:          row.Case.Steps.String(),
			ExpectedResult: row.Case.ExpectedResult.String(),
			Priority:       string(row.Case.Priority),
		})
		return m, textinput.Blink
	case "d":
		row, ok := m.selectedCase()
		if !ok {
			return m, nil
		}
		if err := m.state.Table.Delete(row.Key); err != nil {
			cmd := m.notify(err.Error(), true)
			return m, cmd
		}
		m.syncCaseRows()
		cmd := m.notify("Test case deleted.", false)
		return m, cmd
	case "s":
		row, ok := m.selectedCase()
		if !ok {
			return m, nil
		}
		if _, err := m.state.Table.CycleExecutionStatus(row.Key); err != nil {
			cmd := m.notify(err.Error(), true)
			return m, cmd
		}
		m.syncCaseRows()
		return m, nil
	case "x":
		rows, err := m.state.Table.ExportRows()
		if err != nil {
			cmd := m.notify("No test cases to export.", true)
			return m, cmd
		}
		return m, m.export(rows)
	}

	var cmd tea.Cmd
	m.caseTable, cmd = m.caseTable.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		fields := m.form.fields()
		adding := !m.form.editing()
		var err error
		if adding {
			_, err = m.state.Table.Add(fields)
		} else {
			err = m.state.Table.Edit(m.form.key, fields)
		}
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.syncCaseRows()
		text := "Test case updated."
		if adding {
			m.caseTable.GotoBottom()
			text = "Test case added."
		}
		cmd := m.notify(text, false)
		return m, cmd
	}
	return m, m.form.update(msg)
}

// forward passes non-key messages, such as cursor blinks, to the focused input.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.form != nil:
		cmd = m.form.update(msg)
	case m.editingJQL:
		m.jqlInput, cmd = m.jqlInput.Update(msg)
	case m.active == viewStory:
		m.story, cmd = m.story.Update(msg)
	}
	return m, cmd
}

func (m Model) startFetch() (tea.Model, tea.Cmd) {
	m.fetching = true
	m.showDetail = false
	return m, tea.Batch(m.spinner.Tick, m.fetchIssues())
}

func (m Model) fetchIssues() tea.Cmd {
	if m.issues == nil {
		return nil
	}
	q := m.state.Query()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()
		page, err := m.issues.Issues(ctx, q)
		return issuesLoadedMsg{page: page, err: err}
	}
}

func (m Model) fetchOptions() tea.Cmd {
	if m.issues == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()
		return optionsLoadedMsg{options: m.issues.FilterOptions(ctx, m.opts.BoardID)}
	}
}

// resultNotifier keeps the orchestrator's last feedback for the UI thread.
type resultNotifier struct {
	success string
	err     error
}

func (n *resultNotifier) Loading(string) func() { return func() {} }
func (n *resultNotifier) Success(msg string)    { n.success = msg }
func (n *resultNotifier) Error(err error)       { n.err = err }

// orchestrate runs one generation against a scratch table; the result is
// applied to the session table on the UI goroutine.
func (m Model) orchestrate(submit func(context.Context, *client.Orchestrator) ([]testcase.TestCase, error)) tea.Cmd {
	return func() tea.Msg {
		n := &resultNotifier{}
		o := client.NewOrchestrator(m.gen, client.NewTable(), n,
			client.WithRejectEmptyIssuePrompt(m.opts.RejectEmptyIssuePrompt),
			client.WithOrchestratorLogger(m.logger),
		)
		cases, err := submit(m.ctx, o)
		return generatedMsg{cases: cases, message: n.success, err: err}
	}
}

func (m Model) generateFromStory(story string) tea.Cmd {
	return m.orchestrate(func(ctx context.Context, o *client.Orchestrator) ([]testcase.TestCase, error) {
		return o.SubmitStory(ctx, story)
	})
}

func (m Model) generateFromIssue(issue tracker.Issue) tea.Cmd {
	return m.orchestrate(func(ctx context.Context, o *client.Orchestrator) ([]testcase.TestCase, error) {
		return o.SubmitIssue(ctx, issue)
	})
}

func (m Model) export(rows []client.DisplayRow) tea.Cmd {
	dir, now := m.opts.ExportDir, m.now()
	return func() tea.Msg {
		path, err := client.ExportXLSX(rows, dir, now)
		return exportedMsg{path: path, err: err}
	}
}

func (m *Model) notify(text string, isErr bool) tea.Cmd {
	if text == "" {
		return nil
	}
	m.toastSeq++
	m.toast = toast{id: m.toastSeq, text: text, isErr: isErr}
	id := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

func (m *Model) syncIssueRows() {
	rows := make([]table.Row, 0, len(m.state.Issues))
	for _, is := range m.state.Issues {
		rows = append(rows, table.Row{
			is.Key,
			client.Truncate(is.Summary, 40),
			is.IssueType,
			is.Status,
			client.OrPlaceholder(is.Priority, client.PlaceholderPriority),
			client.OrPlaceholder(is.Assignee, client.Unassigned),
		})
	}
	m.issueTable.SetRows(rows)
	m.issueTable.SetCursor(0)
}

func (m *Model) syncCaseRows() {
	rows := make([]table.Row, 0, m.state.Table.Len())
	for _, r := range m.state.Table.Rows() {
		d := client.Display(r)
		rows = append(rows, table.Row{
			d.ID,
			d.Title,
			strings.ReplaceAll(d.Steps, "\n", " "),
			strings.ReplaceAll(d.ExpectedResult, "\n", " "),
			d.Priority,
			d.Status,
		})
	}
	cursor := m.caseTable.Cursor()
	m.caseTable.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	m.caseTable.SetCursor(max(cursor, 0))
}

func (m Model) selectedIssue() (tracker.Issue, bool) {
	return m.state.Issue(m.issueTable.Cursor())
}

func (m Model) selectedCase() (client.Row, bool) {
	rows := m.state.Table.Rows()
	i := m.caseTable.Cursor()
	if i < 0 || i >= len(rows) {
		return client.Row{}, false
	}
	return rows[i], true
}

func (m Model) renderIssue(is tracker.Issue) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s: %s\n\n", is.Key, client.OrPlaceholder(is.Summary, client.PlaceholderText))
	fmt.Fprintf(&md, "**Assignee:** %s  \n", client.OrPlaceholder(is.Assignee, client.Unassigned))
	fmt.Fprintf(&md, "**Reporter:** %s\n\n", client.OrPlaceholder(is.Reporter, client.PlaceholderText))
	md.WriteString("---\n\n")
	md.WriteString(client.FormatDescription(is.Description))
	md.WriteString("\n")

	badges := strings.Join([]string{
		badge(client.OrPlaceholder(is.IssueType, client.PlaceholderText), client.IssueTypeColor(is.IssueType)),
		badge(client.OrPlaceholder(is.Status, client.PlaceholderText), client.StatusColor(is.Status)),
		badge(client.PriorityLabel(is.Priority), client.PriorityColor(is.Priority)),
	}, " ")

	body := md.String()
	if m.renderer != nil {
		if out, err := m.renderer.Render(body); err == nil {
			body = out
		}
	}
	if link := client.BrowseURL(m.opts.BrowseURL, is.Key); link != "" {
		body += helpStyle.Render("Open in tracker: "+link) + "\n"
	}
	return badges + "\n" + body
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	tabs := make([]string, 0, viewCount)
	for v := view(0); v < viewCount; v++ {
		if v == m.active {
			tabs = append(tabs, activeTab.Render(viewNames[v]))
		} else {
			tabs = append(tabs, inactiveTab.Render(viewNames[v]))
		}
	}
	sb.WriteString(titleStyle.Render("TestCaseGenie"))
	sb.WriteString("  ")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")

	switch m.active {
	case viewIssues:
		sb.WriteString(m.issuesView())
	case viewStory:
		sb.WriteString(m.storyView())
	default:
		sb.WriteString(m.casesView())
	}

	sb.WriteString("\n")
	if m.loading {
		sb.WriteString(m.spinner.View() + " " + client.MsgGenerating + "\n")
	} else if m.fetching {
		sb.WriteString(m.spinner.View() + " Loading issues...\n")
	}
	if m.toast.text != "" {
		if m.toast.isErr {
			sb.WriteString(errorStyle.Render("✗ " + m.toast.text))
		} else {
			sb.WriteString(successStyle.Render("✓ " + m.toast.text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) issuesView() string {
	var sb strings.Builder

	filter := m.state.Filters.BuildJQL()
	if filter == "" {
		filter = "none"
	}
	sb.WriteString(mutedStyle.Render("Filter: " + filter))
	sb.WriteString("\n")

	if m.editingJQL {
		sb.WriteString(m.jqlInput.View())
		sb.WriteString("\n")
	}

	if len(m.state.Issues) == 0 {
		sb.WriteString("\n" + mutedStyle.Render(client.NoIssuesMessage) + "\n")
	} else {
		sb.WriteString(m.issueTable.View())
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render(m.state.Pager.RangeLabel()))
	sb.WriteString("\n")

	if m.showDetail {
		sb.WriteString(detailBoxStyle.Render(m.detail))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("↑/↓: select • enter: details • g: generate • n/p: page • t/o/s: type/component/sprint • /: JQL • c: clear • tab: switch view • q: quit"))
	return sb.String()
}

func (m Model) storyView() string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("User Story"))
	sb.WriteString("\n")
	sb.WriteString(m.story.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("ctrl+s: generate • esc: leave editor • i: edit • tab: switch view"))
	return sb.String()
}

func (m Model) casesView() string {
	var sb strings.Builder

	if m.state.Table.Empty() {
		sb.WriteString(mutedStyle.Render(client.EmptyTableMessage))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.caseTable.View())
		sb.WriteString("\n")
		if row, ok := m.selectedCase(); ok {
			sb.WriteString(detailBoxStyle.Render(caseDetail(client.Display(row))))
			sb.WriteString("\n")
		}
	}

	if m.form != nil {
		sb.WriteString(m.form.view())
		sb.WriteString("\n")
	}

	help := "a: add • e: edit • d: delete • s: cycle status • x: export • tab: switch view • q: quit"
	if m.state.Table.Empty() {
		help = "a: add • tab: switch view • q: quit"
	}
	sb.WriteString(helpStyle.Render(help))
	return sb.String()
}

func caseDetail(d client.DisplayRow) string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render(d.ID + "  " + d.Title))
	sb.WriteString("  ")
	sb.WriteString(badge(d.Priority, d.PriorityColor))
	sb.WriteString(" ")
	sb.WriteString(badge(d.Status, statusBadgeColor(d.Status)))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Steps"))
	sb.WriteString("\n" + d.Steps + "\n\n")
	sb.WriteString(labelStyle.Render("Expected Result"))
	sb.WriteString("\n" + d.ExpectedResult)
	return sb.String()
}

func statusBadgeColor(status string) string {
	switch testcase.ExecutionStatus(status) {
	case testcase.StatusPass:
		return "#82B536"
	case testcase.StatusFail:
		return "#E2483D"
	case testcase.StatusBlocked:
		return "#F68909"
	default:
		return "#6C757D"
	}
}

// cycle returns the value after current in values, wrapping to the first.
func cycle(values []string, current string) string {
	if len(values) == 0 {
		return current
	}
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
