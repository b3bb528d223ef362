package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mario1918/TestCaseGenie/client"
)

const (
	fieldTitle = iota
	fieldSteps
	fieldExpected
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Steps", "Expected Result", "Priority"}

// caseForm is the inline add/edit form of the test case view.
type caseForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	// key is the row being edited, or 0 when adding.
	key int
	err string
}

func newCaseForm(key int, f client.Fields) *caseForm {
	form := &caseForm{key: key}
	placeholders := [fieldCount]string{
		"Short description of the scenario",
		"1. First step 2. Second step",
		"What should happen",
		"High, Medium or Low",
	}
	values := [fieldCount]string{f.Title, f.Steps, f.ExpectedResult, f.Priority}
	for i := range form.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 2000
		ti.Width = 70
		ti.SetValue(values[i])
		form.inputs[i] = ti
	}
	form.inputs[fieldTitle].Focus()
	return form
}

func (f *caseForm) editing() bool { return f.key != 0 }

func (f *caseForm) fields() client.Fields {
	return client.Fields{
		Title:          f.inputs[fieldTitle].Value(),
		Steps:          f.inputs[fieldSteps].Value(),
		ExpectedResult: f.inputs[fieldExpected].Value(),
		Priority:       f.inputs[fieldPriority].Value(),
	}
}

func (f *caseForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *caseForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *caseForm) view() string {
	var sb strings.Builder
	heading := "Add Test Case"
	if f.editing() {
		heading = "Edit Test Case"
	}
	sb.WriteString(titleStyle.Render(heading))
	sb.WriteString("\n\n")
	for i, in := range f.inputs {
		sb.WriteString(labelStyle.Render(fieldLabels[i]))
		sb.WriteString("\n")
		sb.WriteString(in.View())
		sb.WriteString("\n")
	}
	if f.err != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(f.err))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("tab/shift+tab: move • enter: save • esc: cancel"))
	return formBoxStyle.Render(sb.String())
}
