package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agenda/internal/service"
)

type formField struct {
	key         string
	label       string
	placeholder string
}

var contactFields = []formField{
	{key: "name", label: "Name", placeholder: "Ana Torres"},
	{key: "phone", label: "Phone", placeholder: "+51 999 111 222"},
	{key: "email", label: "Email", placeholder: "ana@example.com"},
}

type formAction int

const (
	formEditing formAction = iota
	formCancelled
	formSubmitted
)

// contactForm collects every field of a new contact before anything is stored.
type contactForm struct {
	inputs []textinput.Model
	focus  int
	keys   formKeys
}

func newContactForm() *contactForm {
	inputs := make([]textinput.Model, 0, len(contactFields))
	for i, f := range contactFields {
		inp := newInput(f.label+": ", f.placeholder)
		inp.CharLimit = 128
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	return &contactForm{inputs: inputs, keys: FormKeyMap()}
}

// newInput builds a text input with a steady cursor.
func newInput(prompt, placeholder string) textinput.Model {
	inp := textinput.New()
	inp.Prompt = prompt
	inp.Placeholder = placeholder
	inp.PromptStyle = labelStyle
	inp.Cursor.SetMode(cursor.CursorStatic)
	return inp
}

func (f *contactForm) update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Cancel):
		return formCancelled, nil
	case key.Matches(msg, f.keys.Next):
		f.focusField(f.focus + 1)
		return formEditing, nil
	case key.Matches(msg, f.keys.Prev):
		f.focusField(f.focus - 1)
		return formEditing, nil
	case key.Matches(msg, f.keys.Submit):
		if f.focus < len(f.inputs)-1 {
			f.focusField(f.focus + 1)
			return formEditing, nil
		}
		return formSubmitted, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formEditing, cmd
}

func (f *contactForm) focusField(i int) {
	n := len(f.inputs)
	i = (i%n + n) % n
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// focusBlank moves focus to the field named in a validation error, if any.
func (f *contactForm) focusBlank(err error) {
	if !errors.Is(err, service.ErrBlankField) {
		return
	}
	for i, fld := range contactFields {
		if strings.HasPrefix(err.Error(), fld.key+":") {
			f.focusField(i)
			return
		}
	}
}

func (f *contactForm) value() service.NewContact {
	return service.NewContact{
		Name:  f.inputs[0].Value(),
		Phone: f.inputs[1].Value(),
		Email: f.inputs[2].Value(),
	}
}

func (f *contactForm) view() string {
	lines := []string{formTitleStyle.Render("New contact")}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "", formHintStyle.Render("enter: next/save  tab: next field  esc: cancel"))
	return formStyle.Render(strings.Join(lines, "\n"))
}
