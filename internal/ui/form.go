package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldSpec struct {
	label       string
	placeholder string
	limit       int
}

// fieldSet is a column of labelled text inputs with one focused at a time.
type fieldSet struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newFieldSet(specs ...fieldSpec) fieldSet {
	fs := fieldSet{
		labels: make([]string, len(specs)),
		inputs: make([]textinput.Model, len(specs)),
	}
	for i, s := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = s.placeholder
		ti.CharLimit = s.limit
		ti.Width = 40
		fs.labels[i] = s.label
		fs.inputs[i] = ti
	}
	return fs
}

func (f *fieldSet) focusFirst() tea.Cmd {
	return f.focusAt(0)
}

func (f *fieldSet) focusAt(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = (i%len(f.inputs) + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *fieldSet) next() tea.Cmd { return f.focusAt(f.focus + 1) }

func (f *fieldSet) prev() tea.Cmd { return f.focusAt(f.focus - 1) }

// onLast reports whether the last input has focus.
func (f fieldSet) onLast() bool { return f.focus == len(f.inputs)-1 }

func (f *fieldSet) blur() {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
}

func (f fieldSet) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

// setValues fills inputs in order; missing values clear the input.
func (f *fieldSet) setValues(values ...string) {
	for i := range f.inputs {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		f.inputs[i].SetValue(v)
		f.inputs[i].CursorEnd()
	}
}

func (f *fieldSet) reset() {
	f.setValues()
	f.blur()
	f.focus = 0
}

func (f *fieldSet) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *fieldSet) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// view renders label/input pairs, highlighting the focused label.
func (f fieldSet) view(styles Styles, active bool) string {
	width := 0
	for _, l := range f.labels {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	var b strings.Builder
	for i, in := range f.inputs {
		label := padRight(f.labels[i]+":", width+2)
		if active && i == f.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(in.View())
		if i < len(f.inputs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
