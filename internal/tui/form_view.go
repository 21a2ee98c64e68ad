package tui

import (
	"context"
	"strings"

	"board-cli/internal/form"
	"board-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField pairs a schema entry with its live input. The category picker
// carries no textinput; it is cycled with left/right instead.
type formField struct {
	spec   form.FieldSpec
	input  textinput.Model
	picker bool
}

type formState struct {
	wf *form.Workflow

	// Edit mode fetches the item before the fields become editable.
	loading bool
	loadErr *viewError

	submitting bool

	fields []formField
	focus  int
}

func (m *appModel) openCreateForm() {
	m.form = &formState{wf: form.NewCreate(m.store)}
	m.form.rebuildInputs()
	m.view = viewForm
}

func (m *appModel) openEditForm(id int) {
	m.form = &formState{wf: form.NewEdit(id), loading: true}
	m.view = viewForm
}

// rebuildInputs regenerates the field list for the workflow's current step,
// seeding each input from the draft. Called on step transitions and after a
// fetch-driven populate.
func (f *formState) rebuildInputs() {
	var specs []form.FieldSpec
	switch f.wf.Step() {
	case form.Step1:
		specs = form.BasicFields()
	case form.Step2:
		specs = form.CategoryFields(f.wf.Draft().Category)
	}

	f.fields = f.fields[:0]
	for _, s := range specs {
		if s.Key == "type" {
			f.fields = append(f.fields, formField{spec: s, picker: true})
			continue
		}
		in := textinput.New()
		in.CharLimit = 200
		in.Width = 40
		in.SetValue(f.wf.FieldValue(s.Key))
		f.fields = append(f.fields, formField{spec: s, input: in})
	}

	if f.focus >= len(f.fields) {
		f.focus = 0
	}
	f.applyFocus()
}

func (f *formState) applyFocus() {
	for i := range f.fields {
		if i == f.focus && !f.fields[i].picker {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

func (f *formState) focusNext(delta int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.applyFocus()
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.view = viewList
		return m, nil
	}
	if f.submitting {
		return m, nil
	}
	if f.loading || f.loadErr != nil {
		if msg.String() == "esc" {
			return m.leaveForm()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		if f.wf.Step() == form.Step2 {
			f.wf.Back()
			f.focus = 0
			f.rebuildInputs()
			return m, nil
		}
		return m.leaveForm()
	case "ctrl+d":
		// Throw away the draft and start the create form over.
		if !f.wf.EditMode() {
			f.wf.Discard()
			m.form = &formState{wf: form.NewCreate(m.store)}
			m.form.rebuildInputs()
		}
		return m, nil
	case "tab", "down":
		f.focusNext(1)
		return m, nil
	case "shift+tab", "up":
		f.focusNext(-1)
		return m, nil
	case "left", "right":
		if f.focus < len(f.fields) && f.fields[f.focus].picker {
			dir := 1
			if msg.String() == "left" {
				dir = -1
			}
			f.wf.SetCategory(cycleCategory(f.wf.Draft().Category, dir))
			return m, nil
		}
	case "enter":
		return m.advanceForm()
	}

	// Everything else edits the focused input and writes through to the
	// draft, so create mode autosaves on every keystroke.
	if f.focus < len(f.fields) && !f.fields[f.focus].picker {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		f.wf.SetField(f.fields[f.focus].spec.Key, f.fields[f.focus].input.Value())
		return m, cmd
	}
	return m, nil
}

func (m appModel) leaveForm() (tea.Model, tea.Cmd) {
	edit := m.form.wf.EditMode()
	m.form = nil
	if edit {
		m.view = viewDetail
	} else {
		// The draft slot keeps whatever was entered; reopening restores it.
		m.view = viewList
	}
	return m, nil
}

func (m appModel) advanceForm() (tea.Model, tea.Cmd) {
	f := m.form
	switch f.wf.Step() {
	case form.Step1:
		if f.wf.Next() {
			f.focus = 0
		}
		f.rebuildInputs()
		return m, nil
	case form.Step2:
		// Validate synchronously so inline errors render before any request.
		if !f.wf.Validate() {
			return m, nil
		}
		f.submitting = true
		return m, m.submitCmd(m.nextSeq())
	}
	return m, nil
}

// submitCmd snapshots the draft and mode before the command goroutine
// starts. The workflow itself stays on the event loop: the view reads it
// while the request is in flight, so the command must not touch it.
func (m appModel) submitCmd(seq int) tea.Cmd {
	draft := m.form.wf.Draft()
	edit := m.form.wf.EditMode()
	id := m.form.wf.EditID()
	c := m.client
	return func() tea.Msg {
		var it model.Item
		var err error
		if edit {
			it, err = c.UpdateItem(context.Background(), id, draft)
		} else {
			it, err = c.CreateItem(context.Background(), draft)
		}
		return submitDoneMsg{seq: seq, item: it, err: err}
	}
}

func cycleCategory(c model.Category, dir int) model.Category {
	cats := model.Categories()
	for i, v := range cats {
		if v == c {
			return cats[(i+dir+len(cats))%len(cats)]
		}
	}
	if dir < 0 {
		return cats[len(cats)-1]
	}
	return cats[0]
}

func (m appModel) viewForm() string {
	f := m.form
	if f == nil {
		return ""
	}

	title := "Разместить объявление"
	if f.wf.EditMode() {
		title = "Редактирование объявления"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("  ")
	b.WriteString(styleMuted().Render(stepLabel(f.wf.Step())))
	b.WriteString("\n\n")

	if f.loading {
		b.WriteString(styleMuted().Render("Загрузка…"))
		return b.String()
	}
	if f.loadErr != nil {
		b.WriteString(renderViewError(*f.loadErr, m.contentWidth()))
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("esc: назад"))
		return b.String()
	}

	if f.wf.Step() == form.Step2 && len(f.fields) == 0 {
		b.WriteString(styleMuted().Render(form.StepHint))
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("esc: назад"))
		return b.String()
	}

	for i, fld := range f.fields {
		label := fld.spec.Label
		if fld.spec.Required {
			label += " *"
		}
		b.WriteString(styleMuted().Render(label))
		b.WriteString("\n")
		if fld.picker {
			b.WriteString(renderCategoryPicker(f.wf.Draft().Category, i == f.focus))
		} else {
			b.WriteString(renderInputLine(44, fld.input.View()))
		}
		b.WriteString("\n")
		if msg := f.wf.Err(fld.spec.Key); msg != "" {
			b.WriteString(styleError().Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if f.submitting {
		b.WriteString(styleMuted().Render("Сохранение…"))
		return b.String()
	}
	b.WriteString(styleMuted().Render(formHelp(f.wf)))
	return b.String()
}

func stepLabel(s form.Step) string {
	if s == form.Step2 {
		return "Шаг 2 из 2"
	}
	return "Шаг 1 из 2"
}

func renderCategoryPicker(c model.Category, focused bool) string {
	value := "— выберите —"
	if c != "" {
		value = string(c)
	}
	if focused {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("◂ " + value + " ▸")
	}
	return value
}

func formHelp(wf *form.Workflow) string {
	discard := ""
	if !wf.EditMode() {
		discard = "  ctrl+d: очистить черновик"
	}
	switch wf.Step() {
	case form.Step2:
		action := "опубликовать"
		if wf.EditMode() {
			action = "сохранить"
		}
		return "enter: " + action + "  tab: поле" + discard + "  esc: назад к шагу 1"
	default:
		return "enter: далее  tab: поле  ←/→: категория" + discard + "  esc: отмена"
	}
}
