package tui

import (
	"fmt"
	"strings"

	"board-cli/internal/form"
	"board-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		m.detail = nil
		m.detailErr = nil
		return m, nil
	case "L":
		return m.toggleLogin()
	case "e":
		// Edit and delete are session-gated affordances.
		if m.token == "" || m.detail == nil {
			return m, nil
		}
		m.openEditForm(m.detail.ID)
		return m, m.loadEditItemCmd(m.nextSeq(), m.detailID)
	case "d":
		if m.token == "" || m.detail == nil {
			return m, nil
		}
		m.modal = modalConfirmDelete
		m.confirmFocus = confirmFocusCancel
		return m, nil
	}
	return m, nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deleting {
		return m, nil // request in flight; wait for the outcome
	}
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.modal = modalNone
			return m, nil
		}
		m.deleting = true
		return m, m.deleteItemCmd(m.nextSeq(), m.detailID)
	}
	return m, nil
}

func (m appModel) viewDetail() string {
	if m.detailLoading {
		return styleMuted().Render("Загрузка…")
	}
	if m.detailErr != nil {
		return renderViewError(*m.detailErr, m.contentWidth())
	}
	if m.detail == nil {
		return ""
	}
	it := *m.detail
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(it.Name))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(string(it.Category) + " · " + it.Location))
	b.WriteString("\n")
	if it.Image != "" {
		b.WriteString(styleMuted().Render("Фото: " + it.Image))
		b.WriteString("\n")
	}

	if desc := renderMarkdown(it.Description, w); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	if attrs := categoryAttributes(it); len(attrs) > 0 {
		b.WriteString("\n")
		for _, a := range attrs {
			b.WriteString(fmt.Sprintf("%s %s\n", styleMuted().Render(a.label+":"), a.value))
		}
	}

	b.WriteString("\n")
	help := "esc: назад  q: выход"
	if m.token != "" {
		help = "e: редактировать  d: удалить  " + help
	}
	b.WriteString(styleMuted().Render(help))
	return b.String()
}

type attribute struct {
	label string
	value string
}

// categoryAttributes lists the selected category's filled fields in schema
// order; fields from other categories are ignored even when set.
func categoryAttributes(it model.Item) []attribute {
	var out []attribute
	for _, f := range form.CategoryFields(it.Category) {
		v := fieldDisplayValue(it, f.Key)
		if v == "" {
			continue
		}
		out = append(out, attribute{label: f.Label, value: v})
	}
	return out
}

func fieldDisplayValue(it model.Item, key string) string {
	switch key {
	case "propertyType":
		return it.PropertyType
	case "area":
		return floatValue(it.Area)
	case "rooms":
		return intValue(it.Rooms)
	case "price":
		return floatValue(it.Price)
	case "brand":
		return it.Brand
	case "model":
		return it.Model
	case "year":
		return intValue(it.Year)
	case "mileage":
		return intValue(it.Mileage)
	case "serviceType":
		return it.ServiceType
	case "experience":
		return intValue(it.Experience)
	case "cost":
		return floatValue(it.Cost)
	case "workSchedule":
		return it.WorkSchedule
	}
	return ""
}

func floatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return trimFloat(*v)
}

func intValue(v *int) string {
	if v == nil {
		return ""
	}
	return fmtInt(*v)
}
