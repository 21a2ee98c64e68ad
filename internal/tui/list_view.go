package tui

import (
	"fmt"
	"strings"

	"board-cli/internal/filter"
	"board-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pageSize = filter.PageSize

func (m appModel) filtered() []model.Item {
	return filter.Apply(m.items, m.search.Value(), m.category)
}

// resetPager recomputes the page count and returns to page 1. Narrowing the
// filter while sitting on a late page must not leave an out-of-range page.
func (m *appModel) resetPager() {
	n := len(m.filtered())
	if n == 0 {
		m.pager.SetTotalPages(1)
	} else {
		m.pager.SetTotalPages(n)
	}
	m.pager.Page = 0
	m.cursor = 0
}

func (m *appModel) clampCursor() {
	page := filter.Page(m.filtered(), m.pager.Page+1)
	if m.cursor >= len(page) {
		m.cursor = len(page) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		switch msg.String() {
		case "esc", "enter":
			m.searchActive = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.resetPager()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchActive = true
		m.search.Focus()
		return m, nil
	case "c":
		m.category = nextCategoryFilter(m.category)
		m.resetPager()
		return m, nil
	case "r":
		m.itemsLoading = true
		return m, m.loadItemsCmd(m.nextSeq())
	case "left", "h":
		m.pager.PrevPage()
		m.clampCursor()
		return m, nil
	case "right", "l":
		m.pager.NextPage()
		m.clampCursor()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(filter.Page(m.filtered(), m.pager.Page+1))-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		page := filter.Page(m.filtered(), m.pager.Page+1)
		if m.cursor < len(page) {
			it := page[m.cursor]
			m.view = viewDetail
			m.detailID = it.ID
			m.detail = nil
			m.detailErr = nil
			m.detailLoading = true
			return m, m.loadItemCmd(m.nextSeq(), it.ID)
		}
		return m, nil
	case "n":
		// Route guard: the form is only reachable with a session token.
		if m.token == "" {
			m.modal = modalLogin
			return m, nil
		}
		m.openCreateForm()
		return m, nil
	case "L":
		return m.toggleLogin()
	}
	return m, nil
}

// nextCategoryFilter cycles все -> недвижимость -> авто -> услуги -> все.
func nextCategoryFilter(c model.Category) model.Category {
	switch c {
	case "":
		return model.CategoryRealEstate
	case model.CategoryRealEstate:
		return model.CategoryAuto
	case model.CategoryAuto:
		return model.CategoryServices
	}
	return ""
}

func (m appModel) viewList() string {
	if m.itemsLoading {
		return styleMuted().Render("Загрузка…")
	}
	if m.itemsErr != nil {
		return renderViewError(*m.itemsErr, m.contentWidth())
	}

	var b strings.Builder

	catLabel := "Все"
	if m.category != "" {
		catLabel = string(m.category)
	}
	controls := renderInputLine(36, m.search.View()) +
		"   " + styleMuted().Render("Категория: ") + catLabel
	b.WriteString(controls)
	b.WriteString("\n\n")

	items := m.filtered()
	if len(items) == 0 {
		b.WriteString(styleMuted().Render(msgNoListings))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(msgNoListingsSub))
		b.WriteString("\n\n")
		b.WriteString(m.listHelp())
		return b.String()
	}

	page := filter.Page(items, m.pager.Page+1)
	for i, it := range page {
		b.WriteString(m.renderCard(it, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s  %s\n\n",
		m.pager.View(),
		styleMuted().Render(fmt.Sprintf("стр. %d/%d · всего %d", m.pager.Page+1, filter.PageCount(len(items)), len(items)))))
	b.WriteString(m.listHelp())
	return b.String()
}

func (m appModel) listHelp() string {
	help := "enter: открыть  /: поиск  c: категория  ←/→: страницы  r: обновить  q: выход"
	if m.token != "" {
		help = "n: разместить  " + help
	}
	return styleMuted().Render(help)
}

func (m appModel) contentWidth() int {
	w := m.width - 2
	if w < 40 {
		w = 40
	}
	if w > 96 {
		w = 96
	}
	return w
}

func (m appModel) renderCard(it model.Item, selected bool) string {
	w := m.contentWidth() - 4

	border := colorCardBorder
	if selected {
		border = colorSelectedBorder
	}

	title := lipgloss.NewStyle().Bold(true).Render(truncateLine(it.Name, w))
	meta := styleMuted().Render(truncateLine(string(it.Category)+" · "+it.Location, w))
	line := title + "\n" + meta
	if s := cardSummary(it); s != "" {
		line += "\n" + truncateLine(s, w)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(w).
		Render(line)
}

// cardSummary picks the one category-specific line worth showing on a card.
func cardSummary(it model.Item) string {
	switch it.Category {
	case model.CategoryRealEstate:
		if it.Price != nil {
			return fmt.Sprintf("%s руб.", trimFloat(*it.Price))
		}
	case model.CategoryAuto:
		parts := []string{}
		if it.Brand != "" {
			parts = append(parts, it.Brand)
		}
		if it.Model != "" {
			parts = append(parts, it.Model)
		}
		if it.Year != nil {
			parts = append(parts, fmt.Sprintf("%d г.", *it.Year))
		}
		return strings.Join(parts, " ")
	case model.CategoryServices:
		if it.Cost != nil {
			return fmt.Sprintf("%s руб.", trimFloat(*it.Cost))
		}
	}
	return ""
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
