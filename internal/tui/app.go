package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"board-cli/internal/api"
	"board-cli/internal/model"
	"board-cli/internal/store"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	msgSaveFailed    = "Ошибка при сохранении объявления. Попробуйте позже."
	msgDeleteFailed  = "Произошла ошибка при удалении"
	msgListFailed    = "Произошла ошибка при загрузке объявлений. Попробуйте позже."
	msgDetailFailed  = "Не удалось загрузить объявление."
	msgNoListings    = "Объявления не найдены"
	msgNoListingsSub = "Попробуйте изменить запрос или выбрать другую категорию"
	msgLoginFailed   = "Не удалось войти. Попробуйте позже."
)

type appModel struct {
	client *api.Client
	store  *store.Store
	token  string

	width  int
	height int

	view  view
	modal modalKind

	// Listing browser.
	items        []model.Item
	itemsLoading bool
	itemsErr     *viewError
	search       textinput.Model
	searchActive bool
	category     model.Category // "" = all categories
	pager        paginator.Model
	cursor       int

	// Item detail.
	detailID      int
	detail        *model.Item
	detailLoading bool
	detailErr     *viewError
	confirmFocus  confirmModalFocus
	deleting      bool

	// Item form.
	form *formState

	// Login modal.
	login loginState

	// Error modal.
	errorTitle string
	errorMsg   string

	// seq numbers requests so superseded responses are discarded instead of
	// mutating a view that moved on.
	seq int
}

// Run starts the interactive TUI.
func Run(client *api.Client, st *store.Store) error {
	m := newAppModel(client, st)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newAppModel(client *api.Client, st *store.Store) appModel {
	m := appModel{
		client: client,
		store:  st,
		view:   viewList,
	}
	if tok, ok := st.Token(); ok {
		m.token = tok
	}

	m.search = textinput.New()
	m.search.Placeholder = "Поиск по названию"
	m.search.CharLimit = 80
	m.search.Width = 32

	m.pager = paginator.New()
	m.pager.Type = paginator.Dots
	m.pager.PerPage = pageSize
	m.pager.ActiveDot = lipgloss.NewStyle().Foreground(colorAccent).Render("•")
	m.pager.InactiveDot = styleMuted().Render("•")

	m.login = newLoginState()
	return m
}

func (m appModel) Init() tea.Cmd {
	return m.loadItemsCmd(m.seq)
}

func (m *appModel) nextSeq() int {
	m.seq++
	return m.seq
}

func (m appModel) loadItemsCmd(seq int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		items, err := c.ListItems(context.Background())
		return itemsLoadedMsg{seq: seq, items: items, err: err}
	}
}

func (m appModel) loadItemCmd(seq, id int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		it, err := c.GetItem(context.Background(), id)
		return itemLoadedMsg{seq: seq, id: id, item: it, err: err}
	}
}

func (m appModel) loadEditItemCmd(seq, id int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		it, err := c.GetItem(context.Background(), id)
		return editLoadedMsg{seq: seq, id: id, item: it, err: err}
	}
}

func (m appModel) deleteItemCmd(seq, id int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.DeleteItem(context.Background(), id)
		return deleteDoneMsg{seq: seq, id: id, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case itemsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil // superseded
		}
		m.itemsLoading = false
		if msg.err != nil {
			m.itemsErr = &viewError{message: msgListFailed, code: statusOf(msg.err)}
			return m, nil
		}
		m.itemsErr = nil
		m.items = msg.items
		m.resetPager()
		return m, nil

	case itemLoadedMsg:
		if msg.seq != m.seq || m.view != viewDetail || msg.id != m.detailID {
			return m, nil
		}
		m.detailLoading = false
		if msg.err != nil {
			m.detailErr = &viewError{message: msgDetailFailed, code: statusOf(msg.err)}
			return m, nil
		}
		it := msg.item
		m.detail = &it
		return m, nil

	case editLoadedMsg:
		if m.view != viewForm || m.form == nil || !m.form.wf.EditMode() || msg.seq != m.seq {
			return m, nil
		}
		m.form.loading = false
		if msg.err != nil {
			m.form.loadErr = &viewError{message: msgDetailFailed, code: statusOf(msg.err)}
			return m, nil
		}
		// Fetch-driven populate overwrites every field.
		m.form.wf.Populate(msg.item)
		m.form.rebuildInputs()
		return m, nil

	case submitDoneMsg:
		if m.view != viewForm || m.form == nil || msg.seq != m.seq {
			return m, nil
		}
		m.form.submitting = false
		if msg.err != nil {
			// Stay on the form; draft and field state survive for a retry.
			m.modal = modalError
			m.errorTitle = "Ошибка при сохранении"
			m.errorMsg = msgSaveFailed
			return m, nil
		}
		// A successful create consumes the draft slot. Cleared here rather
		// than in the command so storage writes stay on the event loop.
		if !m.form.wf.EditMode() {
			_ = m.store.ClearDraft()
		}
		m.form = nil
		m.view = viewList
		m.itemsLoading = true
		return m, m.loadItemsCmd(m.nextSeq())

	case deleteDoneMsg:
		if m.view != viewDetail || msg.seq != m.seq || msg.id != m.detailID {
			return m, nil
		}
		m.deleting = false
		m.modal = modalNone // confirmation closes on both outcomes
		if msg.err != nil {
			m.modal = modalError
			m.errorTitle = "Ошибка при удалении"
			m.errorMsg = deleteErrorMessage(msg.err)
			return m, nil
		}
		m.view = viewList
		m.detail = nil
		m.itemsLoading = true
		return m, m.loadItemsCmd(m.nextSeq())

	case loginDoneMsg:
		if m.modal != modalLogin || msg.seq != m.seq {
			return m, nil
		}
		m.login.pending = false
		if msg.err != nil {
			m.login.errMsg = loginErrorMessage(msg.err)
			return m, nil
		}
		m.token = msg.token
		_ = m.store.SetToken(msg.token)
		m.modal = modalNone
		m.login = newLoginState()
		return m, nil

	case logoutDoneMsg:
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals grab all input while open.
	switch m.modal {
	case modalError:
		switch msg.String() {
		case "enter", "esc":
			m.modal = modalNone
		}
		return m, nil
	case modalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modalLogin:
		return m.updateLogin(msg)
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewList:
		return m.updateList(msg)
	case viewDetail:
		return m.updateDetail(msg)
	case viewForm:
		return m.updateForm(msg)
	}
	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewList:
		body = m.viewList()
	case viewDetail:
		body = m.viewDetail()
	case viewForm:
		body = m.viewForm()
	}

	screen := strings.Join([]string{m.viewHeader(), body}, "\n\n")

	switch m.modal {
	case modalError:
		return overlayCentered(m.width, m.height, renderErrorModal(m.width, m.errorTitle, m.errorMsg))
	case modalConfirmDelete:
		return overlayCentered(m.width, m.height, renderConfirmModal(
			m.width,
			"Удалить объявление?",
			"Вы действительно хотите удалить это объявление? Действие необратимо.",
			"Удалить", "Отмена", m.confirmFocus))
	case modalLogin:
		return overlayCentered(m.width, m.height, m.viewLoginModal())
	}
	return screen
}

func (m appModel) viewHeader() string {
	title := styleHeader().Render("Доска объявлений")
	auth := styleMuted().Render("гость · L: войти")
	if m.token != "" {
		auth = styleMuted().Render("вы вошли · L: выйти")
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(auth)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + auth
}

// statusOf extracts the HTTP status from an API error, 0 otherwise.
func statusOf(err error) int {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func deleteErrorMessage(err error) string {
	// Prefer the server-provided message when the body had one.
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgDeleteFailed
}

func loginErrorMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Status == http.StatusUnauthorized {
			return "Неверные логин или пароль"
		}
	}
	return msgLoginFailed
}

func renderViewError(ve viewError, width int) string {
	msg := styleError().Render(ve.message)
	if ve.code != 0 {
		msg += "\n" + styleMuted().Render(fmt.Sprintf("Код ошибки: %d", ve.code))
	}
	return lipgloss.NewStyle().Width(width).Render(msg)
}
