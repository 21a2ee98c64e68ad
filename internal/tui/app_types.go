package tui

import (
	"board-cli/internal/model"
)

type view int

const (
	viewList view = iota
	viewDetail
	viewForm
)

type modalKind int

const (
	modalNone modalKind = iota
	modalLogin
	modalConfirmDelete
	modalError
)

// viewError is a full-view fetch failure: a user-facing message plus the
// HTTP status code when one is known.
type viewError struct {
	message string
	code    int
}

// Messages carry the seq of the request that produced them; responses that
// arrive after the view moved on (or a newer request started) are discarded
// so they never mutate an unmounted view.

type itemsLoadedMsg struct {
	seq   int
	items []model.Item
	err   error
}

type itemLoadedMsg struct {
	seq  int
	id   int
	item model.Item
	err  error
}

type editLoadedMsg struct {
	seq  int
	id   int
	item model.Item
	err  error
}

type submitDoneMsg struct {
	seq  int
	item model.Item
	err  error
}

type deleteDoneMsg struct {
	seq int
	id  int
	err error
}

type loginDoneMsg struct {
	seq   int
	token string
	err   error
}

type logoutDoneMsg struct{}
