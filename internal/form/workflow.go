package form

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"board-cli/internal/model"
)

// Step is the wizard position. There is no terminal step: a successful
// submit navigates away instead.
type Step int

const (
	Step1 Step = iota + 1 // basic fields
	Step2                 // category-specific fields
)

// ErrValidation is returned by Submit when required fields are missing; the
// per-field messages are available via Errors. No request is issued.
var ErrValidation = errors.New("form: validation failed")

// DraftCache is the single-slot persistence the create-mode form writes
// through on every change.
type DraftCache interface {
	LoadDraft() (model.ItemDraft, bool)
	SaveDraft(model.ItemDraft) error
	ClearDraft() error
}

// ItemWriter issues the one create-or-update request a submit makes.
type ItemWriter interface {
	CreateItem(ctx context.Context, draft model.ItemDraft) (model.Item, error)
	UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (model.Item, error)
}

// Workflow is the two-step item form state machine. It owns the draft,
// validates step transitions, autosaves in create mode and submits exactly
// one request per Submit call.
type Workflow struct {
	step   Step
	draft  model.ItemDraft
	errors map[string]string

	editMode bool
	editID   int

	cache DraftCache
}

// NewCreate starts a create-mode workflow. Any persisted draft is loaded
// into the form; a corrupt slot reads as absent and is ignored.
func NewCreate(cache DraftCache) *Workflow {
	w := &Workflow{step: Step1, cache: cache, errors: map[string]string{}}
	if cache != nil {
		if d, ok := cache.LoadDraft(); ok {
			w.draft = d
		}
	}
	return w
}

// NewEdit starts an edit-mode workflow for an existing item. The caller
// fetches the item and applies it with Populate; the draft cache is not
// consulted in this mode.
func NewEdit(id int) *Workflow {
	return &Workflow{step: Step1, editMode: true, editID: id, errors: map[string]string{}}
}

func (w *Workflow) Step() Step                { return w.step }
func (w *Workflow) EditMode() bool            { return w.editMode }
func (w *Workflow) EditID() int               { return w.editID }
func (w *Workflow) Draft() model.ItemDraft    { return w.draft }
func (w *Workflow) Errors() map[string]string { return w.errors }

// Err returns the inline validation message for a field key, if any.
func (w *Workflow) Err(key string) string { return w.errors[key] }

// Populate overwrites every form field with the fetched item's values.
// This takes precedence over anything loaded from the draft cache.
func (w *Workflow) Populate(it model.Item) {
	w.draft = it.Draft()
}

// SetCategory selects the listing category and autosaves.
func (w *Workflow) SetCategory(c model.Category) {
	w.draft.Category = c
	w.autosave()
}

// SetField assigns a field from its raw text-input value and autosaves.
// Numeric fields parse leniently: empty or unparsable input clears the
// value, leaving required-field validation to flag it.
func (w *Workflow) SetField(key, raw string) {
	switch key {
	case "name":
		w.draft.Name = raw
	case "description":
		w.draft.Description = raw
	case "location":
		w.draft.Location = raw
	case "image":
		w.draft.Image = raw
	case "type":
		w.draft.Category = model.Category(raw)
	case "propertyType":
		w.draft.PropertyType = raw
	case "area":
		w.draft.Area = parseFloat(raw)
	case "rooms":
		w.draft.Rooms = parseInt(raw)
	case "price":
		w.draft.Price = parseFloat(raw)
	case "brand":
		w.draft.Brand = raw
	case "model":
		w.draft.Model = raw
	case "year":
		w.draft.Year = parseInt(raw)
	case "mileage":
		w.draft.Mileage = parseInt(raw)
	case "serviceType":
		w.draft.ServiceType = raw
	case "experience":
		w.draft.Experience = parseInt(raw)
	case "cost":
		w.draft.Cost = parseFloat(raw)
	case "workSchedule":
		w.draft.WorkSchedule = raw
	default:
		return
	}
	w.autosave()
}

// FieldValue renders a field back into text-input form.
func (w *Workflow) FieldValue(key string) string {
	switch key {
	case "name":
		return w.draft.Name
	case "description":
		return w.draft.Description
	case "location":
		return w.draft.Location
	case "image":
		return w.draft.Image
	case "type":
		return string(w.draft.Category)
	case "propertyType":
		return w.draft.PropertyType
	case "area":
		return formatFloat(w.draft.Area)
	case "rooms":
		return formatInt(w.draft.Rooms)
	case "price":
		return formatFloat(w.draft.Price)
	case "brand":
		return w.draft.Brand
	case "model":
		return w.draft.Model
	case "year":
		return formatInt(w.draft.Year)
	case "mileage":
		return formatInt(w.draft.Mileage)
	case "serviceType":
		return w.draft.ServiceType
	case "experience":
		return formatInt(w.draft.Experience)
	case "cost":
		return formatFloat(w.draft.Cost)
	case "workSchedule":
		return w.draft.WorkSchedule
	}
	return ""
}

// Next validates the basic field set and, when clean, advances to step 2.
// On failure the workflow stays on step 1 with per-field messages set.
func (w *Workflow) Next() bool {
	errs := map[string]string{}
	for _, f := range BasicFields() {
		if !f.Required {
			continue
		}
		if f.Key == "type" {
			if !w.draft.Category.Valid() {
				errs[f.Key] = f.RequiredMsg
			}
			continue
		}
		if strings.TrimSpace(w.FieldValue(f.Key)) == "" {
			errs[f.Key] = f.RequiredMsg
		}
	}
	w.errors = errs
	if len(errs) > 0 {
		return false
	}
	w.step = Step2
	return true
}

// Back returns to step 1 unconditionally, keeping all entered values.
func (w *Workflow) Back() {
	w.step = Step1
	w.errors = map[string]string{}
}

// Validate applies the selected category's required-field rules, recording
// one message per missing field.
func (w *Workflow) Validate() bool {
	errs := map[string]string{}
	for _, f := range CategoryFields(w.draft.Category) {
		if !f.Required {
			continue
		}
		missing := false
		switch f.Kind {
		case KindText:
			missing = strings.TrimSpace(w.FieldValue(f.Key)) == ""
		case KindNumber:
			missing = w.FieldValue(f.Key) == ""
		}
		if missing {
			errs[f.Key] = f.RequiredMsg
		}
	}
	w.errors = errs
	return len(errs) == 0
}

// Submit validates the category fields and issues the single create or
// update request. On create success the draft slot is cleared; on any
// failure the draft and form state are untouched so the user can retry.
func (w *Workflow) Submit(ctx context.Context, items ItemWriter) (model.Item, error) {
	if w.step != Step2 {
		return model.Item{}, errors.New("form: submit is only available on step 2")
	}
	if !w.Validate() {
		return model.Item{}, ErrValidation
	}

	if w.editMode {
		return items.UpdateItem(ctx, w.editID, w.draft)
	}
	it, err := items.CreateItem(ctx, w.draft)
	if err != nil {
		return model.Item{}, err
	}
	if w.cache != nil {
		_ = w.cache.ClearDraft()
	}
	return it, nil
}

// Discard clears the draft slot explicitly (create mode only).
func (w *Workflow) Discard() {
	if !w.editMode && w.cache != nil {
		_ = w.cache.ClearDraft()
	}
}

func (w *Workflow) autosave() {
	// Write-through on every change; edit mode never touches the slot.
	if w.editMode || w.cache == nil {
		return
	}
	_ = w.cache.SaveDraft(w.draft)
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
