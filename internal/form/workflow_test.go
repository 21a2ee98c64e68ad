package form

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"board-cli/internal/model"
)

// memCache is an in-memory DraftCache.
type memCache struct {
	draft *model.ItemDraft
	saves int
}

func (c *memCache) LoadDraft() (model.ItemDraft, bool) {
	if c.draft == nil {
		return model.ItemDraft{}, false
	}
	return *c.draft, true
}

func (c *memCache) SaveDraft(d model.ItemDraft) error {
	c.saves++
	c.draft = &d
	return nil
}

func (c *memCache) ClearDraft() error {
	c.draft = nil
	return nil
}

// fakeWriter records create/update calls and can simulate failures.
type fakeWriter struct {
	creates int
	updates int
	lastID  int
	last    model.ItemDraft
	err     error
}

func (f *fakeWriter) CreateItem(_ context.Context, d model.ItemDraft) (model.Item, error) {
	f.creates++
	f.last = d
	if f.err != nil {
		return model.Item{}, f.err
	}
	return model.Item{ID: 42, ItemDraft: d}, nil
}

func (f *fakeWriter) UpdateItem(_ context.Context, id int, d model.ItemDraft) (model.Item, error) {
	f.updates++
	f.lastID = id
	f.last = d
	if f.err != nil {
		return model.Item{}, f.err
	}
	return model.Item{ID: id, ItemDraft: d}, nil
}

func fillBasic(w *Workflow, category model.Category) {
	w.SetField("name", "Chair")
	w.SetField("description", "Wooden")
	w.SetField("location", "NY")
	w.SetCategory(category)
}

func TestNext_RequiresBasicFields(t *testing.T) {
	t.Parallel()

	w := NewCreate(&memCache{})
	if w.Step() != Step1 {
		t.Fatalf("initial step = %v, want Step1", w.Step())
	}

	if w.Next() {
		t.Fatal("Next must fail on an empty form")
	}
	if w.Step() != Step1 {
		t.Fatal("failed Next must not advance")
	}
	for _, key := range []string{"name", "description", "location", "type"} {
		if w.Err(key) == "" {
			t.Errorf("expected inline error for %q", key)
		}
	}
	if w.Err("image") != "" {
		t.Error("image is optional and must not error")
	}

	fillBasic(w, model.CategoryAuto)
	if !w.Next() {
		t.Fatalf("Next failed on a valid form: %v", w.Errors())
	}
	if w.Step() != Step2 {
		t.Fatal("Next must advance to Step2")
	}
}

func TestNext_EmptyCategoryIsInvalid(t *testing.T) {
	t.Parallel()

	w := NewCreate(&memCache{})
	w.SetField("name", "Chair")
	w.SetField("description", "Wooden")
	w.SetField("location", "NY")

	if w.Next() {
		t.Fatal("Next must fail without a category")
	}
	if w.Err("type") != "Выберите категорию" {
		t.Fatalf("unexpected category error %q", w.Err("type"))
	}
}

func TestBack_IsUnconditional(t *testing.T) {
	t.Parallel()

	w := NewCreate(&memCache{})
	fillBasic(w, model.CategoryServices)
	if !w.Next() {
		t.Fatal("Next failed")
	}
	w.Back()
	if w.Step() != Step1 {
		t.Fatal("Back must return to Step1")
	}
	if w.Draft().Name != "Chair" {
		t.Fatal("Back must keep entered values")
	}
}

// One validation error per missing required field, and no network request.
func TestSubmit_MissingCategoryFields_NoRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category model.Category
		missing  []string
	}{
		{model.CategoryRealEstate, []string{"propertyType", "area", "rooms", "price"}},
		{model.CategoryAuto, []string{"brand", "model", "year"}},
		{model.CategoryServices, []string{"serviceType", "experience", "cost"}},
	}

	for _, tc := range tests {
		w := NewCreate(&memCache{})
		fillBasic(w, tc.category)
		if !w.Next() {
			t.Fatalf("%s: Next failed: %v", tc.category, w.Errors())
		}

		writer := &fakeWriter{}
		_, err := w.Submit(context.Background(), writer)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.category, err)
		}
		if writer.creates != 0 || writer.updates != 0 {
			t.Fatalf("%s: no request may be issued on validation failure", tc.category)
		}
		if len(w.Errors()) != len(tc.missing) {
			t.Fatalf("%s: errors = %v, want one per required field %v", tc.category, w.Errors(), tc.missing)
		}
		for _, key := range tc.missing {
			if w.Err(key) == "" {
				t.Errorf("%s: expected error for %q", tc.category, key)
			}
		}
	}
}

func TestSubmit_CreateSuccess_ClearsDraft(t *testing.T) {
	t.Parallel()

	cache := &memCache{}
	w := NewCreate(cache)
	fillBasic(w, model.CategoryServices)
	w.SetField("serviceType", "Repair")
	w.SetField("experience", "2")
	w.SetField("cost", "50")

	if cache.draft == nil {
		t.Fatal("autosave must have written the draft")
	}
	if !w.Next() {
		t.Fatalf("Next failed: %v", w.Errors())
	}

	writer := &fakeWriter{}
	it, err := w.Submit(context.Background(), writer)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if writer.creates != 1 {
		t.Fatalf("exactly one create expected, got %d", writer.creates)
	}
	if it.ID != 42 {
		t.Fatalf("unexpected created item: %#v", it)
	}
	if writer.last.ServiceType != "Repair" || writer.last.Experience == nil || *writer.last.Experience != 2 ||
		writer.last.Cost == nil || *writer.last.Cost != 50 {
		t.Fatalf("unexpected payload: %#v", writer.last)
	}
	if cache.draft != nil {
		t.Fatal("draft slot must be cleared after a successful create")
	}
}

func TestSubmit_CreateFailure_KeepsDraft(t *testing.T) {
	t.Parallel()

	cache := &memCache{}
	w := NewCreate(cache)
	fillBasic(w, model.CategoryAuto)
	w.SetField("brand", "Lada")
	w.SetField("model", "Niva")
	w.SetField("year", "1999")
	if !w.Next() {
		t.Fatalf("Next failed: %v", w.Errors())
	}

	writer := &fakeWriter{err: errors.New("boom")}
	if _, err := w.Submit(context.Background(), writer); err == nil {
		t.Fatal("expected submit failure")
	}
	if cache.draft == nil {
		t.Fatal("draft must survive a failed create")
	}
	if w.Step() != Step2 {
		t.Fatal("workflow must remain on Step2 after failure")
	}

	// Retry with a healthy backend succeeds against the same state.
	writer.err = nil
	if _, err := w.Submit(context.Background(), writer); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestSubmit_EditMode_UpdatesByID(t *testing.T) {
	t.Parallel()

	w := NewEdit(7)
	if !w.EditMode() || w.EditID() != 7 {
		t.Fatalf("unexpected mode: edit=%v id=%d", w.EditMode(), w.EditID())
	}

	area := 54.5
	rooms := 2
	price := 100000.0
	w.Populate(model.Item{ID: 7, ItemDraft: model.ItemDraft{
		Name:         "Квартира",
		Description:  "Светлая",
		Location:     "Казань",
		Category:     model.CategoryRealEstate,
		PropertyType: "Квартира",
		Area:         &area,
		Rooms:        &rooms,
		Price:        &price,
	}})

	if !w.Next() {
		t.Fatalf("Next failed after populate: %v", w.Errors())
	}
	writer := &fakeWriter{}
	if _, err := w.Submit(context.Background(), writer); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if writer.updates != 1 || writer.creates != 0 {
		t.Fatalf("edit mode must update, not create (updates=%d creates=%d)", writer.updates, writer.creates)
	}
	if writer.lastID != 7 {
		t.Fatalf("update keyed by id 7, got %d", writer.lastID)
	}
}

func TestEditMode_PopulateOverridesDraftAndSkipsCache(t *testing.T) {
	t.Parallel()

	// A stale anonymous draft exists; edit mode must neither read nor write it.
	stale := model.ItemDraft{Name: "Старый черновик"}
	cache := &memCache{draft: &stale}

	w := NewEdit(7)
	w.Populate(model.Item{ID: 7, ItemDraft: model.ItemDraft{
		Name:        "Гараж",
		Description: "Кирпичный",
		Location:    "Омск",
		Category:    model.CategoryRealEstate,
	}})
	w.SetField("name", "Гараж обновлённый")

	if got := w.Draft().Name; got != "Гараж обновлённый" {
		t.Fatalf("unexpected name %q", got)
	}
	if cache.saves != 0 {
		t.Fatal("edit mode must not autosave into the draft slot")
	}
	if cache.draft == nil || cache.draft.Name != "Старый черновик" {
		t.Fatal("anonymous draft slot must be untouched by edit mode")
	}
}

func TestCreateMode_LoadsPersistedDraft(t *testing.T) {
	t.Parallel()

	exp := 2
	saved := model.ItemDraft{
		Name:        "Chair",
		Category:    model.CategoryServices,
		ServiceType: "Repair",
		Experience:  &exp,
	}
	cache := &memCache{draft: &saved}

	w := NewCreate(cache)
	if !reflect.DeepEqual(w.Draft(), saved) {
		t.Fatalf("persisted draft not applied: %#v", w.Draft())
	}
}

func TestSubmit_OnlyAvailableOnStep2(t *testing.T) {
	t.Parallel()

	w := NewCreate(&memCache{})
	fillBasic(w, model.CategoryAuto)
	writer := &fakeWriter{}
	if _, err := w.Submit(context.Background(), writer); err == nil {
		t.Fatal("submit on Step1 must fail")
	}
	if writer.creates != 0 {
		t.Fatal("no request may be issued from Step1")
	}
}

func TestSetField_NumericParsing(t *testing.T) {
	t.Parallel()

	w := NewCreate(&memCache{})
	w.SetField("year", "1999")
	if w.Draft().Year == nil || *w.Draft().Year != 1999 {
		t.Fatalf("year not parsed: %#v", w.Draft().Year)
	}
	if w.FieldValue("year") != "1999" {
		t.Fatalf("FieldValue(year) = %q", w.FieldValue("year"))
	}

	w.SetField("year", "")
	if w.Draft().Year != nil {
		t.Fatal("empty input must clear the numeric value")
	}
	w.SetField("area", "abc")
	if w.Draft().Area != nil {
		t.Fatal("unparsable input must leave the value unset")
	}
	w.SetField("area", "54.5")
	if w.Draft().Area == nil || *w.Draft().Area != 54.5 {
		t.Fatalf("area not parsed: %#v", w.Draft().Area)
	}
}

func TestAutosave_WriteThroughOnEveryChange(t *testing.T) {
	t.Parallel()

	cache := &memCache{}
	w := NewCreate(cache)
	w.SetField("name", "Ч")
	w.SetField("name", "Чa")
	w.SetField("name", "Чaй")
	if cache.saves != 3 {
		t.Fatalf("expected a save per change, got %d", cache.saves)
	}
	if cache.draft.Name != "Чaй" {
		t.Fatalf("last write must win, got %q", cache.draft.Name)
	}
}
