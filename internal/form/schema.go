// Package form holds the two-step listing form: the per-category field
// schema and the workflow state machine that collects, validates, autosaves
// and submits a draft.
package form

import "board-cli/internal/model"

type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
)

// FieldSpec describes one category-specific input on step 2.
type FieldSpec struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
	// RequiredMsg is the inline error shown when a required field is empty.
	RequiredMsg string
}

// StepHint is the step-2 placeholder shown when no category is selected yet.
const StepHint = "Сначала выберите категорию на предыдущем шаге."

// CategoryFields maps a category tag to its ordered additional fields. An
// empty or unknown tag yields no fields; callers render StepHint for the
// empty tag (the picker only offers valid tags, so unknown is defensive).
func CategoryFields(c model.Category) []FieldSpec {
	switch c {
	case model.CategoryRealEstate:
		return []FieldSpec{
			{Key: "propertyType", Label: "Тип недвижимости", Kind: KindText, Required: true, RequiredMsg: "Укажите тип недвижимости"},
			{Key: "area", Label: "Площадь (кв. м)", Kind: KindNumber, Required: true, RequiredMsg: "Укажите площадь"},
			{Key: "rooms", Label: "Количество комнат", Kind: KindNumber, Required: true, RequiredMsg: "Укажите кол-во комнат"},
			{Key: "price", Label: "Цена (руб.)", Kind: KindNumber, Required: true, RequiredMsg: "Укажите цену"},
		}
	case model.CategoryAuto:
		return []FieldSpec{
			{Key: "brand", Label: "Марка", Kind: KindText, Required: true, RequiredMsg: "Укажите марку"},
			{Key: "model", Label: "Модель", Kind: KindText, Required: true, RequiredMsg: "Укажите модель"},
			{Key: "year", Label: "Год выпуска", Kind: KindNumber, Required: true, RequiredMsg: "Укажите год выпуска"},
			{Key: "mileage", Label: "Пробег (км)", Kind: KindNumber},
		}
	case model.CategoryServices:
		return []FieldSpec{
			{Key: "serviceType", Label: "Тип услуги", Kind: KindText, Required: true, RequiredMsg: "Укажите тип услуги"},
			{Key: "experience", Label: "Опыт работы (лет)", Kind: KindNumber, Required: true, RequiredMsg: "Укажите опыт (лет)"},
			{Key: "cost", Label: "Стоимость (руб.)", Kind: KindNumber, Required: true, RequiredMsg: "Укажите стоимость"},
			{Key: "workSchedule", Label: "График работы", Kind: KindText},
		}
	}
	return nil
}

// BasicFields are the step-1 inputs common to every category. The category
// picker itself is rendered separately but validated with this set.
func BasicFields() []FieldSpec {
	return []FieldSpec{
		{Key: "name", Label: "Название", Kind: KindText, Required: true, RequiredMsg: "Название обязательно"},
		{Key: "description", Label: "Описание", Kind: KindText, Required: true, RequiredMsg: "Описание обязательно"},
		{Key: "location", Label: "Локация", Kind: KindText, Required: true, RequiredMsg: "Локация обязательна"},
		{Key: "image", Label: "Ссылка на фото", Kind: KindText},
		{Key: "type", Label: "Категория", Kind: KindText, Required: true, RequiredMsg: "Выберите категорию"},
	}
}
