package form

import (
	"testing"

	"board-cli/internal/model"
)

func TestCategoryFields_PerCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category model.Category
		keys     []string
		required []string
	}{
		{
			category: model.CategoryRealEstate,
			keys:     []string{"propertyType", "area", "rooms", "price"},
			required: []string{"propertyType", "area", "rooms", "price"},
		},
		{
			category: model.CategoryAuto,
			keys:     []string{"brand", "model", "year", "mileage"},
			required: []string{"brand", "model", "year"},
		},
		{
			category: model.CategoryServices,
			keys:     []string{"serviceType", "experience", "cost", "workSchedule"},
			required: []string{"serviceType", "experience", "cost"},
		},
	}

	for _, tc := range tests {
		fields := CategoryFields(tc.category)
		if len(fields) != len(tc.keys) {
			t.Fatalf("%s: expected %d fields, got %d", tc.category, len(tc.keys), len(fields))
		}
		req := map[string]bool{}
		for i, f := range fields {
			if f.Key != tc.keys[i] {
				t.Errorf("%s: field %d = %q, want %q", tc.category, i, f.Key, tc.keys[i])
			}
			if f.Required {
				req[f.Key] = true
				if f.RequiredMsg == "" {
					t.Errorf("%s: required field %q has no message", tc.category, f.Key)
				}
			}
		}
		if len(req) != len(tc.required) {
			t.Errorf("%s: required set %v, want %v", tc.category, req, tc.required)
		}
		for _, k := range tc.required {
			if !req[k] {
				t.Errorf("%s: %q should be required", tc.category, k)
			}
		}
	}
}

func TestCategoryFields_EmptyAndUnknown(t *testing.T) {
	t.Parallel()

	if got := CategoryFields(""); got != nil {
		t.Fatalf("empty category should yield no fields, got %v", got)
	}
	if got := CategoryFields("Работа"); got != nil {
		t.Fatalf("unknown category should yield no fields, got %v", got)
	}
}
