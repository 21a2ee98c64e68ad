package store

import (
	"encoding/json"

	"board-cli/internal/model"
)

// The draft slot holds the last unsent create-form state. There is exactly
// one slot, not keyed by item id; edit mode never touches it.
const draftKey = "itemDraft"

// LoadDraft returns the persisted draft, if any. Corrupt (non-JSON) content
// is treated as no draft: it is logged and the slot's contents are ignored,
// never surfaced to the user.
func (s *Store) LoadDraft() (model.ItemDraft, bool) {
	raw, ok, err := s.Get(draftKey)
	if err != nil || !ok {
		return model.ItemDraft{}, false
	}
	var d model.ItemDraft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		debugf("draft: discarding corrupt slot: %v", err)
		return model.ItemDraft{}, false
	}
	return d, true
}

// SaveDraft overwrites the slot with the full draft (last write wins).
func (s *Store) SaveDraft(d model.ItemDraft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.Set(draftKey, string(b))
}

// ClearDraft empties the slot; clearing an absent slot is a no-op.
func (s *Store) ClearDraft() error {
	return s.Delete(draftKey)
}
