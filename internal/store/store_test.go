package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"board-cli/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDraft_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	// Missing slot => no draft.
	if _, ok := s.LoadDraft(); ok {
		t.Fatal("expected no draft in a fresh store")
	}

	exp := 2
	cost := 50.0
	want := model.ItemDraft{
		Name:        "Chair",
		Description: "Wooden",
		Location:    "NY",
		Category:    model.CategoryServices,
		ServiceType: "Repair",
		Experience:  &exp,
		Cost:        &cost,
	}
	if err := s.SaveDraft(want); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	got, ok := s.LoadDraft()
	if !ok {
		t.Fatal("expected a draft after save")
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestDraft_PartialFieldsSurvive(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	// A half-filled step-1 draft (no category yet) must round-trip as-is.
	want := model.ItemDraft{Name: "Гараж", Location: "Москва"}
	if err := s.SaveDraft(want); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	got, ok := s.LoadDraft()
	if !ok || !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch: ok=%v got=%#v", ok, got)
	}
}

func TestDraft_CorruptSlotTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if err := s.Set("itemDraft", "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := s.LoadDraft(); ok {
		t.Fatal("corrupt slot must read as no draft")
	}
}

func TestDebugLog_RecordsCorruptDraft(t *testing.T) {
	// Not parallel: SetDebugLog touches package-level state.
	path := filepath.Join(t.TempDir(), "debug.log")
	SetDebugLog(path)
	defer SetDebugLog("")

	s := openTestStore(t)
	if err := s.Set("itemDraft", "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := s.LoadDraft(); ok {
		t.Fatal("corrupt slot must read as no draft")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("debug log not written: %v", err)
	}
	if !strings.Contains(string(data), "discarding corrupt slot") {
		t.Fatalf("debug log missing the corrupt-slot entry: %q", data)
	}
}

func TestDraft_ClearIsIdempotent(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if err := s.ClearDraft(); err != nil {
		t.Fatalf("ClearDraft on empty slot: %v", err)
	}
	if err := s.SaveDraft(model.ItemDraft{Name: "x"}); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if err := s.ClearDraft(); err != nil {
		t.Fatalf("ClearDraft: %v", err)
	}
	if _, ok := s.LoadDraft(); ok {
		t.Fatal("expected empty slot after clear")
	}
}

func TestSession_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SetToken("fake-token"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if tok, ok := s2.Token(); !ok || tok != "fake-token" {
		t.Fatalf("token not restored after reopen: %q ok=%v", tok, ok)
	}
}

func TestSession_TokenLifecycle(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if _, ok := s.Token(); ok {
		t.Fatal("fresh store must have no token")
	}
	if err := s.SetToken("fake-token"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if tok, ok := s.Token(); !ok || tok != "fake-token" {
		t.Fatalf("unexpected token: %q ok=%v", tok, ok)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Fatal("expected no token after logout")
	}
}
