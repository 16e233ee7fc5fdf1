package state

import "testing"

func TestMemoryManagerStateLifecycle(t *testing.T) {
	m := NewMemoryManager()
	const userID int64 = 7

	if m.HasState(userID) {
		t.Fatal("fresh manager should have no state")
	}
	if got := m.GetState(userID); got != StateIdle {
		t.Fatalf("GetState = %q, want idle", got)
	}

	m.SetState(userID, State("awaiting_code"))
	if !m.InProgress(userID) {
		t.Fatal("expected conversation in progress")
	}
	if got := m.GetState(userID); got != State("awaiting_code") {
		t.Fatalf("GetState = %q", got)
	}

	m.ClearState(userID)
	if m.InProgress(userID) {
		t.Fatal("ClearState should end the conversation")
	}
}

func TestMemoryManagerTempData(t *testing.T) {
	m := NewMemoryManager()
	const userID int64 = 7

	if _, ok := m.GetTemp(userID, "batch"); ok {
		t.Fatal("unexpected temp value")
	}

	m.SetTemp(userID, "batch", []string{"a", "b"})
	val, ok := m.GetTemp(userID, "batch")
	if !ok {
		t.Fatal("temp value missing")
	}
	if items := val.([]string); len(items) != 2 {
		t.Fatalf("temp len = %d", len(items))
	}

	m.Clear(userID)
	if _, ok := m.GetTemp(userID, "batch"); ok {
		t.Fatal("Clear should drop temp data")
	}
	if m.HasState(userID) {
		t.Fatal("Clear should drop state")
	}
}

func TestMemoryManagerGetTempInt64(t *testing.T) {
	m := NewMemoryManager()
	const userID int64 = 7

	m.SetTemp(userID, "id", int64(42))
	if v, ok := m.GetTempInt64(userID, "id"); !ok || v != 42 {
		t.Fatalf("GetTempInt64 = %d, %v", v, ok)
	}

	m.SetTemp(userID, "name", "x")
	if _, ok := m.GetTempInt64(userID, "name"); ok {
		t.Fatal("non-int64 value should not convert")
	}
}
