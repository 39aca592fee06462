package store

import (
	"encoding/json"
	"sync"
	"testing"
)

func TestNewSessionStartsEmpty(t *testing.T) {
	s := NewSession("sess-1")

	if s.ID() != "sess-1" {
		t.Errorf("ID = %q, want %q", s.ID(), "sess-1")
	}
	if s.IsReady() {
		t.Error("new session should not be ready")
	}
	if got := s.Readiness(); got != ReadinessNone {
		t.Errorf("Readiness = %q, want %q", got, ReadinessNone)
	}
	if got := len(s.History()); got != 0 {
		t.Errorf("History length = %d, want 0", got)
	}
}

func TestResetForNewDocumentClearsHistory(t *testing.T) {
	s := NewSession("sess-1")
	s.ResetForNewDocument("fileSearchStores/old", "old.pdf")
	s.RecordExchange("q1", "a1")
	s.RecordExchange("q2", "a2")

	s.ResetForNewDocument("fileSearchStores/new", "new.pdf")

	if got := len(s.History()); got != 0 {
		t.Errorf("History length after reset = %d, want 0", got)
	}
	if got := s.FileSearchStoreName(); got != "fileSearchStores/new" {
		t.Errorf("FileSearchStoreName = %q, want %q", got, "fileSearchStores/new")
	}
	if got := s.UploadedFilename(); got != "new.pdf" {
		t.Errorf("UploadedFilename = %q, want %q", got, "new.pdf")
	}
	if got := s.Readiness(); got != ReadinessReady {
		t.Errorf("Readiness = %q, want %q", got, ReadinessReady)
	}
	if !s.IsReady() {
		t.Error("session should be ready after confirmed import")
	}
}

func TestMarkReadyUnconfirmedKeepsHistory(t *testing.T) {
	s := NewSession("sess-1")
	s.ResetForNewDocument("fileSearchStores/old", "old.pdf")
	s.RecordExchange("q1", "a1")

	s.MarkReadyUnconfirmed("fileSearchStores/slow", "slow.pdf")

	if got := len(s.History()); got != 1 {
		t.Errorf("History length = %d, want 1", got)
	}
	if got := s.Readiness(); got != ReadinessUnconfirmed {
		t.Errorf("Readiness = %q, want %q", got, ReadinessUnconfirmed)
	}
	if !s.IsReady() {
		t.Error("unconfirmed session should still accept questions")
	}
	if got := s.FileSearchStoreName(); got != "fileSearchStores/slow" {
		t.Errorf("FileSearchStoreName = %q, want %q", got, "fileSearchStores/slow")
	}
}

func TestRecordExchangePreservesOrder(t *testing.T) {
	s := NewSession("sess-1")
	s.ResetForNewDocument("fileSearchStores/x", "x.pdf")
	s.RecordExchange("first", "1")
	s.RecordExchange("second", "2")
	s.RecordExchange("third", "3")

	history := s.History()
	if len(history) != 3 {
		t.Fatalf("History length = %d, want 3", len(history))
	}
	want := []Exchange{
		{Question: "first", Answer: "1"},
		{Question: "second", Answer: "2"},
		{Question: "third", Answer: "3"},
	}
	for i, ex := range history {
		if ex != want[i] {
			t.Errorf("History[%d] = %+v, want %+v", i, ex, want[i])
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewSession("sess-1")
	s.ResetForNewDocument("fileSearchStores/x", "x.pdf")
	s.RecordExchange("q", "a")

	history := s.History()
	history[0].Answer = "tampered"

	if got := s.History()[0].Answer; got != "a" {
		t.Errorf("stored answer = %q, want %q", got, "a")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSession("sess-42")
	s.ResetForNewDocument("fileSearchStores/abc", "report.pdf")
	s.RecordExchange("what is this", "a report")

	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	var state SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored := FromState(state)
	if restored.ID() != "sess-42" {
		t.Errorf("ID = %q, want %q", restored.ID(), "sess-42")
	}
	if got := restored.FileSearchStoreName(); got != "fileSearchStores/abc" {
		t.Errorf("FileSearchStoreName = %q, want %q", got, "fileSearchStores/abc")
	}
	if got := restored.Readiness(); got != ReadinessReady {
		t.Errorf("Readiness = %q, want %q", got, ReadinessReady)
	}
	if got := len(restored.History()); got != 1 {
		t.Errorf("History length = %d, want 1", got)
	}
}

func TestConcurrentRecordExchange(t *testing.T) {
	s := NewSession("sess-1")
	s.ResetForNewDocument("fileSearchStores/x", "x.pdf")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordExchange("q", "a")
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if got := len(s.History()); got != 50 {
		t.Errorf("History length = %d, want 50", got)
	}
}
