package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

type record struct {
	ID    string
	Title string
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store[record]

	before := time.Now()
	s.Update([]record{{ID: "1"}, {ID: "2"}}, nil)

	snap := s.Snapshot()
	if !snap.Loaded {
		t.Fatalf("Loaded = false, want true")
	}
	if len(snap.Records) != 2 || snap.Records[0].ID != "1" {
		t.Fatalf("snapshot records = %#v, want 2 records", snap.Records)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if snap.Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Records[0].ID = "999"
	if got := s.Records()[0].ID; got != "1" {
		t.Fatalf("Snapshot should clone records; got id %q want 1", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store[record]

	s.Update([]record{{ID: "1", Title: "kept"}}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Records, prev.Records) {
		t.Fatalf("records changed on error: got %#v want %#v", snap.Records, prev.Records)
	}
	if snap.Generation != prev.Generation {
		t.Fatalf("Generation = %d, want %d", snap.Generation, prev.Generation)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ReplaceWithEmptyList(t *testing.T) {
	var s Store[record]
	s.Update([]record{{ID: "1"}}, nil)
	s.Update(nil, nil)

	snap := s.Snapshot()
	if len(snap.Records) != 0 {
		t.Fatalf("Records = %#v, want empty", snap.Records)
	}
	if !snap.Loaded || snap.Generation != 2 {
		t.Fatalf("Loaded=%v Generation=%d, want true/2", snap.Loaded, snap.Generation)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store[record]

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update([]record{{ID: "1"}}, nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
