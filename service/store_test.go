package service

import (
	"encoding/json"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("Error opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreLifecycle(t *testing.T) {
	store := openTestStore(t)

	if err := store.Create("job-1", []string{"Total:", "Date:"}); err != nil {
		t.Fatalf("Error creating job: %v", err)
	}

	job, err := store.Get("job-1")
	if err != nil {
		t.Fatalf("Error reading job: %v", err)
	}
	if job.Status != StatusQueued {
		t.Errorf("Expected status %q, got %q", StatusQueued, job.Status)
	}
	if job.Result != nil {
		t.Errorf("Expected no result on a queued job, got %s", job.Result)
	}

	fields, err := store.Fields("job-1")
	if err != nil {
		t.Fatalf("Error reading fields: %v", err)
	}
	if len(fields) != 2 || fields[0] != "Total:" || fields[1] != "Date:" {
		t.Errorf("Expected fields [Total: Date:], got %v", fields)
	}

	if err := store.MarkProcessing("job-1"); err != nil {
		t.Fatalf("Error marking processing: %v", err)
	}
	job, _ = store.Get("job-1")
	if job.Status != StatusProcessing {
		t.Errorf("Expected status %q, got %q", StatusProcessing, job.Status)
	}

	result := json.RawMessage(`{"data":[]}`)
	if err := store.Complete("job-1", result); err != nil {
		t.Fatalf("Error completing job: %v", err)
	}
	job, _ = store.Get("job-1")
	if job.Status != StatusCompleted {
		t.Errorf("Expected status %q, got %q", StatusCompleted, job.Status)
	}
	if string(job.Result) != `{"data":[]}` {
		t.Errorf("Expected stored result, got %s", job.Result)
	}
}

func TestStoreFail(t *testing.T) {
	store := openTestStore(t)

	if err := store.Create("job-2", nil); err != nil {
		t.Fatalf("Error creating job: %v", err)
	}
	if err := store.Fail("job-2", "decode page 1: bad image"); err != nil {
		t.Fatalf("Error failing job: %v", err)
	}

	job, err := store.Get("job-2")
	if err != nil {
		t.Fatalf("Error reading job: %v", err)
	}
	if job.Status != StatusFailed {
		t.Errorf("Expected status %q, got %q", StatusFailed, job.Status)
	}
	if job.Error != "decode page 1: bad image" {
		t.Errorf("Expected error message to round-trip, got %q", job.Error)
	}
}

func TestStoreUnknownJob(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
	if err := store.MarkProcessing("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
	if _, err := store.Fields("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
}
