package service

import (
	"testing"
	"time"
)

func TestMemoryProgressLifecycle(t *testing.T) {
	progress := NewMemoryProgress(0)

	progress.Update("tok-1", "a.pdf", 50)
	progress.Update("tok-1", "a.pdf", 100)

	snapshot := progress.Snapshot()
	entry, ok := snapshot["tok-1"]
	if !ok || entry.Percent != 100 || entry.Filename != "a.pdf" {
		t.Fatalf("snapshot = %v, want a.pdf at 100", snapshot)
	}

	progress.Clear("tok-1")
	if len(progress.Snapshot()) != 0 {
		t.Fatal("a zero clear delay should drop the entry immediately")
	}
}

func TestMemoryProgressDelayedClear(t *testing.T) {
	progress := NewMemoryProgress(20 * time.Millisecond)
	progress.Update("tok-1", "a.pdf", 100)
	progress.Clear("tok-1")

	if len(progress.Snapshot()) != 1 {
		t.Fatal("the entry should linger for the clear delay")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(progress.Snapshot()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("the entry was never cleared")
}
