package storage

import (
	"testing"
	"time"
)

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	got := ObjectKey("user-1", "runbook.pdf", now)
	want := "user-1/1700000000123_runbook.pdf"
	if got != want {
		t.Fatalf("ObjectKey = %q, want %q", got, want)
	}
}
