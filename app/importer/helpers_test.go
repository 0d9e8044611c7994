package importer

import (
	"encoding/json"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestImporter(store *memStore) *Importer {
	imp := New(store)
	imp.now = func() time.Time { return fixedNow }
	return imp
}

func decodeRecords(t *testing.T, data string) []Record {
	t.Helper()
	var records []Record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		t.Fatalf("Failed to decode records: %v", err)
	}
	return records
}

func assertLines(t *testing.T, report *Report, want ...string) {
	t.Helper()
	got := report.Lines()
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines %q, got %d: %q", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
