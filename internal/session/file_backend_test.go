package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestBackend(t *testing.T) (*FileBackend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b, path
}

func TestFileBackend_RoundTrip(t *testing.T) {
	b, path := newTestBackend(t)

	if _, ok := b.Get(KeyToken); ok {
		t.Error("fresh backend should have no token")
	}

	if err := b.Set(KeyToken, "tok-abc"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok := b.Get(KeyToken); !ok || v != "tok-abc" {
		t.Errorf("Get(token) = %q (%v), want tok-abc", v, ok)
	}

	// The value must survive a reopen.
	b2, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer b2.Close()
	if v, ok := b2.Get(KeyToken); !ok || v != "tok-abc" {
		t.Errorf("reopened Get(token) = %q (%v), want tok-abc", v, ok)
	}
}

func TestFileBackend_Delete(t *testing.T) {
	b, path := newTestBackend(t)

	if err := b.Set(KeyToken, "tok"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := b.Delete(KeyToken); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := b.Get(KeyToken); ok {
		t.Error("token still present after delete")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading store file: %v", err)
	}
	var record map[string]string
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}
	if _, ok := record[KeyToken]; ok {
		t.Error("deleted key still in the store file")
	}
}

func TestFileBackend_CorruptFileIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v, corrupt files should not be fatal", err)
	}
	defer b.Close()

	if _, ok := b.Get(KeyToken); ok {
		t.Error("corrupt file should yield an empty store")
	}
}

func TestFileBackend_WatcherPicksUpExternalWrite(t *testing.T) {
	b, path := newTestBackend(t)

	record := map[string]string{KeyToken: "external"}
	data, _ := json.Marshal(record)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("external write: %v", err)
	}

	select {
	case <-b.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change signal after external write")
	}

	if v, ok := b.Get(KeyToken); !ok || v != "external" {
		t.Errorf("Get(token) after external write = %q (%v), want external", v, ok)
	}
}

func TestFileBackend_WatcherHandlesDeletion(t *testing.T) {
	b, path := newTestBackend(t)

	if err := b.Set(KeyToken, "tok"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Drain the signal from our own write so the next one is the deletion.
	select {
	case <-b.Changes():
	case <-time.After(500 * time.Millisecond):
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("removing store file: %v", err)
	}

	select {
	case <-b.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change signal after file deletion")
	}

	if _, ok := b.Get(KeyToken); ok {
		t.Error("token still present after the store file was deleted")
	}
}
