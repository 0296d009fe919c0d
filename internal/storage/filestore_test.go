package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorePutGet(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.Put("heure", "bazaar_09.json", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := store.Get("heure", "bazaar_09.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("expected %q, got %q", `[]`, string(data))
	}

	// Put replaces the whole file
	if err := store.Put("heure", "bazaar_09.json", []byte(`[{"product_id":"X"}]`)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	data, _ = store.Get("heure", "bazaar_09.json")
	if string(data) != `[{"product_id":"X"}]` {
		t.Errorf("Put should replace content, got %q", string(data))
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Get("Bazaar", "bazaar_2024-01-01.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreRootPartition(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	if err := store.Put("", "bazaar_ref.json", []byte(`[]`)); err != nil {
		t.Fatalf("Put in root failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "bazaar_ref.json")); err != nil {
		t.Errorf("file should live directly under the root: %v", err)
	}
}

func TestFileStoreAppend(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.Append("benef", "log.txt", []byte("line one\n")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append("benef", "log.txt", []byte("line two\n")); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	data, err := store.Get("benef", "log.txt")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "line one\nline two\n" {
		t.Errorf("Append should accumulate, got %q", string(data))
	}
}

func TestFileStoreListMissingDir(t *testing.T) {
	store := NewFileStore(t.TempDir())

	names, err := store.List("heure")
	if err != nil {
		t.Fatalf("List of missing directory should not error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}

func TestFileStoreListSorted(t *testing.T) {
	store := NewFileStore(t.TempDir())

	for _, name := range []string{"bazaar_10.json", "bazaar_02.json", "bazaar_23.json"} {
		if err := store.Put("heure", name, []byte(`[]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	names, err := store.List("heure")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"bazaar_02.json", "bazaar_10.json", "bazaar_23.json"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFileStoreBootstrap(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	store := NewFileStore(root)

	if err := store.Bootstrap("heure", "Bazaar", "flip"); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	for _, dir := range []string{"heure", "Bazaar", "flip"} {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s to exist", dir)
		}
	}

	// Bootstrap is idempotent
	if err := store.Bootstrap("heure", "Bazaar", "flip"); err != nil {
		t.Errorf("second Bootstrap failed: %v", err)
	}
}

func TestMemStoreMatchesFileStoreSemantics(t *testing.T) {
	mem := NewMemStore()

	if _, err := mem.Get("Bazaar", "missing.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from MemStore, got %v", err)
	}

	if err := mem.Append("benef", "log.txt", []byte("a\n")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := mem.Append("benef", "log.txt", []byte("b\n")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	data, _ := mem.Get("benef", "log.txt")
	if string(data) != "a\nb\n" {
		t.Errorf("expected accumulated appends, got %q", string(data))
	}

	mem.Put("heure", "bazaar_10.json", []byte(`[]`))
	mem.Put("heure", "bazaar_02.json", []byte(`[]`))
	mem.Put("", "bazaar_ref.json", []byte(`[]`))
	names, _ := mem.List("heure")
	if len(names) != 2 || names[0] != "bazaar_02.json" || names[1] != "bazaar_10.json" {
		t.Errorf("expected sorted hourly names, got %v", names)
	}
	rootNames, _ := mem.List("")
	if len(rootNames) != 1 || rootNames[0] != "bazaar_ref.json" {
		t.Errorf("expected root listing to only see root files, got %v", rootNames)
	}
}
