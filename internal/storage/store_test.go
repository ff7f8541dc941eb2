package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockStoreSpec implements ValidatingSpec for testing FileStore
type mockStoreSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *mockStoreSpec) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, id string, spec *mockStoreSpec) {
	t.Helper()

	asset := Asset[*mockStoreSpec]{
		Version:    1,
		Identifier: id,
		Spec:       spec,
	}
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	err = os.WriteFile(filepath.Join(dir, id+".json"), data, 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "path", store.path, tmpDir)
	testutil.AssertEqual(t, "records length", store.Len(), 0)
}

func TestNewFileStore_NonExistentDirectory(t *testing.T) {
	_, err := NewFileStore[*mockStoreSpec]("/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for non-existent directory")
	}
}

func TestNewFileStore_WithExistingAssets(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})
	writeAsset(t, tmpDir, "item-2", &mockStoreSpec{Name: "Second", Value: 2})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "record count", store.Len(), 2)

	item1 := store.GetAll()["item-1"]
	if item1 == nil {
		t.Fatal("expected item-1 to be loaded")
	}
	testutil.AssertEqual(t, "item-1 name", item1.Name, "First")
}

func TestNewFileStore_DuplicateIdentifier(t *testing.T) {
	tmpDir := t.TempDir()

	// Same identifier under two different file names
	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})

	asset := Asset[*mockStoreSpec]{
		Version:    1,
		Identifier: "item-1",
		Spec:       &mockStoreSpec{Name: "Clone", Value: 2},
	}
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	err = os.WriteFile(filepath.Join(tmpDir, "other-file.json"), data, 0644)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err = NewFileStore[*mockStoreSpec](tmpDir)
	if err == nil {
		t.Error("expected error for duplicate identifier")
	}
}

func TestNewFileStore_InvalidAsset(t *testing.T) {
	tests := map[string]struct {
		asset string
	}{
		"missing version": {
			asset: `{"id":"item-1","spec":{"name":"First","value":1}}`,
		},
		"missing id": {
			asset: `{"version":1,"spec":{"name":"First","value":1}}`,
		},
		"id not alphanumeric": {
			asset: `{"version":1,"id":"item_one!","spec":{"name":"First","value":1}}`,
		},
		"not json": {
			asset: `{{{{`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			err := os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte(tt.asset), 0644)
			if err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			_, err = NewFileStore[*mockStoreSpec](tmpDir)
			if err == nil {
				t.Error("expected error for invalid asset")
			}
		})
	}
}

func TestFileStore_GetAllCopies(t *testing.T) {
	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.GetAll()
	delete(all, "item-1")

	testutil.AssertEqual(t, "record count after caller mutation", store.Len(), 1)
}
