package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// JSONStore handles floor persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Floors map[string]*FloorRecord `json:"floors"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	if filePath == "" {
		filePath = "floors.json"
	}
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Floors: make(map[string]*FloorRecord),
		},
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		// Create file if it doesn't exist
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Floors == nil {
		js.data.Floors = make(map[string]*FloorRecord)
	}
	return nil
}

// saveToFile saves data to the JSON file
func (js *JSONStore) saveToFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveFloor saves or replaces a floor record
func (js *JSONStore) SaveFloor(rec *FloorRecord) error {
	if rec == nil || rec.Name == "" {
		return fmt.Errorf("floor record needs a name")
	}
	js.mutex.Lock()
	js.data.Floors[rec.Name] = rec
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadFloor loads a floor record by name
func (js *JSONStore) LoadFloor(name string) (*FloorRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	rec, exists := js.data.Floors[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return rec, nil
}

// ListFloors returns the stored floor names in order
func (js *JSONStore) ListFloors() ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	names := make([]string, 0, len(js.data.Floors))
	for name := range js.data.Floors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteFloor removes a floor record
func (js *JSONStore) DeleteFloor(name string) error {
	js.mutex.Lock()
	if _, exists := js.data.Floors[name]; !exists {
		js.mutex.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(js.data.Floors, name)
	js.mutex.Unlock()

	return js.saveToFile()
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
