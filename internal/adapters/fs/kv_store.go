package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
)

// KeyValueStoreAdapter implements KeyValueStore as a JSON object on disk
type KeyValueStoreAdapter struct {
	path string
	mu   sync.Mutex
}

// NewKeyValueStoreAdapter creates a new KeyValueStoreAdapter
func NewKeyValueStoreAdapter(cfg *config.RuntimeConfig) *KeyValueStoreAdapter {
	return &KeyValueStoreAdapter{
		path: filepath.Join(cfg.DataDir, "client.local.json"),
	}
}

// Get returns the value stored under key
func (s *KeyValueStoreAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key
func (s *KeyValueStoreAdapter) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Remove deletes key. Removing a missing key is not an error.
func (s *KeyValueStoreAdapter) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// GetPath returns the path to the store file
func (s *KeyValueStoreAdapter) GetPath() string {
	return s.path
}

func (s *KeyValueStoreAdapter) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return values, nil
}

func (s *KeyValueStoreAdapter) save(values map[string]string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	// Write atomically so a concurrent reader never sees a partial file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// Ensure KeyValueStoreAdapter implements KeyValueStore
var _ usecase.KeyValueStore = (*KeyValueStoreAdapter)(nil)
