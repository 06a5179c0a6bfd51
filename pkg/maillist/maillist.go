package maillist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clearlist-hq/clearlist-verifier/internal/domain"
)

// Package maillist loads the registry of mailing lists to clean (YAML/JSON).

// List describes one mailing list and which validation operation to run on it.
type List struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Operation      string `json:"operation" yaml:"operation"`
	SourceFile     string `json:"source_file" yaml:"source_file"`
	RequestDelayMs int    `json:"request_delay_ms" yaml:"request_delay_ms"`
}

// registryFile represents the structure of the lists configuration file.
type registryFile struct {
	Lists []List `json:"lists" yaml:"lists"`
}

const defaultRequestDelayMs = 500

// Registry materializes list definitions loaded from a config file.
type Registry struct {
	mu    sync.RWMutex
	lists []List
	idx   map[string]List
}

// LoadRegistry loads the mailing-list registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("lists file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lists file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read lists file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Lists) == 0 {
		return nil, errors.New("lists file contains no lists entries")
	}

	reg := &Registry{
		lists: make([]List, len(fileReg.Lists)),
		idx:   make(map[string]List, len(fileReg.Lists)),
	}

	for i := range fileReg.Lists {
		l := sanitizeList(fileReg.Lists[i])
		if err := validateList(l); err != nil {
			return nil, fmt.Errorf("lists[%d]: %w", i, err)
		}
		if _, exists := reg.idx[l.ID]; exists {
			return nil, fmt.Errorf("duplicate list id %q", l.ID)
		}
		reg.lists[i] = l
		reg.idx[l.ID] = l
	}

	return reg, nil
}

// parseRegistry attempts to decode the lists file content.
func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("lists file format not recognized (expected YAML or JSON)")
}

func sanitizeList(l List) List {
	l.ID = strings.TrimSpace(l.ID)
	l.Name = strings.TrimSpace(l.Name)
	l.Operation = strings.ToLower(strings.TrimSpace(l.Operation))
	l.SourceFile = strings.TrimSpace(l.SourceFile)
	if l.RequestDelayMs <= 0 {
		l.RequestDelayMs = defaultRequestDelayMs
	}
	return l
}

func validateList(l List) error {
	if l.ID == "" {
		return errors.New("id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("name is required for list %q", l.ID)
	}
	switch l.Operation {
	case domain.OpValidate, domain.OpDisposable, domain.OpFree:
	case "":
		return fmt.Errorf("operation is required for list %q", l.ID)
	default:
		return fmt.Errorf("unsupported operation %q for list %q", l.Operation, l.ID)
	}
	if l.SourceFile == "" {
		return fmt.Errorf("source_file is required for list %q", l.ID)
	}
	return nil
}

// All returns a copy of the loaded lists.
func (r *Registry) All() []List {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]List, len(r.lists))
	copy(out, r.lists)
	return out
}

// ByID returns the list entry for the given id, if loaded.
func (r *Registry) ByID(id string) (List, bool) {
	if r == nil {
		return List{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return List{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.idx[id]
	return l, ok
}

// RequestDelay returns the per-request throttle duration for the list.
func (l List) RequestDelay() time.Duration {
	if l.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(l.RequestDelayMs) * time.Millisecond
}
