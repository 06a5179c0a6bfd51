package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local verdict cache abstraction.

// Store caches validation verdicts keyed by operation + address.
type Store interface {
	Close() error
	// GetVerdict returns the cached payload for key, if present and unexpired.
	GetVerdict(key string) ([]byte, bool, error)
	// PutVerdict stores payload under key with the configured TTL.
	PutVerdict(key string, payload []byte) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	VerdictTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultVerdictTTL      = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.VerdictTTL <= 0 {
		opts.VerdictTTL = defaultVerdictTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                            { return nil }
func (noopStore) GetVerdict(string) ([]byte, bool, error) { return nil, false, nil }
func (noopStore) PutVerdict(string, []byte) error         { return nil }
