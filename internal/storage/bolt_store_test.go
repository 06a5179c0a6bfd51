package storage

import (
	"bytes"
	"testing"
	"time"
)

func TestBoltStorePutGetAndExpire(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		VerdictTTL:      1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/verdicts.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	_, found, err := store.GetVerdict("disposable:a@b.co")
	if err != nil || found {
		t.Fatalf("expected cache miss, found=%v err=%v", found, err)
	}

	payload := []byte(`{"operation":"disposable","email_address":"a@b.co"}`)
	if err := store.PutVerdict("disposable:a@b.co", payload); err != nil {
		t.Fatalf("PutVerdict: %v", err)
	}

	got, found, err := store.GetVerdict("disposable:a@b.co")
	if err != nil || !found {
		t.Fatalf("expected cache hit, found=%v err=%v", found, err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: %s", got)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	_, found, err = store.GetVerdict("disposable:a@b.co")
	if err != nil {
		t.Fatalf("GetVerdict after expiry: %v", err)
	}
	if found {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.PutVerdict("x", []byte("y")); err != nil {
		t.Fatalf("noop store PutVerdict: %v", err)
	}
	_, found, err := store.GetVerdict("x")
	if err != nil || found {
		t.Fatalf("noop store should never hit, found=%v err=%v", found, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
}
