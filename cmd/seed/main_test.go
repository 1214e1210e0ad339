package main

import (
	"errors"
	"testing"
)

func TestPrepareOrRelease_ReleasesOnFailure(t *testing.T) {
	released := 0
	boom := errors.New("create indexes: timeout")
	err := prepareOrRelease(func() error { return boom }, func() { released++ })
	if !errors.Is(err, boom) {
		t.Fatalf("expected setup error, got %v", err)
	}
	if released != 1 {
		t.Fatalf("expected store released once, got %d", released)
	}
}

func TestPrepareOrRelease_KeepsStoreOnSuccess(t *testing.T) {
	released := 0
	if err := prepareOrRelease(func() error { return nil }, func() { released++ }); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if released != 0 {
		t.Fatalf("store must stay open, released %d times", released)
	}
}
