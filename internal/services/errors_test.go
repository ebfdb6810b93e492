package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrNetwork, "ankiweb", "sync", "fetch deck list", base)

	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
}

func TestWrapDefaultsToRemote(t *testing.T) {
	err := Wrap(nil, "ankiweb", "upsert", "", nil)
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("nil marker should default to ErrRemote, got %v", err)
	}
}

func TestWrapMessageIncludesContext(t *testing.T) {
	err := Wrap(ErrValidation, "facade", "upsert-deck", "cards must be a list", nil)
	want := "validation error: facade: upsert-deck: cards must be a list"
	if err.Error() != want {
		t.Fatalf("message mismatch:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{Wrap(ErrAuthentication, "session", "load", "", nil), "authentication"},
		{Wrap(ErrNetwork, "ankiweb", "sync", "", nil), "network"},
		{Wrap(ErrValidation, "facade", "upsert", "", nil), "validation"},
		{Wrap(ErrNotFound, "cache", "get", "", nil), "not_found"},
		{Wrap(ErrImageTooLarge, "format", "image", "", nil), "image_too_large"},
		{Wrap(ErrRemote, "ankiweb", "create", "", nil), "remote"},
		{fmt.Errorf("plain"), "internal"},
	}
	for _, tc := range cases {
		if got := Kind(tc.err); got != tc.want {
			t.Errorf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
