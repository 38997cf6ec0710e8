package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedKind Kind
	}{
		{"Nil", nil, KindUnknown},
		{"Plain Error", errors.New("boom"), KindUnknown},
		{"Direct AppError", NotFound("missing"), KindNotFound},
		{"Wrapped Cause", Wrap(KindInternal, "query failed", errors.New("conn reset")), KindInternal},
		{"Nested In fmt", fmt.Errorf("outer: %w", Forbidden("no access")), KindForbidden},
		{"Double Nested", fmt.Errorf("a: %w", fmt.Errorf("b: %w", InFlight("busy"))), KindInFlight},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if kind := KindOf(tc.err); kind != tc.expectedKind {
				t.Errorf("KindOf(%v) = %v; want %v", tc.err, kind, tc.expectedKind)
			}
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	plain := Validation("bad input")
	if plain.Error() != "bad input" {
		t.Errorf("Error() = %q; want %q", plain.Error(), "bad input")
	}

	wrapped := Wrap(KindInternal, "saving row", errors.New("timeout"))
	if wrapped.Error() != "saving row: timeout" {
		t.Errorf("Error() = %q; want %q", wrapped.Error(), "saving row: timeout")
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindInternal, "writing", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
