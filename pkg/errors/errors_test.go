package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidOptions, "negative span for %s", "assign")

	if err.Code != ErrCodeInvalidOptions {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidOptions)
	}
	if err.Message != "negative span for assign" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "INVALID_OPTIONS: negative span for assign"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidDocument, cause, "decode %s", "doc.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "INVALID_DOCUMENT: decode doc.json: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "no cached result")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is should not match plain errors")
	}
	if Is(nil, ErrCodeNotFound) {
		t.Error("Is should not match nil")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidCategory, "unknown category")
	outer := fmt.Errorf("loading options: %w", inner)

	if !Is(outer, ErrCodeInvalidCategory) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeInvalidCategory {
		t.Errorf("GetCode = %s, want %s", GetCode(outer), ErrCodeInvalidCategory)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "deadline")); got != ErrCodeTimeout {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "document has no tokens")
	if got := UserMessage(err); got != "document has no tokens" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
