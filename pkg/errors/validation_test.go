package errors

import (
	"strings"
	"testing"
)

func TestValidateSpan(t *testing.T) {
	tests := []struct {
		name    string
		span    int
		wantErr bool
	}{
		{"Zero", 0, false},
		{"Typical", 4, false},
		{"Negative", -1, true},
		{"Huge", 1 << 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpan("assign", tt.span)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpan(%d) error = %v, wantErr %v", tt.span, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOptions) {
				t.Errorf("wrong code: %s", GetCode(err))
			}
		})
	}
}

func TestValidateThreshold(t *testing.T) {
	if err := ValidateThreshold("assign", 0); err != nil {
		t.Errorf("threshold 0 should be valid (disables check): %v", err)
	}
	if err := ValidateThreshold("assign", -3); err == nil {
		t.Error("negative threshold should be rejected")
	}
}

func TestValidateCategoryName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"assign", false},
		{"right_comment", false},
		{"var_def", false},
		{"", true},
		{"Assign", true},
		{"right comment", true},
		{"right-comment", true},
	}
	for _, tt := range tests {
		err := ValidateCategoryName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCategoryName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"Simple", "doc.json", false},
		{"Nested", "testdata/doc.json", false},
		{"Empty", "", true},
		{"Traversal", "../etc/passwd", true},
		{"NullByte", "doc\x00.json", true},
		{"TooLong", strings.Repeat("a", 501), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
