package options

import (
	"testing"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/errors"
)

func TestDefault(t *testing.T) {
	o := Default()

	if o.Assign.Span != 1 || o.RightComment.Span != 3 {
		t.Errorf("unexpected defaults: assign=%+v right_comment=%+v", o.Assign, o.RightComment)
	}
	if o.StructInit.Span != 0 {
		t.Errorf("struct_init should be disabled by default, got span %d", o.StructInit.Span)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestParseLayersOverDefaults(t *testing.T) {
	o, err := Parse([]byte(`
[assign]
span = 4
thresh = 8

[struct_init]
span = 2
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if o.Assign.Span != 4 || o.Assign.Thresh != 8 {
		t.Errorf("assign = %+v, want {4 8}", o.Assign)
	}
	if o.StructInit.Span != 2 {
		t.Errorf("struct_init span = %d, want 2", o.StructInit.Span)
	}
	// Untouched category keeps its default.
	if o.RightComment.Span != 3 {
		t.Errorf("right_comment span = %d, want default 3", o.RightComment.Span)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"NegativeSpan", "[assign]\nspan = -1\n"},
		{"NegativeThresh", "[var_def]\nthresh = -2\n"},
		{"Garbage", "not toml at all ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidOptions) {
				t.Errorf("code = %s, want INVALID_OPTIONS", errors.GetCode(err))
			}
		})
	}
}

func TestPassesOrderAndFiltering(t *testing.T) {
	o := &Options{
		RightComment: Category{Span: 3},
		Assign:       Category{Span: 2, Thresh: 4},
	}

	passes := o.Passes()
	if len(passes) != 2 {
		t.Fatalf("passes = %d, want 2", len(passes))
	}
	// Pass order is fixed by category, not by declaration order.
	if passes[0].Kind != chunk.KindAssign || passes[1].Kind != chunk.KindRightComment {
		t.Errorf("pass order = [%s %s], want [assign right_comment]", passes[0].Kind, passes[1].Kind)
	}
	if passes[0].Span != 2 || passes[0].Thresh != 4 {
		t.Errorf("assign pass = %+v", passes[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.toml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestCategory(t *testing.T) {
	o := Default()
	got := o.Category(chunk.KindRightComment)
	if got.Span != 3 || got.Thresh != 0 {
		t.Errorf("Category(right_comment) = %+v, want {3 0}", got)
	}
}
