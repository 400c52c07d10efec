// Package options defines the named alignment toggles and their TOML
// file format.
//
// Every alignment category carries two knobs: a span (how many newlines
// a pending group may wait before it is forced to commit; zero disables
// the category) and a threshold (maximum column deviation for direct
// acceptance; zero disables tolerance checking). Option files are TOML:
//
//	[assign]
//	span = 4
//	thresh = 8
//
//	[right_comment]
//	span = 3
package options

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/errors"
)

// Category holds the two engine knobs for one alignment category.
type Category struct {
	Span   int `toml:"span" json:"span"`
	Thresh int `toml:"thresh" json:"thresh"`
}

// Options is the full named-toggle set, one entry per alignment
// category. The zero value disables everything; start from [Default].
type Options struct {
	Assign       Category `toml:"assign" json:"assign"`
	EnumEqu      Category `toml:"enum_equ" json:"enum_equ"`
	VarDef       Category `toml:"var_def" json:"var_def"`
	StructInit   Category `toml:"struct_init" json:"struct_init"`
	BitColon     Category `toml:"bit_colon" json:"bit_colon"`
	Typedef      Category `toml:"typedef" json:"typedef"`
	Define       Category `toml:"define" json:"define"`
	RightComment Category `toml:"right_comment" json:"right_comment"`
}

// Default returns the stock option set: assignments, declarations, and
// trailing comments aligned over small spans, everything else off.
func Default() *Options {
	return &Options{
		Assign:       Category{Span: 1},
		VarDef:       Category{Span: 1},
		RightComment: Category{Span: 3},
	}
}

// Load reads a TOML option file layered over the defaults: categories
// absent from the file keep their default knobs.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "option file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML bytes layered over the defaults and validates the
// result.
func Parse(data []byte) (*Options, error) {
	o := Default()
	if err := toml.Unmarshal(data, o); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode options")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks every knob. Returns the first violation.
func (o *Options) Validate() error {
	for _, p := range o.all() {
		name := p.Kind.String()
		if err := errors.ValidateSpan(name, p.Span); err != nil {
			return err
		}
		if err := errors.ValidateThreshold(name, p.Thresh); err != nil {
			return err
		}
	}
	return nil
}

// Pass binds one enabled category to its engine knobs.
type Pass struct {
	Kind   chunk.Kind
	Span   int
	Thresh int
}

// Passes returns the enabled categories (span > 0) in the fixed pass
// order of [chunk.Kinds]. The order is part of the output contract:
// category passes mutate columns sequentially in this order.
func (o *Options) Passes() []Pass {
	var out []Pass
	for _, p := range o.all() {
		if p.Span > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Category returns the knobs for a single kind.
func (o *Options) Category(k chunk.Kind) Category {
	for _, p := range o.all() {
		if p.Kind == k {
			return Category{Span: p.Span, Thresh: p.Thresh}
		}
	}
	return Category{}
}

func (o *Options) all() []Pass {
	return []Pass{
		{chunk.KindAssign, o.Assign.Span, o.Assign.Thresh},
		{chunk.KindEnumEqu, o.EnumEqu.Span, o.EnumEqu.Thresh},
		{chunk.KindVarDef, o.VarDef.Span, o.VarDef.Thresh},
		{chunk.KindStructInit, o.StructInit.Span, o.StructInit.Thresh},
		{chunk.KindBitColon, o.BitColon.Span, o.BitColon.Thresh},
		{chunk.KindTypedef, o.Typedef.Span, o.Typedef.Thresh},
		{chunk.KindDefine, o.Define.Span, o.Define.Thresh},
		{chunk.KindRightComment, o.RightComment.Span, o.RightComment.Thresh},
	}
}
