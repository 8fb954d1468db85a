package errors

import (
	stderrors "errors"
	"strings"

	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// ErrOverlappingFix is returned when a fix touches text already changed by
// an earlier fix.
var ErrOverlappingFix = stderrors.New("a fix attempted to modify a range modified by a previous fix")

// Delta is the direction of an edit.
type Delta int

const (
	Adding Delta = iota
	Deleting
)

// Impact records one applied edit in original-source coordinates. A
// deletion covers Range; an insertion sits at Range.Lo and adds Len bytes.
type Impact struct {
	Range source.Location
	Delta Delta
	Len   int
}

// shift reports how far an original range moves because of im.
func (im Impact) shift(r source.Location) (lo, hi int, err error) {
	switch im.Delta {
	case Deleting:
		if r.Overlaps(im.Range) || (r.IsEmpty() && im.Range.Lo < r.Lo && r.Lo < im.Range.Hi) {
			return 0, 0, ErrOverlappingFix
		}
		if r.Lo >= im.Range.Hi {
			lo = -im.Range.Len()
		}
		if r.Hi >= im.Range.Hi {
			hi = -im.Range.Len()
		}
	default:
		p := im.Range.Lo
		if r.Lo < p && p < r.Hi {
			return 0, 0, ErrOverlappingFix
		}
		if r.Lo >= p {
			lo = im.Len
		}
		if r.Hi > p || (r.IsEmpty() && r.Hi >= p) {
			hi = im.Len
		}
	}
	return lo, hi, nil
}

// adjust maps an original range to the current text.
func adjust(impacts []Impact, r source.Location) (source.Location, error) {
	lo, hi := r.Lo, r.Hi
	for _, im := range impacts {
		dlo, dhi, err := im.shift(r)
		if err != nil {
			return r, err
		}
		lo += dlo
		hi += dhi
	}
	return source.Span(lo, hi), nil
}

// Fix is a described, composable edit against the original source.
type Fix interface {
	Locations() []source.Location
	// ApplyTo edits text. Locations refer to original; impacts carries the
	// edits made by earlier fixes.
	ApplyTo(text *string, original string, impacts *[]Impact) error
	Describe(src string) string
	DescribeInContext(src string) string
}

// Apply runs fixes in order against src.
func Apply(src string, fixes ...Fix) (string, error) {
	text := src
	var impacts []Impact
	for _, f := range fixes {
		if err := f.ApplyTo(&text, src, &impacts); err != nil {
			return src, err
		}
	}
	return text, nil
}

// Then sequences fixes, flattening nested sequences.
func Then(first Fix, rest ...Fix) *SequencingFix {
	s := &SequencingFix{}
	for _, f := range append([]Fix{first}, rest...) {
		if seq, ok := f.(*SequencingFix); ok {
			s.Fixes = append(s.Fixes, seq.Fixes...)
		} else {
			s.Fixes = append(s.Fixes, f)
		}
	}
	return s
}

// SequencingFix applies several fixes against the same original text.
type SequencingFix struct {
	Fixes []Fix
}

func (f *SequencingFix) Then(next Fix) *SequencingFix {
	return Then(f, next)
}

func (f *SequencingFix) Locations() []source.Location {
	var locs []source.Location
	for _, fix := range f.Fixes {
		locs = append(locs, fix.Locations()...)
	}
	return locs
}

func (f *SequencingFix) ApplyTo(text *string, original string, impacts *[]Impact) error {
	for _, fix := range f.Fixes {
		if err := fix.ApplyTo(text, original, impacts); err != nil {
			return err
		}
	}
	return nil
}

func (f *SequencingFix) Describe(src string) string {
	parts := make([]string, len(f.Fixes))
	for i, fix := range f.Fixes {
		parts[i] = fix.Describe(src)
	}
	return strings.Join(parts, ", ")
}

func (f *SequencingFix) DescribeInContext(src string) string {
	parts := make([]string, len(f.Fixes))
	for i, fix := range f.Fixes {
		parts[i] = fix.DescribeInContext(src)
	}
	return strings.Join(parts, ", ")
}

// NoOpFix only marks locations.
type NoOpFix struct {
	At []source.Location
}

func (f *NoOpFix) Locations() []source.Location { return f.At }

func (f *NoOpFix) ApplyTo(*string, string, *[]Impact) error { return nil }

func (f *NoOpFix) Describe(string) string { return "(no description provided)" }

func (f *NoOpFix) DescribeInContext(src string) string { return f.Describe(src) }

// DeletingFix removes a range.
type DeletingFix struct {
	At source.Location
}

func (f *DeletingFix) Locations() []source.Location { return []source.Location{f.At} }

func (f *DeletingFix) ApplyTo(text *string, original string, impacts *[]Impact) error {
	r := f.At.Clamp(len(original))
	adjusted, err := adjust(*impacts, r)
	if err != nil {
		return err
	}
	adjusted = adjusted.Clamp(len(*text))
	*text = (*text)[:adjusted.Lo] + (*text)[adjusted.Hi:]
	*impacts = append(*impacts, Impact{Range: r, Delta: Deleting})
	return nil
}

func (f *DeletingFix) Describe(src string) string {
	return "delete ‘" + f.At.Snippet(src) + "’"
}

func (f *DeletingFix) DescribeInContext(src string) string { return f.Describe(src) }

// PrependingFix inserts text before a location.
type PrependingFix struct {
	Text string
	At   source.Location
}

func (f *PrependingFix) Locations() []source.Location { return []source.Location{f.At} }

func (f *PrependingFix) ApplyTo(text *string, original string, impacts *[]Impact) error {
	r := f.At.Clamp(len(original))
	return insert(text, impacts, r.Start(), f.Text)
}

func (f *PrependingFix) Describe(string) string { return "add ‘" + f.Text + "’" }

func (f *PrependingFix) DescribeInContext(src string) string {
	return f.Describe(src) + " before ‘" + wordAt(src, f.At) + "’"
}

// AppendingFix inserts text after a location.
type AppendingFix struct {
	Text string
	At   source.Location
}

func (f *AppendingFix) Locations() []source.Location { return []source.Location{f.At} }

func (f *AppendingFix) ApplyTo(text *string, original string, impacts *[]Impact) error {
	r := f.At.Clamp(len(original))
	return insert(text, impacts, r.End(), f.Text)
}

func (f *AppendingFix) Describe(string) string { return "add ‘" + f.Text + "’" }

func (f *AppendingFix) DescribeInContext(src string) string {
	return f.Describe(src) + " after ‘" + wordAt(src, f.At) + "’"
}

func insert(text *string, impacts *[]Impact, at source.Location, s string) error {
	adjusted, err := adjust(*impacts, at)
	if err != nil {
		return err
	}
	adjusted = adjusted.Clamp(len(*text))
	*text = (*text)[:adjusted.Lo] + s + (*text)[adjusted.Lo:]
	*impacts = append(*impacts, Impact{Range: at, Delta: Adding, Len: len(s)})
	return nil
}

func wordAt(src string, loc source.Location) string {
	loc = loc.Clamp(len(src))
	if w, ok := term.NextWord(src[loc.Lo:]); ok {
		return w
	}
	return loc.Snippet(src)
}

// TransposingFix swaps the text of two ranges.
type TransposingFix struct {
	First, Second source.Location
}

func (f *TransposingFix) Locations() []source.Location {
	return []source.Location{f.First, f.Second}
}

func (f *TransposingFix) ApplyTo(text *string, original string, impacts *[]Impact) error {
	a, b := f.First.Clamp(len(original)), f.Second.Clamp(len(original))
	if a.Overlaps(b) {
		return ErrOverlappingFix
	}
	aText, bText := original[a.Lo:a.Hi], original[b.Lo:b.Hi]
	adjA, err := adjust(*impacts, a)
	if err != nil {
		return err
	}
	adjB, err := adjust(*impacts, b)
	if err != nil {
		return err
	}
	replace := func(r source.Location, s string) {
		*text = (*text)[:r.Lo] + s + (*text)[r.Hi:]
	}
	if adjA.Lo > adjB.Lo {
		replace(adjA, bText)
		replace(adjB, aText)
	} else {
		replace(adjB, aText)
		replace(adjA, bText)
	}
	*impacts = append(*impacts,
		Impact{Range: a, Delta: Deleting},
		Impact{Range: a.Start(), Delta: Adding, Len: len(bText)},
		Impact{Range: b, Delta: Deleting},
		Impact{Range: b.Start(), Delta: Adding, Len: len(aText)},
	)
	return nil
}

func (f *TransposingFix) Describe(src string) string {
	return "transpose ‘" + f.First.Snippet(src) + "’ and ‘" + f.Second.Snippet(src) + "’"
}

func (f *TransposingFix) DescribeInContext(src string) string { return f.Describe(src) }

// SuggestingFix wraps a fix in a human suggestion; "{FIX}" in Suggestion is
// replaced by the wrapped fix's description.
type SuggestingFix struct {
	Suggestion string
	Fix        Fix
}

// Suggest builds a suggestion that applies nothing.
func Suggest(suggestion string, at ...source.Location) *SuggestingFix {
	return &SuggestingFix{Suggestion: suggestion, Fix: &NoOpFix{At: at}}
}

func (f *SuggestingFix) Locations() []source.Location { return f.Fix.Locations() }

func (f *SuggestingFix) ApplyTo(text *string, original string, impacts *[]Impact) error {
	return f.Fix.ApplyTo(text, original, impacts)
}

func (f *SuggestingFix) Describe(src string) string {
	return strings.ReplaceAll(f.Suggestion, "{FIX}", f.Fix.Describe(src))
}

func (f *SuggestingFix) DescribeInContext(src string) string {
	return strings.ReplaceAll(f.Suggestion, "{FIX}", f.Fix.DescribeInContext(src))
}
