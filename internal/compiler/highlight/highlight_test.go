package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/btouchard/bushel/internal/compiler/english"
	"github.com/btouchard/bushel/internal/compiler/parser"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

func upper() lipgloss.Style { return lipgloss.NewStyle().Transform(strings.ToUpper) }

func set(elems ...source.Element) *source.Set {
	s := source.NewSet()
	for _, e := range elems {
		s.Insert(e)
	}
	return s
}

func TestRender(t *testing.T) {
	src := "let x be 1 --( a\nb )--"
	elems := set(
		source.Terminal("let", source.Span(0, 3), source.StylingKeyword, source.SpacingLeftRight),
		source.Terminal("x", source.Span(4, 5), source.StylingVariable, source.SpacingLeftRight),
		source.Terminal("be", source.Span(6, 8), source.StylingKeyword, source.SpacingLeftRight),
		source.Terminal("1", source.Span(9, 10), source.StylingNumber, source.SpacingLeftRight),
		source.Terminal("--( a\nb )--", source.Span(11, 22), source.StylingComment, source.SpacingNone),
		source.Indentation(0, source.At(0)),
	)

	tests := []struct {
		name  string
		theme Theme
		want  string
	}{
		{"empty theme", Theme{}, src},
		{"keywords", Theme{source.StylingKeyword: upper()}, "LET x BE 1 --( a\nb )--"},
		{"multi-line comment", Theme{source.StylingComment: upper()}, "let x be 1 --( A\nB )--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(src, elems, tt.theme); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderSkipsOverlaps(t *testing.T) {
	src := "is not a list"
	elems := set(
		source.Terminal("is not a", source.Span(0, 8), source.StylingOperator, source.SpacingLeftRight),
		source.Terminal("not", source.Span(3, 6), source.StylingKeyword, source.SpacingLeftRight),
		source.Terminal("list", source.Span(9, 13), source.StylingType, source.SpacingLeftRight),
	)
	theme := Theme{source.StylingOperator: upper(), source.StylingKeyword: upper(), source.StylingType: upper()}
	if got, want := Render(src, elems, theme), "IS NOT A LIST"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDefaultThemeCoversEveryStyling(t *testing.T) {
	theme := DefaultTheme()
	for s := source.StylingKeyword; s <= source.StylingWeave; s++ {
		if _, ok := theme[s]; !ok {
			t.Errorf("expected a style for %s", s)
		}
	}
}

func TestList(t *testing.T) {
	src := "let x be 1\nlog x"
	prog, err := english.New(nil, parser.WithPool(term.NewPool())).Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var b strings.Builder
	if err := List(&b, src, prog.Elements); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"1:1\tkeyword\t\"let\"\n",
		"1:5\tvariable\t\"x\"\n",
		"1:7\tkeyword\t\"be\"\n",
		"1:10\tnumber\t\"1\"\n",
		"2:1\tcommand\t\"log\"\n",
		"2:5\tvariable\t\"x\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected listing to contain %q, got:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "\tindent\t") {
		t.Errorf("expected indentation markers in listing, got:\n%s", out)
	}
}
