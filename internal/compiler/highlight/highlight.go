// Package highlight renders the source annotations a parse produces, either
// as styled terminal text or as a plain listing.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/btouchard/bushel/internal/compiler/source"
)

// Palette
var (
	ColorKeyword   = lipgloss.Color("#8B5CF6") // Violet
	ColorOperator  = lipgloss.Color("#94A3B8") // Slate 400
	ColorType      = lipgloss.Color("#06B6D4") // Cyan
	ColorCommand   = lipgloss.Color("#F59E0B") // Amber
	ColorValue     = lipgloss.Color("#10B981") // Emerald
	ColorVariable  = lipgloss.Color("#F8FAFC") // Slate 50
	ColorResource  = lipgloss.Color("#EF4444") // Red
	ColorComment   = lipgloss.Color("#6B7280") // Gray
	ColorParameter = lipgloss.Color("#FBBF24") // Amber 400
)

// Theme maps each styling category to a style. Categories without an entry
// are printed as is.
type Theme map[source.Styling]lipgloss.Style

// DefaultTheme is a dark-background theme.
func DefaultTheme() Theme {
	return Theme{
		source.StylingKeyword:    lipgloss.NewStyle().Foreground(ColorKeyword).Bold(true),
		source.StylingOperator:   lipgloss.NewStyle().Foreground(ColorOperator),
		source.StylingDictionary: lipgloss.NewStyle().Foreground(ColorType).Underline(true),
		source.StylingType:       lipgloss.NewStyle().Foreground(ColorType),
		source.StylingProperty:   lipgloss.NewStyle().Foreground(ColorType).Italic(true),
		source.StylingConstant:   lipgloss.NewStyle().Foreground(ColorValue).Bold(true),
		source.StylingCommand:    lipgloss.NewStyle().Foreground(ColorCommand),
		source.StylingParameter:  lipgloss.NewStyle().Foreground(ColorParameter).Italic(true),
		source.StylingVariable:   lipgloss.NewStyle().Foreground(ColorVariable),
		source.StylingResource:   lipgloss.NewStyle().Foreground(ColorResource).Bold(true),
		source.StylingComment:    lipgloss.NewStyle().Foreground(ColorComment).Italic(true),
		source.StylingString:     lipgloss.NewStyle().Foreground(ColorValue),
		source.StylingNumber:     lipgloss.NewStyle().Foreground(ColorValue),
		source.StylingWeave:      lipgloss.NewStyle().Foreground(ColorComment),
	}
}

// Render returns src with every annotated terminal styled by theme. Text
// between terminals is copied unchanged, and a terminal overlapping an
// earlier one is skipped.
func Render(src string, elements *source.Set, theme Theme) string {
	var b strings.Builder
	pos := 0
	for _, e := range elements.Terminals() {
		loc := e.Location.Clamp(len(src))
		if loc.Lo < pos || loc.IsEmpty() {
			continue
		}
		b.WriteString(src[pos:loc.Lo])
		b.WriteString(style(theme, e.Styling, src[loc.Lo:loc.Hi]))
		pos = loc.Hi
	}
	b.WriteString(src[pos:])
	return b.String()
}

// style renders each line of text separately so multi-line terminals such
// as block comments are not padded to a common width.
func style(theme Theme, styling source.Styling, text string) string {
	st, ok := theme[styling]
	if !ok {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = st.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// List writes one line per element: position, kind, styling and text.
func List(w io.Writer, src string, elements *source.Set) error {
	for _, e := range elements.Elements() {
		pos := e.Location.Position(src, "")
		var err error
		if e.Kind == source.KindIndentation {
			_, err = fmt.Fprintf(w, "%d:%d\tindent\t%d\n", pos.Line, pos.Column, e.Level)
		} else {
			_, err = fmt.Fprintf(w, "%d:%d\t%s\t%q\n", pos.Line, pos.Column, e.Styling, e.Location.Text(src))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
