// Package timefmt renders a flat number of seconds as hours, minutes and
// seconds using a small layout language.
//
// A layout is literal text mixed with unit tokens. A token is a run of one
// unit letter (h, m or s); its length is the zero-padded width. A leading '*'
// drops the unit, together with the literal text that follows it, when its
// value is zero. An s token may end in ".S" to print milliseconds.
//
// When the layout contains '(' only parenthesised tokens are units, which
// lets the literal text use the letters h, m and s:
//
//	Format(5025.678, "h:m:s")                 -> "1:23:45"
//	Format(78.9, "*h:m:s.S")                  -> "1:18.900"
//	Format(88, "(*h)h (*m)min (s)s")          -> "1min 28s"
//
// Minutes are taken modulo the hour only when the layout has an h token, and
// seconds modulo the minute only when it has an m token.
package timefmt

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type token struct {
	unit     byte
	width    int
	suppress bool
	millis   bool
	// literal text printed after the token.
	tail string
}

// Layout is a parsed layout string.
type Layout struct {
	head   string
	tokens []token
	hasH   bool
	hasM   bool
}

// Compile parses layout. It never fails: text that is not a token is literal.
func Compile(layout string) *Layout {
	l := &Layout{}
	if strings.Contains(layout, "(") {
		l.parseParens(layout)
	} else {
		l.parseBare(layout)
	}
	for _, t := range l.tokens {
		switch t.unit {
		case 'h':
			l.hasH = true
		case 'm':
			l.hasM = true
		}
	}
	return l
}

func isUnit(c byte) bool { return c == 'h' || c == 'm' || c == 's' }

// scanToken reads an optional '*', a run of one unit letter and an optional
// ".S" suffix for seconds. n is 0 when s does not start with a token.
func scanToken(s string) (t token, n int) {
	i := 0
	if i < len(s) && s[i] == '*' {
		t.suppress = true
		i++
	}
	if i >= len(s) || !isUnit(s[i]) {
		return token{}, 0
	}
	t.unit = s[i]
	for i < len(s) && s[i] == t.unit {
		t.width++
		i++
	}
	if t.unit == 's' && strings.HasPrefix(s[i:], ".S") {
		t.millis = true
		i += 2
	}
	return t, i
}

func (l *Layout) appendLiteral(s string) {
	if len(l.tokens) == 0 {
		l.head += s
		return
	}
	l.tokens[len(l.tokens)-1].tail += s
}

func (l *Layout) parseBare(layout string) {
	for i := 0; i < len(layout); {
		if t, n := scanToken(layout[i:]); n > 0 {
			l.tokens = append(l.tokens, t)
			i += n
			continue
		}
		l.appendLiteral(layout[i : i+1])
		i++
	}
}

func (l *Layout) parseParens(layout string) {
	rest := layout
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			l.appendLiteral(rest)
			return
		}
		l.appendLiteral(rest[:open])
		rest = rest[open+1:]
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			l.appendLiteral("(" + rest)
			return
		}
		inner := rest[:end]
		rest = rest[end+1:]
		if t, n := scanToken(inner); n == len(inner) && n > 0 {
			l.tokens = append(l.tokens, t)
			continue
		}
		l.appendLiteral("(" + inner + ")")
	}
}

// Format renders seconds. Negative values render as zero.
func (l *Layout) Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	hours := math.Floor(seconds / 3600)
	minutes := math.Floor(seconds / 60)
	if l.hasH {
		minutes = math.Floor(math.Mod(seconds, 3600) / 60)
	}
	secs := seconds
	if l.hasM {
		secs = math.Mod(seconds, 60)
	}

	var b strings.Builder
	b.WriteString(l.head)
	for _, t := range l.tokens {
		var v float64
		switch t.unit {
		case 'h':
			v = hours
		case 'm':
			v = minutes
		default:
			v = secs
		}

		if t.millis {
			v = math.Round(v*1000) / 1000
			if t.suppress && v == 0 {
				continue
			}
			fmt.Fprintf(&b, "%0*.3f", t.width+4, v)
		} else {
			iv := int64(v)
			if t.suppress && iv == 0 {
				continue
			}
			fmt.Fprintf(&b, "%0*d", t.width, iv)
		}
		b.WriteString(t.tail)
	}
	return b.String()
}

// Format renders seconds with layout.
func Format(seconds float64, layout string) string {
	return Compile(layout).Format(seconds)
}

// FormatDuration renders d with layout.
func FormatDuration(d time.Duration, layout string) string {
	return Compile(layout).Format(d.Seconds())
}
