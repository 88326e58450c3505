package gbnf

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	literalEscapes = `"\`
	rangeEscapes   = `^-[]\`
)

func escapeRune(sb *strings.Builder, r rune, special string) {
	switch {
	case strings.ContainsRune(special, r):
		sb.WriteByte('\\')
		sb.WriteRune(r)
	case r == '\n':
		sb.WriteString(`\n`)
	case r == '\r':
		sb.WriteString(`\r`)
	case r == '\t':
		sb.WriteString(`\t`)
	case r < 0x20, r >= 0x7f && r <= 0x9f:
		fmt.Fprintf(sb, `\x%02X`, r)
	case !unicode.IsPrint(r):
		if r <= 0xffff {
			fmt.Fprintf(sb, `\u%04X`, r)
		} else {
			fmt.Fprintf(sb, `\U%08X`, r)
		}
	default:
		sb.WriteRune(r)
	}
}

func quoteLiteral(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, `\x%02X`, s[i])
		} else {
			escapeRune(&sb, r, literalEscapes)
		}
		i += size
	}
	sb.WriteByte('"')
	return sb.String()
}
