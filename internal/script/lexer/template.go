package lexer

import (
	"strings"
)

// TemplatePart is one segment of a template literal body: either cooked
// text or the source of an embedded "${...}" expression.
type TemplatePart struct {
	IsExpr bool
	Value  string
	Start  Point
}

// TemplateParts splits the body of a TEMPLATE token into alternating text
// and expression parts. The result always starts and ends with a text part,
// so for n expressions there are n+1 text parts.
func TemplateParts(token *Token) ([]TemplatePart, error) {
	body := []rune(token.Value)

	// body starts right after the opening backtick
	point := token.Position.Start
	point.Column++

	advance := func(r rune) {
		if r == '\n' {
			point.Line++
			point.Column = 1
			return
		}

		point.Column++
	}

	parts := make([]TemplatePart, 0, 1)

	var text strings.Builder
	textStart := point

	for i := 0; i < len(body); i++ {
		r := body[i]

		if r == '\\' && i+1 < len(body) {
			escapePoint := point
			advance(r)

			i++
			advance(body[i])

			cooked, consumed, err := cookEscape(body[i:])
			if err != nil {
				return nil, &Error{Err: err, Point: escapePoint}
			}

			for _, c := range body[i+1 : i+consumed] {
				advance(c)
			}

			i += consumed - 1
			text.WriteString(cooked)

			continue
		}

		if r == '$' && i+1 < len(body) && body[i+1] == '{' {
			parts = append(parts, TemplatePart{Value: text.String(), Start: textStart})
			text.Reset()

			advance(r)
			advance(body[i+1])
			i += 2

			exprStart := point
			end := matchHole(body, i)
			if end < 0 {
				return nil, &Error{Err: ErrUnterminatedTemplate, Point: token.Position.Start}
			}

			parts = append(parts, TemplatePart{IsExpr: true, Value: string(body[i:end]), Start: exprStart})

			for _, c := range body[i : end+1] {
				advance(c)
			}

			i = end
			textStart = point

			continue
		}

		text.WriteRune(r)
		advance(r)
	}

	parts = append(parts, TemplatePart{Value: text.String(), Start: textStart})

	return parts, nil
}

// matchHole returns the index of the brace closing the hole whose body
// starts at from, or -1.
func matchHole(body []rune, from int) int {
	depth := 1

	for i := from; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++

		case '{':
			depth++

		case '}':
			depth--
			if depth == 0 {
				return i
			}

		case '\'', '"', '`':
			quote := body[i]
			for i++; i < len(body) && body[i] != quote; i++ {
				if body[i] == '\\' {
					i++
				}
			}
		}
	}

	return -1
}

// cookEscape decodes the escape whose first rune (after the backslash) is
// at s[0]. It returns the decoded text and the number of runes consumed.
func cookEscape(s []rune) (string, int, error) {
	switch s[0] {
	case 'n':
		return "\n", 1, nil
	case 't':
		return "\t", 1, nil
	case 'r':
		return "\r", 1, nil
	case '0':
		return "\x00", 1, nil
	case '\\', '\'', '"', '`', '$', '{', '}':
		return string(s[0]), 1, nil
	case 'u':
		if len(s) < 5 {
			return "", 0, ErrInvalidEscape
		}

		var code rune
		for _, c := range s[1:5] {
			code <<= 4

			switch {
			case c >= '0' && c <= '9':
				code |= c - '0'
			case c >= 'a' && c <= 'f':
				code |= c - 'a' + 10
			case c >= 'A' && c <= 'F':
				code |= c - 'A' + 10
			default:
				return "", 0, ErrInvalidEscape
			}
		}

		return string(code), 5, nil
	}

	return "", 0, ErrInvalidEscape
}
