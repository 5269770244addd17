package ast

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/wildfunctions/exath/pkg/exatherr"
)

// Lex tokenizes source into a slice of Tokens terminated by TokEOF.
//
// A handful of lexical rules exist only because this grammar allows
// them and a naive scan would misread them: "mod" is a keyword only
// when it can't be a variable name being multiplied (i.e. only right
// after something that ends an expression); "," is a decimal point
// only when immediately followed by a digit, otherwise it is the
// argument separator; "e"/"E" starts scientific notation only
// immediately after digits already consumed as part of the same
// literal, never as the start of a bare identifier named e.
func Lex(source string) ([]Token, error) {
	r := []rune(source)
	n := len(r)
	toks := make([]Token, 0, n/2+1)

	// prevEndsExpr tracks whether the most recently emitted token could
	// be the last token of a complete expression (number, ident, ')',
	// '|', '!'). "mod" is an operator only when this is true; otherwise
	// it is an identifier (e.g. the start of a function definition
	// parameter list, or a bare variable named mod).
	prevEndsExpr := false

	pos := 0
	for pos < n {
		c := r[pos]

		if unicode.IsSpace(c) {
			pos++
			continue
		}

		start := pos

		switch {
		case c == '(':
			toks = append(toks, Token{Kind: TokLParen, Pos: start})
			pos++
			prevEndsExpr = false

		case c == ')':
			toks = append(toks, Token{Kind: TokRParen, Pos: start})
			pos++
			prevEndsExpr = true

		case c == ',':
			toks = append(toks, Token{Kind: TokComma, Pos: start})
			pos++
			prevEndsExpr = false

		case c == '|':
			if pos+1 < n && r[pos+1] == '|' {
				toks = append(toks, Token{Kind: TokOrOr, Pos: start})
				pos += 2
				prevEndsExpr = false
				break
			}
			toks = append(toks, Token{Kind: TokPipe, Pos: start})
			pos++
			prevEndsExpr = !prevEndsExpr // a pipe both closes and opens |x|

		case c == '+':
			toks = append(toks, Token{Kind: TokPlus, Pos: start})
			pos++
			prevEndsExpr = false

		case c == '-':
			toks = append(toks, Token{Kind: TokMinus, Pos: start})
			pos++
			prevEndsExpr = false

		case c == '*':
			if pos+1 < n && r[pos+1] == '*' {
				toks = append(toks, Token{Kind: TokStarStar, Pos: start})
				pos += 2
			} else {
				toks = append(toks, Token{Kind: TokStar, Pos: start})
				pos++
			}
			prevEndsExpr = false

		case c == '/':
			toks = append(toks, Token{Kind: TokSlash, Pos: start})
			pos++
			prevEndsExpr = false

		case c == '%':
			toks = append(toks, Token{Kind: TokPercent, Pos: start})
			pos++
			prevEndsExpr = false

		case c == '^':
			toks = append(toks, Token{Kind: TokCaret, Pos: start})
			pos++
			prevEndsExpr = false

		case c == '!':
			if pos+1 < n && r[pos+1] == '=' {
				toks = append(toks, Token{Kind: TokNe, Pos: start})
				pos += 2
				prevEndsExpr = false
			} else {
				toks = append(toks, Token{Kind: TokBang, Pos: start})
				pos++
				// ambiguous: prefix-not precedes an expr, postfix-fact
				// follows one. The parser resolves this, not the lexer.
				prevEndsExpr = true
			}

		case c == '=':
			if pos+1 < n && r[pos+1] == '=' {
				toks = append(toks, Token{Kind: TokEqEq, Pos: start})
				pos += 2
			} else {
				toks = append(toks, Token{Kind: TokAssign, Pos: start})
				pos++
			}
			prevEndsExpr = false

		case c == '<':
			if pos+1 < n && r[pos+1] == '=' {
				toks = append(toks, Token{Kind: TokLe, Pos: start})
				pos += 2
			} else {
				toks = append(toks, Token{Kind: TokLt, Pos: start})
				pos++
			}
			prevEndsExpr = false

		case c == '>':
			if pos+1 < n && r[pos+1] == '=' {
				toks = append(toks, Token{Kind: TokGe, Pos: start})
				pos += 2
			} else {
				toks = append(toks, Token{Kind: TokGt, Pos: start})
				pos++
			}
			prevEndsExpr = false

		case c == '&':
			if pos+1 < n && r[pos+1] == '&' {
				toks = append(toks, Token{Kind: TokAndAnd, Pos: start})
				pos += 2
				prevEndsExpr = false
				break
			}
			return nil, exatherr.Parse("unexpected character '&' at position %d", start+1)

		case c == '√':
			toks = append(toks, Token{Kind: TokIdent, Str: "sqrt", Pos: start})
			pos++
			prevEndsExpr = true

		case c == 'π' || c == 'φ' || c == 'ε':
			toks = append(toks, Token{Kind: TokIdent, Str: string(c), Pos: start})
			pos++
			prevEndsExpr = true

		case unicode.IsDigit(c):
			end := pos
			sawDot := false
			for end < n {
				d := r[end]
				if unicode.IsDigit(d) {
					end++
					continue
				}
				if (d == '.' || d == ',') && !sawDot && end+1 < n && unicode.IsDigit(r[end+1]) {
					sawDot = true
					end++
					continue
				}
				if (d == 'e' || d == 'E') && end+1 < n && isExponentStart(r, end+1) {
					end++
					if r[end] == '+' || r[end] == '-' {
						end++
					}
					for end < n && unicode.IsDigit(r[end]) {
						end++
					}
					break
				}
				break
			}
			lit := normalizeDecimal(string(r[start:end]))
			val, err := parseFloat(lit)
			if err != nil {
				return nil, exatherr.Parse("invalid numeric literal %q at position %d", string(r[start:end]), start+1)
			}
			toks = append(toks, Token{Kind: TokNumber, Num: val, Pos: start})
			pos = end
			prevEndsExpr = true

		case isIdentStart(c):
			end := pos + 1
			for end < n && isIdentCont(r[end]) {
				end++
			}
			name := string(r[start:end])

			// log:N attaches a numeric base directly onto the identifier.
			if name == "log" && end < n && r[end] == ':' {
				baseEnd := end + 1
				for baseEnd < n && (unicode.IsDigit(r[baseEnd]) || r[baseEnd] == '.') {
					baseEnd++
				}
				if baseEnd > end+1 {
					name = string(r[start:baseEnd])
					end = baseEnd
				}
			}

			if name == "mod" && prevEndsExpr {
				toks = append(toks, Token{Kind: TokMod, Pos: start})
			} else {
				toks = append(toks, Token{Kind: TokIdent, Str: name, Pos: start})
			}
			pos = end
			prevEndsExpr = true

		default:
			return nil, exatherr.Parse("unexpected character %q at position %d", string(c), start+1)
		}
	}

	toks = append(toks, Token{Kind: TokEOF, Pos: pos})
	return toks, nil
}

func parseFloat(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}

func isExponentStart(r []rune, i int) bool {
	if i >= len(r) {
		return false
	}
	if r[i] == '+' || r[i] == '-' {
		return i+1 < len(r) && unicode.IsDigit(r[i+1])
	}
	return unicode.IsDigit(r[i])
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentCont(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

// normalizeDecimal rewrites a comma decimal separator to a dot so
// strconv.ParseFloat can consume it.
func normalizeDecimal(lit string) string {
	return strings.Replace(lit, ",", ".", 1)
}
