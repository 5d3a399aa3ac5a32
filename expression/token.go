/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenPlaceholder
	tokenNumber
	tokenString
	tokenCompare // = < > <= >=
	tokenComma
	tokenAnd
	tokenSet
	tokenRemove
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenize splits an expression into tokens. Keywords (AND, SET, REMOVE) are
// matched case-insensitively; attribute names are case-sensitive.
func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == ',':
			tokens = append(tokens, token{kind: tokenComma, text: ",", pos: i})
			i++
		case c == '=':
			tokens = append(tokens, token{kind: tokenCompare, text: "=", pos: i})
			i++
		case c == '<' || c == '>':
			op := string(c)
			if i+1 < len(input) && input[i+1] == '=' {
				op += "="
				i++
			}
			tokens = append(tokens, token{kind: tokenCompare, text: op, pos: i})
			i++
		case c == ':':
			start := i
			i++
			for i < len(input) && isIdentChar(rune(input[i])) {
				i++
			}
			if i == start+1 {
				return nil, fmt.Errorf("empty placeholder name at position %d", start)
			}
			tokens = append(tokens, token{kind: tokenPlaceholder, text: input[start:i], pos: start})
		case c == '\'' || c == '"':
			quote := c
			start := i
			i++
			for i < len(input) && input[i] != quote {
				i++
			}
			if i >= len(input) {
				return nil, fmt.Errorf("unterminated string literal at position %d", start)
			}
			tokens = append(tokens, token{kind: tokenString, text: input[start+1 : i], pos: start})
			i++
		case c >= '0' && c <= '9' || c == '-':
			start := i
			i++
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' || input[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: input[start:i], pos: start})
		case isIdentStart(rune(c)):
			start := i
			for i < len(input) && isIdentChar(rune(input[i])) {
				i++
			}
			word := input[start:i]
			kind := tokenIdent
			switch strings.ToUpper(word) {
			case "AND":
				kind = tokenAnd
			case "SET":
				kind = tokenSet
			case "REMOVE":
				kind = tokenRemove
			}
			tokens = append(tokens, token{kind: kind, text: word, pos: start})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '#'
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}
