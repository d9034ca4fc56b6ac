package models

import (
	"strings"
	"unicode/utf8"
)

// Tokenizer splits a string on any rune of a delimiter set.
//
// With KeepEmpty unset, runs of delimiters collapse and no empty fields are
// produced (whitespace splitting). With KeepEmpty set, every delimiter
// separates two fields, so "1//2" yields "1", "", "2".
type Tokenizer struct {
	Delims    string
	KeepEmpty bool
}

var (
	fieldTokenizer = Tokenizer{Delims: " \t\r\n\v\f"}
	refTokenizer   = Tokenizer{Delims: "/", KeepEmpty: true}
)

// Split returns the fields of s.
func (t Tokenizer) Split(s string) []string {
	isDelim := func(r rune) bool { return strings.ContainsRune(t.Delims, r) }
	if !t.KeepEmpty {
		return strings.FieldsFunc(s, isDelim)
	}

	var out []string
	start := 0
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if isDelim(r) {
			out = append(out, s[start:i])
			start = i + w
		}
		i += w
	}
	return append(out, s[start:])
}
