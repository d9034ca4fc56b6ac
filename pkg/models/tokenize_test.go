package models

import (
	"slices"
	"testing"
)

func TestTokenizerSplit(t *testing.T) {
	tests := []struct {
		name string
		tok  Tokenizer
		in   string
		want []string
	}{
		{"whitespace collapses", fieldTokenizer, "v  1.0\t2.0 3.0\r\n", []string{"v", "1.0", "2.0", "3.0"}},
		{"whitespace empty", fieldTokenizer, "   ", nil},
		{"slash full", refTokenizer, "1/3/2", []string{"1", "3", "2"}},
		{"slash double", refTokenizer, "1//2", []string{"1", "", "2"}},
		{"slash single", refTokenizer, "1/2", []string{"1", "2"}},
		{"slash bare", refTokenizer, "7", []string{"7"}},
		{"slash trailing", refTokenizer, "1//", []string{"1", "", ""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.tok.Split(tc.in)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Split(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
