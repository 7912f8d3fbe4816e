package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims edges", "  配管工事  ", "配管工事"},
		{"collapses runs", "配管  工事", "配管 工事"},
		{"full-width space", "配管　工事", "配管 工事"},
		{"empty", "", ""},
		{"only spaces", " 　 ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"folds digits", "内１２号", "内12号"},
		{"folds latin", "Ａ工事", "A工事"},
		{"strips all whitespace", " 名称 ・ 規格 ", "名称・規格"},
		{"strips full-width space", "名　称", "名称"},
		{"mixed widths collapse to one form", "１2３", "123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.in))
		})
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	inputs := []string{"内１２号", "名称 ・ 規格", "配管　工事", "Ａｂｃ １２３"}
	for _, in := range inputs {
		once := Canonical(in)
		assert.Equal(t, once, Canonical(once))
	}
}
