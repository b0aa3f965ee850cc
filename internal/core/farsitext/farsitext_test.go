package farsitext

import (
	"reflect"
	"testing"
)

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"persian digits", "۱۴۰۳/۱۰/۱۸", "1403/10/18"},
		{"arabic-indic digits", "٢٠٢٤", "2024"},
		{"mixed text untouched", "سال ۱۴۰۳ بود", "سال 1403 بود"},
		{"ascii passthrough", "abc 123", "abc 123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDigits(tt.in); got != tt.want {
				t.Errorf("NormalizeDigits(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		word string
		ok   bool
	}{
		{"standalone word", "هجدهم دی ماه", "دی", true},
		{"word at start", "دی ماه سرد بود", "دی", true},
		{"word at end", "هجدهم دی", "دی", true},
		{"embedded in longer word", "نزدیک خانه", "دی", false},
		{"joined compound", "دیماه", "دی", false},
		{"zwnj joins the word", "پس‌فردا", "فردا", false},
		{"latin neighbors are boundaries", "x دی y", "دی", true},
		{"digit neighbors are boundaries", "18 دی 1403", "دی", true},
		{"absent", "سلام", "دی", false},
		{"empty word", "متن", "", false},
		{"second occurrence valid", "نزدیک دی", "دی", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ContainsWord(tt.text, tt.word); ok != tt.ok {
				t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.text, tt.word, ok, tt.ok)
			}
		})
	}
}

func TestTokenizeKeepsZWNJ(t *testing.T) {
	got := Tokenize("دیروز در سعادت‌آباد تهران، هوا سرد بود!")
	want := []string{"دیروز", "در", "سعادت‌آباد", "تهران", "هوا", "سرد", "بود"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
