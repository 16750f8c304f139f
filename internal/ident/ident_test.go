package ident

import (
	"regexp"
	"testing"
)

func TestUserID(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"a.b@x.com", "a_b_x_com"},
		{"ann@example.com", "ann_example_com"},
		{"under_score-ok@x.io", "under_score-ok_x_io"},
		{"UPPER@Case.COM", "UPPER_Case_COM"},
		{"weird+tag@x.com", "weird_tag_x_com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := UserID(tt.email); got != tt.want {
			t.Errorf("UserID(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestUserIDAlphabetAndDeterminism(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

	emails := []string{
		"a.b@x.com",
		"spaces in here@x.com",
		"!#$%&'*/=?@x.com",
		"héllo@wörld.de",
	}

	for _, email := range emails {
		first := UserID(email)
		second := UserID(email)
		if first != second {
			t.Errorf("UserID(%q) not deterministic: %q vs %q", email, first, second)
		}
		if !valid.MatchString(first) {
			t.Errorf("UserID(%q) = %q contains characters outside [A-Za-z0-9_-]", email, first)
		}
		if len(first) != len(email) {
			t.Errorf("UserID(%q) = %q changed length", email, first)
		}
	}
}
