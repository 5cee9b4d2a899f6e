package models

import "testing"

func TestBadgeForViews(t *testing.T) {
	tests := []struct {
		views int64
		want  string
	}{
		{0, ""},
		{80, ""},
		{81, "popular"},
		{150, "popular"},
		{151, "trending"},
		{10000, "trending"},
	}

	for _, tt := range tests {
		if got := BadgeForViews(tt.views); got != tt.want {
			t.Errorf("BadgeForViews(%d) = %q, want %q", tt.views, got, tt.want)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	valid := []string{"food", "drink", "dessert", "nasi goreng", "kopi-susu", "es"}
	for _, name := range valid {
		if err := ValidateCategory(name); err != nil {
			t.Errorf("ValidateCategory(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "  ", "A", "Nasi Goreng", "too long category label here", "emoji🔥"}
	for _, name := range invalid {
		if err := ValidateCategory(name); err == nil {
			t.Errorf("ValidateCategory(%q) = nil, want error", name)
		}
	}
}
