package narrative

import "testing"

func TestContentFilter_Apply(t *testing.T) {
	cf := NewContentFilter()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase word",
			input: "that plan is damn risky",
			want:  "that plan is dang risky",
		},
		{
			name:  "title case preserved",
			input: "Damn the torpedoes",
			want:  "Dang the torpedoes",
		},
		{
			name:  "uppercase preserved",
			input: "HELL no",
			want:  "HECK no",
		},
		{
			name:  "longer word wins over substring",
			input: "pure bullshit",
			want:  "pure nonsense",
		},
		{
			name:  "word boundaries respected",
			input: "the classic assembly hall",
			want:  "the classic assembly hall",
		},
		{
			name:  "clean text unchanged",
			input: "Greetings, traveler. Welcome aboard.",
			want:  "Greetings, traveler. Welcome aboard.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cf.Apply(tt.input); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShouldFilterContent(t *testing.T) {
	tests := []struct {
		rating string
		want   bool
	}{
		{"G", true},
		{"pg", true},
		{"PG-13", true},
		{"PG13", true},
		{" pg13 ", true},
		{"R", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ShouldFilterContent(tt.rating); got != tt.want {
			t.Errorf("ShouldFilterContent(%q) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
