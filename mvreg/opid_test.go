package mvreg

import "testing"

func TestOpIdCompareByCounterThenActor(t *testing.T) {
	tests := []struct {
		name string
		a, b OpId
		want int
	}{
		{"lower counter", OpId{1, "a"}, OpId{2, "a"}, -1},
		{"higher counter", OpId{3, "a"}, OpId{2, "a"}, 1},
		{"equal", OpId{2, "a"}, OpId{2, "a"}, 0},
		{"tie broken by actor, a < b", OpId{2, "a"}, OpId{2, "b"}, -1},
		{"tie broken by actor, a > b", OpId{2, "z"}, OpId{2, "a"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Fatalf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOpIdStringRoundTrips(t *testing.T) {
	ids := []OpId{
		{0, "a"},
		{42, "actor-1"},
		{1000000, "z"},
	}
	for _, id := range ids {
		s := id.String()
		got, err := ParseOpID(s)
		if err != nil {
			t.Fatalf("ParseOpID(%q) error: %v", s, err)
		}
		if got != id {
			t.Fatalf("round trip: got %v, want %v", got, id)
		}
	}
}

func TestParseOpIDRejectsMalformed(t *testing.T) {
	cases := []string{"", "noatsign", "5@", "@actor", "abc@actor"}
	for _, c := range cases {
		if _, err := ParseOpID(c); err == nil {
			t.Fatalf("ParseOpID(%q): expected error, got nil", c)
		}
	}
}
