package semver

import "testing"

func TestAllows(t *testing.T) {
	c, err := ParseConstraint(">=0.1.0 <1.0.0")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		version  string
		expected bool
	}{
		{"0.1.0", true},
		{"0.9.9", true},
		{"1.0.0", false},
		{"0.0.9", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := c.Allows(MustParseVersion(tt.version)); got != tt.expected {
				t.Errorf("Allows(%s) = %v, want %v", tt.version, got, tt.expected)
			}
		})
	}

	if c.Allows(Version{}) {
		t.Error("zero Version should not satisfy anything")
	}
	if (Constraint{}).Allows(MustParseVersion("1.0.0")) {
		t.Error("zero Constraint should allow nothing")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"2.10.1", true},
		{"1.2", true},
		{"v1.0.0", true},
		{"1.0.0-SNAPSHOT", true},
		{"2.0.0.Final", false},
		{"r09", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Valid(tt.raw); got != tt.expected {
				t.Errorf("Valid(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseConstraint(">>nope"); err == nil {
		t.Error("expected an error for a malformed constraint")
	}
	if _, err := ParseVersion("not-a-version"); err == nil {
		t.Error("expected an error for a malformed version")
	}
}
