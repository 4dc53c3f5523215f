package version

import (
	"errors"
	"testing"

	"github.com/olimci/depcat/pkg/semver"
)

func TestCheckVersion(t *testing.T) {
	v := semver.MustParseVersion("0.3.0")

	tests := []struct {
		constraint string
		wantErr    error
		anyErr     bool
	}{
		{"", nil, false},
		{">=0.1.0", nil, false},
		{"^0.3", nil, false},
		{">=1.0.0", ErrIncompatible, true},
		{"<0.3.0", ErrIncompatible, true},
		{"not a constraint", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := CheckVersion(v, tt.constraint)
			if (err != nil) != tt.anyErr {
				t.Fatalf("CheckVersion(%q) error = %v, wantErr %v", tt.constraint, err, tt.anyErr)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckVersion(%q) error = %v, want %v", tt.constraint, err, tt.wantErr)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	if got := Current().String(); got != String() {
		t.Errorf("Current() = %s, want %s", got, String())
	}
}
