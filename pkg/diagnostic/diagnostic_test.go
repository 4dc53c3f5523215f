package diagnostic

import (
	"errors"
	"sync"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarning, "warning"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarning, false},
		{"warning", LevelWarning, false},
		{"err", LevelError, false},
		{"invalid", LevelDebug, true},
		{"", LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDiagnosticError(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name: "module subject and error",
			diag: Diagnostic{
				Level:   LevelError,
				Module:  "app",
				Subject: "com.google.code.gson:gson",
				Message: "version provided",
				Err:     errBoom,
			},
			expected: "[error] (app) com.google.code.gson:gson: version provided: boom",
		},
		{
			name: "subject only",
			diag: Diagnostic{
				Level:   LevelWarning,
				Subject: "gson.group",
				Message: "declared twice",
			},
			expected: "[warning] gson.group: declared twice",
		},
		{
			name: "bare message",
			diag: Diagnostic{
				Level:   LevelDebug,
				Message: "debug message",
			},
			expected: "[debug] debug message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.Error(); got != tt.expected {
				t.Errorf("Diagnostic.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCollector_MinLevel(t *testing.T) {
	c := NewCollector(WithMinLevel(LevelWarning))

	c.Report(Diagnostic{Level: LevelDebug, Message: "debug"})
	c.Report(Diagnostic{Level: LevelInfo, Message: "info"})
	c.Report(Diagnostic{Level: LevelWarning, Message: "warning"})
	c.Report(Diagnostic{Level: LevelError, Message: "error"})

	diags := c.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics (warning and error), got %d", len(diags))
	}
	for _, d := range diags {
		if d.Level < LevelWarning {
			t.Errorf("expected only warning and error levels, got %v", d.Level)
		}
	}
}

func TestCollector_OnReport(t *testing.T) {
	var reported []Diagnostic
	c := NewCollector(WithOnReport(func(d Diagnostic) {
		reported = append(reported, d)
	}))

	c.Report(Diagnostic{Level: LevelWarning, Message: "test"})

	if len(reported) != 1 {
		t.Fatalf("expected OnReport to be called once, got %d calls", len(reported))
	}
	if reported[0].Message != "test" {
		t.Errorf("expected message 'test', got %q", reported[0].Message)
	}
}

func TestCollector_HasLevel(t *testing.T) {
	c := NewCollector()
	c.Report(Diagnostic{Level: LevelDebug, Message: "debug"})
	c.Report(Diagnostic{Level: LevelWarning, Message: "warning"})

	tests := []struct {
		level    Level
		expected bool
	}{
		{LevelDebug, true},
		{LevelInfo, true},
		{LevelWarning, true},
		{LevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := c.HasLevel(tt.level); got != tt.expected {
				t.Errorf("HasLevel(%v) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestCollector_Clear(t *testing.T) {
	var reported int
	c := NewCollector(WithOnReport(func(Diagnostic) { reported++ }))
	c.Report(Diagnostic{Level: LevelError, Message: "first pass"})

	c.Clear()
	if len(c.Diagnostics()) != 0 {
		t.Error("expected 0 diagnostics after clear")
	}
	if c.HasLevel(LevelDebug) {
		t.Error("HasLevel should return false after clear")
	}
	if got := c.Summary(); got != "no diagnostics" {
		t.Errorf("Summary() after clear = %q", got)
	}

	c.Report(Diagnostic{Level: LevelInfo, Message: "second pass"})
	if got := c.Summary(); got != "1 info(s)" {
		t.Errorf("Summary() = %q, want %q", got, "1 info(s)")
	}
	if reported != 2 {
		t.Errorf("OnReport should survive Clear, got %d calls", reported)
	}
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector()
	if got := c.Summary(); got != "no diagnostics" {
		t.Errorf("Summary() = %q, want %q", got, "no diagnostics")
	}

	c.Report(Diagnostic{Level: LevelWarning, Message: "w1"})
	c.Report(Diagnostic{Level: LevelWarning, Message: "w2"})
	c.Report(Diagnostic{Level: LevelError, Message: "e1"})

	if got := c.Summary(); got != "1 error(s), 2 warning(s)" {
		t.Errorf("Summary() = %q, want %q", got, "1 error(s), 2 warning(s)")
	}
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Report(Diagnostic{Level: Level(n % 4), Message: "concurrent"})
		}(i)
	}
	wg.Wait()

	if got := len(c.Diagnostics()); got != 100 {
		t.Errorf("expected 100 diagnostics, got %d", got)
	}
}

func TestCollector_DiagnosticsReturnsClone(t *testing.T) {
	c := NewCollector()
	c.Report(Diagnostic{Level: LevelError, Message: "test"})

	first := c.Diagnostics()
	second := c.Diagnostics()
	first[0].Message = "modified"

	if second[0].Message != "test" {
		t.Error("Diagnostics() should return a clone, not the original slice")
	}
}

func TestDiscard(t *testing.T) {
	sink := Discard()
	sink.Report(Diagnostic{Level: LevelError, Message: "test"})

	if _, ok := sink.(*Collector); ok {
		t.Error("Discard() should not collect")
	}
}
