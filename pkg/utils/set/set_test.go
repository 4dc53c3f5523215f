package set

import (
	"slices"
	"testing"
)

func TestSetOrder(t *testing.T) {
	tests := []struct {
		name     string
		add      []string
		del      []string
		expected []string
	}{
		{
			name:     "insertion order",
			add:      []string{"c", "a", "b"},
			expected: []string{"c", "a", "b"},
		},
		{
			name:     "duplicates keep first position",
			add:      []string{"a", "b", "a", "c", "b"},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "delete middle",
			add:      []string{"a", "b", "c", "d"},
			del:      []string{"b"},
			expected: []string{"a", "c", "d"},
		},
		{
			name:     "delete missing",
			add:      []string{"a"},
			del:      []string{"z"},
			expected: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New[string]()
			for _, v := range tt.add {
				s.Add(v)
			}
			for _, v := range tt.del {
				s.Delete(v)
			}

			if got := s.Values(); !slices.Equal(got, tt.expected) {
				t.Errorf("Values() = %v, want %v", got, tt.expected)
			}
			if s.Len() != len(tt.expected) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.expected))
			}
			for _, v := range tt.expected {
				if !s.Has(v) {
					t.Errorf("Has(%q) = false, want true", v)
				}
			}
		})
	}
}

func TestSetDeleteReindexes(t *testing.T) {
	s := New("a", "b", "c")
	s.Delete("a")
	s.Delete("c")
	s.Add("a")

	if got := s.Values(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Values() = %v, want [b a]", got)
	}
}

func TestSetAddReportsNew(t *testing.T) {
	s := New[int]()
	if !s.Add(1) {
		t.Error("first Add(1) should report true")
	}
	if s.Add(1) {
		t.Error("second Add(1) should report false")
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	s := New(1, 2)
	c := s.Clone()
	c.Add(3)
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("cleared set has %d elements", s.Len())
	}
	if got := c.Values(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("clone Values() = %v, want [1 2 3]", got)
	}
}
