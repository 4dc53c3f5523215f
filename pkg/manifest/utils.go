package manifest

import (
	"strings"
	"unicode"

	"github.com/olimci/depcat/pkg/utils/set"
)

// isKind reports whether key is a non-empty name followed by suffix.
func isKind(key, suffix string) bool {
	return len(key) > len(suffix) && strings.HasSuffix(key, suffix)
}

func trimKind(key, suffix string) string {
	return strings.TrimSuffix(key, suffix)
}

// checkField returns a reason the value cannot be used as a record field.
func checkField(field, value string) string {
	if value == "" {
		return field + " is empty"
	}
	if strings.ContainsFunc(value, unicode.IsSpace) {
		return field + " contains whitespace"
	}
	return ""
}

func validateRecord(r DependencyRecord) string {
	for _, f := range []struct{ field, value string }{
		{"group", r.Group},
		{"name", r.Name},
		{"version", r.Version},
	} {
		if reason := checkField(f.field, f.value); reason != "" {
			return reason
		}
	}
	return ""
}

// indexRecords maps records by coordinate, keeping the last version, and
// collects every version seen for coordinates declared more than once.
func indexRecords(rs []DependencyRecord) (index map[Coordinate]string, order []Coordinate, conflicts map[Coordinate][]string) {
	index = make(map[Coordinate]string, len(rs))
	conflicts = make(map[Coordinate][]string)
	seen := set.New[Coordinate]()

	for _, r := range rs {
		c := r.Coordinate()
		seen.Add(c)
		conflicts[c] = append(conflicts[c], r.Version)
		index[c] = r.Version
	}
	for c, versions := range conflicts {
		if len(versions) <= 1 {
			delete(conflicts, c)
		}
	}

	return index, seen.Values(), conflicts
}
