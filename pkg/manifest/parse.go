package manifest

import (
	"github.com/olimci/depcat/pkg/properties"
)

const (
	groupSuffix   = ".group"
	versionSuffix = ".version"
)

// ParseText reads properties text and parses it into records.
func ParseText(text string, opts ...properties.Option) ([]DependencyRecord, error) {
	props, err := properties.Read(text, opts...)
	if err != nil {
		return nil, err
	}
	return Parse(props)
}

// Parse turns adjacent <name>.group / <name>.version properties into
// records, in input order. Either property of a pair may come first.
// Duplicate names are left for Build to resolve.
func Parse(props properties.Properties) ([]DependencyRecord, error) {
	switch {
	case len(props) == 0:
		return nil, &ParseError{Err: ErrEmpty, Index: -1}
	case len(props)%2 != 0:
		return nil, &ParseError{Err: ErrUnevenPropertyCount, Index: -1, Count: len(props)}
	}

	records := make([]DependencyRecord, 0, len(props)/2)
	for i := 0; i < len(props); i += 2 {
		first, second := props[i], props[i+1]

		group, version := first, second
		switch {
		case isKind(first.Key, groupSuffix) && isKind(second.Key, versionSuffix):
		case isKind(first.Key, versionSuffix) && isKind(second.Key, groupSuffix):
			group, version = second, first
		default:
			return nil, &ParseError{
				Err:   ErrNotAPair,
				Keys:  []string{first.Key, second.Key},
				Index: i / 2,
				Count: len(props),
			}
		}

		name := trimKind(group.Key, groupSuffix)
		if name != trimKind(version.Key, versionSuffix) {
			return nil, &ParseError{
				Err:   ErrMismatchedPair,
				Keys:  []string{first.Key, second.Key},
				Index: i / 2,
				Count: len(props),
			}
		}

		records = append(records, DependencyRecord{
			Group:   group.Value,
			Name:    name,
			Version: version.Value,
		})
	}

	return records, nil
}

// ToProperties serializes records as adjacent .group/.version pairs, the
// inverse of Parse.
func ToProperties(records []DependencyRecord) properties.Properties {
	props := make(properties.Properties, 0, len(records)*2)
	for _, r := range records {
		props = append(props,
			properties.Property{Key: r.Name + groupSuffix, Value: r.Group},
			properties.Property{Key: r.Name + versionSuffix, Value: r.Version},
		)
	}
	return props
}
