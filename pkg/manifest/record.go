package manifest

// DependencyRecord is one canonical dependency declared by the manifest.
type DependencyRecord struct {
	Group   string `json:"group" yaml:"group" toml:"group"`
	Name    string `json:"name" yaml:"name" toml:"name"`
	Version string `json:"version" yaml:"version" toml:"version"`
}

func (r DependencyRecord) Coordinate() Coordinate {
	return Coordinate{Group: r.Group, Name: r.Name}
}

func (r DependencyRecord) String() string {
	return r.Group + ":" + r.Name + ":" + r.Version
}

// Coordinate identifies an artifact independent of its version.
type Coordinate struct {
	Group string
	Name  string
}

func (c Coordinate) String() string {
	return c.Group + ":" + c.Name
}
