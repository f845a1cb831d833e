package xsb

// IndexFileName is the fixed name of the package index inside an aircraft
// directory. A directory without it is not a CSL package.
const IndexFileName = "xsb_aircraft.txt"

// Group is one livery variant declared in the package index: the
// mesh-source files that compose it and the identifiers its output is
// keyed by.
type Group struct {
	LiveryID     string
	AircraftType string
	FragmentRefs []string
}

// DisplayName returns the name the assembled asset is labeled with.
func (g Group) DisplayName() string {
	return g.AircraftType + "_" + g.LiveryID
}

// Options adjusts parsing for one package directory.
type Options struct {
	// DefaultAircraftType fills groups whose dialect or section line does
	// not name a type. Callers normally pass the package directory name.
	DefaultAircraftType string
}
