package ir

import "github.com/Masterminds/semver/v3"

// Target is the platform predicate collaborator: whether the output object
// format supports global aliases. Alias support is additionally gated by a
// minimum linker version, expressed as a semver constraint, since some
// object formats only gained alias support in a later linker release.
type Target struct {
	ObjectFormat     string
	LinkerVersion    *semver.Version
	MinLinkerVersion *semver.Constraints
}

// SupportsAliases reports whether this target can represent a GlobalAlias.
func (t *Target) SupportsAliases() bool {
	switch t.ObjectFormat {
	case "elf", "macho":
		if t.MinLinkerVersion == nil || t.LinkerVersion == nil {
			return true
		}
		return t.MinLinkerVersion.Check(t.LinkerVersion)
	case "coff":
		return false
	default:
		return false
	}
}

// NewTarget builds a Target for object format objfmt (e.g. "elf"). A
// non-empty minVersion is parsed as a semver constraint (e.g. ">=1.2.0")
// and a non-empty linkerVersion as the linker version actually in use;
// objfmt itself is not validated.
func NewTarget(objfmt string, minVersion string, linkerVersion string) (*Target, error) {
	t := &Target{ObjectFormat: objfmt}
	if minVersion != "" {
		c, err := semver.NewConstraint(minVersion)
		if err != nil {
			return nil, err
		}
		t.MinLinkerVersion = c
	}
	if linkerVersion != "" {
		v, err := semver.NewVersion(linkerVersion)
		if err != nil {
			return nil, err
		}
		t.LinkerVersion = v
	}
	return t, nil
}

// DefaultTarget is an ELF target with unconstrained alias support, the
// common case for this pass's tests.
func DefaultTarget() *Target { return &Target{ObjectFormat: "elf"} }
