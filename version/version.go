package version

import (
	// Stdlib
	"strings"

	// Vendor
	"github.com/blang/semver"
)

// Current is the version of this tool.
const Current = "1.2.0"

// Version is a release version. Release stories are usually named
// after it, like "5.0" or "v1.2.3".
type Version struct {
	semver.Version
	original string
}

// Parse accepts incomplete versions such as "5.0" and a leading "v".
func Parse(versionString string) (*Version, error) {
	trimmed := strings.TrimSpace(versionString)
	v, err := semver.ParseTolerant(trimmed)
	if err != nil {
		return nil, err
	}
	return &Version{v, trimmed}, nil
}

// IsVersion returns true when the string can be parsed as a version.
func IsVersion(versionString string) bool {
	_, err := Parse(versionString)
	return err == nil
}

// Name returns the version the way it was written, which is how
// release branches and tags are named.
func (v *Version) Name() string {
	return v.original
}
