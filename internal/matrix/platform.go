package matrix

import (
	"fmt"
	"strings"
)

// Platform is a target operating system for a wheel build.
type Platform string

const (
	// Linux is the native build platform.
	Linux Platform = "linux"
	// Windows is the cross-compiled target platform.
	Windows Platform = "windows"
)

// ParsePlatform converts a user supplied name into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case Linux, Windows:
		return p, nil
	default:
		return "", fmt.Errorf("unknown platform %q: must be %q or %q", s, Linux, Windows)
	}
}

// WheelTag returns the wheel platform tag artifacts for p are published under.
func (p Platform) WheelTag() string {
	switch p {
	case Windows:
		return "win_amd64"
	default:
		return "manylinux1_x86_64"
	}
}

func (p Platform) String() string { return string(p) }
