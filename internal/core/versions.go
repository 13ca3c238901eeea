package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// ParsePythonVersion parses a version reported by pip or conda. The
// packages the installer preserves all carry PEP 440 version strings.
func ParsePythonVersion(value string) (pep440.Version, error) {
	parsed, err := pep440.Parse(strings.TrimSpace(value))
	if err != nil {
		return pep440.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid python package version %q", value)).
			WithCause(err)
	}
	return parsed, nil
}

// SamePythonVersion compares two version strings under PEP 440 equality,
// tolerating formatting differences such as "1.26" versus "1.26.0".
func SamePythonVersion(a string, b string) (bool, error) {
	va, err := ParsePythonVersion(a)
	if err != nil {
		return false, err
	}
	vb, err := ParsePythonVersion(b)
	if err != nil {
		return false, err
	}
	return va.Compare(vb) == 0, nil
}
