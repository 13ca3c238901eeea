package app

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Each install step that can fail maps to one error constructor. The
// message prefixes are stable: the CLI matches on them to pick exit codes.

func pinLookupError(pin string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("pin lookup failed for %s", pin)).
		WithCause(cause)
}

func systemPackageError(name string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("system package install failed for %s", name)).
		WithCause(cause)
}

func versionQueryError(name string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("environment version query failed for %s", name)).
		WithCause(cause)
}

func buildInstallError(repo string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("toolchain build install failed for %s", repo)).
		WithCause(cause)
}

func restoreError(name string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("environment restore failed for %s", name)).
		WithCause(cause)
}
