package version

import "errors"

var (
	// ErrVersionNotFound indicates the version doesn't exist.
	ErrVersionNotFound = errors.New("version not found")
	// ErrProjectNotFound indicates the owning project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrParentNotFound indicates the parent version doesn't resolve within
	// the same project.
	ErrParentNotFound = errors.New("parent version not found in project")
	// ErrCorruptVersion indicates the version record exists but is unreadable.
	ErrCorruptVersion = errors.New("version record corrupt")
	// ErrInvalidInput indicates invalid version input.
	ErrInvalidInput = errors.New("invalid version input")
)
