package core

import "errors"

// Error kinds shared by all packages. Callers match them with errors.Is;
// packages wrap them with the offending values.
var (
	// ErrShapeMismatch indicates violated dimension or length preconditions.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidParameter indicates an out-of-range argument or an
	// unsupported kind/mode tag.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrExternalTool indicates that an external binary exited with an
	// error or did not produce its output file.
	ErrExternalTool = errors.New("external tool failure")

	// ErrMalformedInput indicates an input file that cannot be parsed.
	ErrMalformedInput = errors.New("malformed input file")
)
