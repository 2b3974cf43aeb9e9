package shader

import "errors"

// Errors returned by the assembler. They are wrapped with the file names
// involved; test for them with errors.Is.
var (
	// ErrMissingTemplate means the root file could not be read.
	ErrMissingTemplate = errors.New("shader: missing template")
	// ErrMissingImport means an imported file could not be read.
	ErrMissingImport = errors.New("shader: missing import")
	// ErrPlaceholder means a rule was supplied but the template does not
	// contain exactly one placeholder.
	ErrPlaceholder = errors.New("shader: malformed placeholder")
	// ErrDuplicateImportPath means a file declares define_import_path twice.
	ErrDuplicateImportPath = errors.New("shader: duplicate define_import_path")
	// ErrImportCycle means files import each other.
	ErrImportCycle = errors.New("shader: import cycle")
	// ErrMalformedDirective means a directive has no argument or more than one.
	ErrMalformedDirective = errors.New("shader: malformed directive")
)
