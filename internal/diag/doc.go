// Package diag is the diagnostic model the CLI reports through.
//
// A Diagnostic carries a Severity, a stable Code, a message and a Where
// location. Producers never build diagnostics by hand from IR errors:
// FromError classifies an error chain (hdl construction errors, textual
// form errors, manifest errors, I/O errors) into a code and a location.
//
// Bag collects diagnostics for one run; Sort and Dedup give a
// deterministic order before rendering. Rendering to a terminal with
// colors lives in cmd/fhdl; Format here is the plain one-line form used
// for logs and tests.
package diag
