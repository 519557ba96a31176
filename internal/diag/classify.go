package diag

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"fhdl/internal/hdl"
	"fhdl/internal/irtext"
	"fhdl/internal/manifest"
)

var kindCodes = map[hdl.ErrorKind]Code{
	hdl.InvalidValue:        IRInvalidValue,
	hdl.IndexRange:          IRIndexRange,
	hdl.BoundsConflict:      IRBoundsConflict,
	hdl.AmbiguousTruthValue: IRAmbiguousTruth,
	hdl.NotAssignable:       IRNotAssignable,
	hdl.UnsupportedKey:      IRUnsupportedKey,
	hdl.MalformedCase:       IRMalformedCase,
}

var sentinelCodes = []struct {
	err  error
	code Code
}{
	{manifest.ErrSyntax, ManSyntax},
	{manifest.ErrMissing, ManMissingKey},
	{manifest.ErrFormat, ManFormat},
	{manifest.ErrExtension, ManExtension},
	{manifest.ErrDeclaration, ManDeclaration},
	{fs.ErrNotExist, IOLoadFileError},
	{fs.ErrPermission, IOLoadFileError},
}

// Classify maps an error chain to a code. IR construction kinds win over
// the textual form or manifest that carried them.
func Classify(err error) Code {
	if code, ok := kindCodes[hdl.KindOf(err)]; ok {
		return code
	}
	var terr *irtext.Error
	if errors.As(err, &terr) {
		if strings.HasPrefix(terr.Msg, "unknown signal") {
			return TxtUnknownSignal
		}
		return TxtSyntax
	}
	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return IOLoadFileError
	}
	return UnknownCode
}

// FromError turns err into an error diagnostic located in path, or at
// the exact position when the error comes from the textual form.
func FromError(path string, err error) Diagnostic {
	where := Where{Path: path}
	var terr *irtext.Error
	if errors.As(err, &terr) {
		if terr.Path != "" {
			where.Path = terr.Path
		}
		where.Line, where.Col = terr.Line, terr.Col
	}
	msg := err.Error()
	prefixes := []string{where.String() + ": ", where.Path + ": "}
	if where.Line > 0 {
		prefixes = append(prefixes, fmt.Sprintf("%d:%d: ", where.Line, where.Col))
	}
	for _, prefix := range prefixes {
		if prefix != ": " {
			msg = strings.TrimPrefix(msg, prefix)
		}
	}
	return NewError(Classify(err), where, msg)
}
