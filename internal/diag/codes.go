package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// IR construction
	IRInfo             Code = 1000
	IRInvalidValue     Code = 1001
	IRIndexRange       Code = 1002
	IRBoundsConflict   Code = 1003
	IRAmbiguousTruth   Code = 1004
	IRNotAssignable    Code = 1005
	IRUnsupportedKey   Code = 1006
	IRMalformedCase    Code = 1007
	IRUndrivenSignal   Code = 1100
	IRUnusedSignal     Code = 1102
	IRPlaceholderNamed Code = 1103

	// textual form
	TxtSyntax        Code = 2001
	TxtUnknownSignal Code = 2002

	// manifest
	ManSyntax      Code = 3001
	ManMissingKey  Code = 3002
	ManFormat      Code = 3003
	ManExtension   Code = 3004
	ManDeclaration Code = 3005

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	IRInfo:             "IR information",
	IRInvalidValue:     "value cannot be used in the IR",
	IRIndexRange:       "bit index or slice out of range",
	IRBoundsConflict:   "conflicting signal shape and range",
	IRAmbiguousTruth:   "value has no truth value",
	IRNotAssignable:    "value cannot be assigned",
	IRUnsupportedKey:   "value cannot be used as a key",
	IRMalformedCase:    "malformed switch case",
	IRUndrivenSignal:   "signal is read but never driven",
	IRUnusedSignal:     "signal is declared but never used",
	IRPlaceholderNamed: "signal has no name",
	TxtSyntax:          "malformed textual IR",
	TxtUnknownSignal:   "unknown signal in textual IR",
	ManSyntax:          "manifest syntax error",
	ManMissingKey:      "manifest is missing a required key",
	ManFormat:          "unsupported manifest format",
	ManExtension:       "unknown manifest extension",
	ManDeclaration:     "invalid signal declaration",
	IOLoadFileError:    "I/O load file error",
	IOWriteFileError:   "I/O write file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TXT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MAN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
