package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format is the rendering of events written by a tracer.
type Format uint8

const (
	FormatAuto   Format = iota // chosen from the output path
	FormatText                 // one aligned line per event
	FormatNDJSON               // one JSON object per line
)

var formatNames = []string{FormatAuto: "auto", FormatText: "text", FormatNDJSON: "ndjson"}

func (f Format) String() string { return nameOf(formatNames, int(f)) }

// ParseFormat converts a flag value to a Format. "json" is accepted for
// ndjson and "" for auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	i, err := lookup(formatNames, s, "format")
	return Format(i), err
}

// formatFor resolves FormatAuto for an output path.
func formatFor(f Format, path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent renders ev, newline included.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func encodeJSON(ev *Event) []byte {
	rec := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
	}
	if len(ev.Fields) > 0 {
		rec.Fields = make(map[string]string, len(ev.Fields))
		for _, f := range ev.Fields {
			rec.Fields[f.Key] = f.Value
		}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = []string{KindSpanBegin: "->", KindSpanEnd: "<-", KindPoint: "*"}

// encodeText renders "[seq] scope  mark name (detail) {k=v, ...}". A
// detail that is already parenthesised is written as is. Events with a
// parent are indented by two spaces.
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%6d] %-6s ", ev.Seq, ev.Scope)
	if ev.ParentID != 0 {
		sb.WriteString("  ")
	}
	if int(ev.Kind) < len(kindMarks) && kindMarks[ev.Kind] != "" {
		sb.WriteString(kindMarks[ev.Kind])
		sb.WriteByte(' ')
	}
	sb.WriteString(ev.Name)
	switch {
	case ev.Detail == "":
	case strings.HasPrefix(ev.Detail, "(") && strings.HasSuffix(ev.Detail, ")"):
		sb.WriteString(" " + ev.Detail)
	default:
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	for i, f := range ev.Fields {
		if i == 0 {
			sb.WriteString(" {")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Key + "=" + f.Value)
	}
	if len(ev.Fields) > 0 {
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
