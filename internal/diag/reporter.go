package diag

// Reporter receives diagnostics from a phase.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter writes into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// ReportError classifies err with FromError and reports it.
func ReportError(r Reporter, path string, err error) {
	if r == nil || err == nil {
		return
	}
	r.Report(FromError(path, err))
}
