package hdl

// Truth reads v as a bool. Only an equality node has a defined truth value,
// and only when both sides are constants or signals:
//
//   - two constants are equal when their literals are;
//   - two signals are equal when they are the same signal;
//   - a constant never equals a signal.
//
// Everything else fails with AmbiguousTruthValue; a hardware expression
// has no value until something evaluates it.
func Truth(v Value) (bool, error) {
	if op, ok := v.(*Operator); ok && op.kind == OpEq {
		a, b := op.operands[0], op.operands[1]
		switch a := a.(type) {
		case *Const:
			switch b := b.(type) {
			case *Const:
				return a.lit == b.lit, nil
			case *Signal:
				return false, nil
			}
		case *Signal:
			switch b := b.(type) {
			case *Signal:
				return a == b, nil
			case *Const:
				return false, nil
			}
		}
	}
	return false, errorf(AmbiguousTruthValue, "attempted to convert value %s to boolean", v)
}
