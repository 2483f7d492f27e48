package qbf

// Value is the five-state assignment value of a variable. An existential
// variable assigned by propagation takes one of the two "implications"
// states (its Skolem function forces it in that direction); a decided
// existential variable takes True or False. Universal variables are never
// assigned and stay Unassigned (invariant 5).
type Value int8

const (
	Unassigned Value = iota
	True
	False
	PositiveImplications
	NegativeImplications
)

// Bool reports the boolean value an assignment represents, and whether the
// variable is assigned at all.
func (v Value) Bool() (b bool, assigned bool) {
	switch v {
	case True, PositiveImplications:
		return true, true
	case False, NegativeImplications:
		return false, true
	default:
		return false, false
	}
}

// LitValue projects an assignment value through a literal's polarity.
func LitValue(v Value, l Lit) (b bool, assigned bool) {
	b, assigned = v.Bool()
	if !assigned {
		return false, false
	}
	if !l.IsPositive() {
		b = !b
	}
	return b, true
}

func (v Value) String() string {
	switch v {
	case Unassigned:
		return "unassigned"
	case True:
		return "true"
	case False:
		return "false"
	case PositiveImplications:
		return "positive-implications"
	case NegativeImplications:
		return "negative-implications"
	default:
		return "invalid"
	}
}
