package domain

import "github.com/samber/lo"

// Violation is one reason a value failed validation.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string { return v.Field + ": " + v.Message }

// Violations accumulates every problem found in a value.
// An empty list is the only "valid" signal. Validators never stop at the
// first problem, so the caller always gets the complete diagnostic and can
// surface it to the sender in one shot.
type Violations []Violation

func (vs *Violations) Add(field, message string) {
	*vs = append(*vs, Violation{Field: field, Message: message})
}

func (vs Violations) OK() bool { return len(vs) == 0 }

func (vs Violations) Strings() []string {
	return lo.Map(vs, func(v Violation, _ int) string { return v.String() })
}
