package domain

import "fmt"

// Label is the binary output of the classifier.
type Label int

// Label values.
const (
	Fail Label = 0
	Pass Label = 1
)

// Outcome strings shown on the HTML form.
const (
	OutcomePass    = "Pass"
	OutcomeFail    = "Fail"
	OutcomeInvalid = "Invalid Input"
)

// LabelFromClass maps a raw model class onto a Label.
func LabelFromClass(class int) (Label, error) {
	switch Label(class) {
	case Fail, Pass:
		return Label(class), nil
	default:
		return Fail, fmt.Errorf("%w: model returned class %d", ErrInvalidInput, class)
	}
}

// Int returns the label as the integer used by the JSON API.
func (l Label) Int() int { return int(l) }

// Outcome returns the human-readable label.
func (l Label) Outcome() string {
	if l == Pass {
		return OutcomePass
	}
	return OutcomeFail
}
