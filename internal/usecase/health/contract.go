package health

// ModelChecker reports whether the classifier can serve predictions.
type ModelChecker interface {
	Ready() error
}
