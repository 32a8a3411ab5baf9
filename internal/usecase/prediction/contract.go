package prediction

// Model is the externally trained classifier: a feature vector in model order in,
// a raw class out.
type Model interface {
	Predict(x []float64) (int, error)
}
