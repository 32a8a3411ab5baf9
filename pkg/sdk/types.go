package passpredict

// Input is a validated feature triple.
type Input struct {
	HoursStudied  float64
	Attendance    float64
	PreviousScore float64
}

// Result is a single classification.
type Result struct {
	Label   int    // 0 or 1
	Outcome string // "Pass" or "Fail"
}

// ModelInfo describes the loaded artifact.
type ModelInfo struct {
	Kind     string
	Path     string
	Checksum string
}

// HealthStatus represents the aggregated health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component → "ok"/"error"
}
