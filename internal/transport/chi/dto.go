package chi

// PredictRequest documents the body of POST /predict. Values may be numbers
// or strings holding numbers.
type PredictRequest struct {
	HoursStudied  any `json:"hours_studied" jsonschema:"oneof_type=number;string,description=Hours spent studying"`
	Attendance    any `json:"attendance" jsonschema:"oneof_type=number;string,description=Attendance percentage"`
	PreviousScore any `json:"previous_score" jsonschema:"oneof_type=number;string,description=Score on the previous exam"`
}

// PredictResponse is the success body of POST /predict.
type PredictResponse struct {
	Result int `json:"result"`
}

// ErrorResponse is the failure body of the JSON API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
