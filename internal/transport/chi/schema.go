package chi

import "github.com/invopop/jsonschema"

var predictRequestSchema = func() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	s := r.Reflect(&PredictRequest{})
	s.Title = "Prediction request"
	return s
}()
