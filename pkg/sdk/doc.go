// Package passpredict embeds the pass/fail classifier in a Go program
// without running the HTTP service.
//
//	client, _ := passpredict.New(passpredict.WithModelPath("models/student_model.json"))
//	res, _ := client.Predict(ctx, passpredict.Input{HoursStudied: 5, Attendance: 90, PreviousScore: 70})
//	fmt.Println(res.Outcome) // Pass
//
// Raw payloads (decoded JSON or form values) go through the same validation
// as the service:
//
//	res, err := client.PredictPayload(ctx, map[string]any{"hours_studied": "5", ...})
//	if errors.Is(err, passpredict.ErrMissingField) { ... }
package passpredict
