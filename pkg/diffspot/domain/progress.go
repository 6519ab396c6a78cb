package domain

// ProgressListener receives comparison progress as it happens, so frontends can
// report incrementally instead of waiting for the final report. Callbacks run on the
// comparison goroutine, so implementations must be fast. A nil listener is allowed
// everywhere a listener is accepted.
type ProgressListener interface {
	// OnQuestionsGenerated fires once the model completion has been parsed into questions.
	OnQuestionsGenerated(rawResponse string, questions []string)
	// OnQuestionEvaluated fires after each question is answered against both images.
	// `index` is 1-based.
	OnQuestionEvaluated(index int, result QuestionResult)
}
