package domain

// GeneratedQuestions couples the parsed question list with the raw completion text it
// came from, so frontends can display the raw text for debugging.
type GeneratedQuestions struct {
	RawResponse string
	Questions   []string
}

// QuestionGenerator produces visually testable questions which target the likely
// differences between two images of the same scene. The difference heatmap is an
// extra hint for the generator; paths are passed as-is because the images are
// uploaded to the model unmodified.
type QuestionGenerator interface {
	GenerateQuestions(leftImagePath, rightImagePath, diffImagePath string) (*GeneratedQuestions, error)
}
