package domain

// QuestionResult records one question answered independently against both images.
// IsDifferent is decided purely by normalized string equality of the two answers,
// never by inspecting the raw ones.
type QuestionResult struct {
	Question    string
	LeftAnswer  string
	RightAnswer string
	IsDifferent bool
	// DifferencesSoFar is the running difference total as of this record.
	DifferencesSoFar int
}

// ComparisonReport is the outcome of one comparison run. Created once per run and not
// mutated afterwards; DifferenceCount always equals the number of results whose
// IsDifferent flag is set.
type ComparisonReport struct {
	RunID           string
	RawResponse     string
	Questions       []string
	Results         []QuestionResult
	DifferenceCount int
}
