package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kgeyst.com/diffspot/pkg/common"
)

// DifferenceEvaluator poses every question independently against both images and
// counts the questions whose normalized answers disagree. Asking the same question
// per image (instead of one comparative prompt) keeps every VQA call single-image, so
// the difference verdict is a pure string comparison afterwards. Evaluation is total
// over the question list: a backend failure on one (image, question) pair is recorded
// as an error-marker answer and the loop continues with the next question.
type DifferenceEvaluator struct {
	answerer Answerer
	logger   common.Logger
}

func NewDifferenceEvaluator(answerer Answerer, logger common.Logger) *DifferenceEvaluator {
	return &DifferenceEvaluator{
		answerer: answerer,
		logger:   logger,
	}
}

func (d *DifferenceEvaluator) Evaluate(left, right *Image, questions []string, listener ProgressListener) *ComparisonReport {
	report := &ComparisonReport{
		RunID:     uuid.NewString(),
		Questions: questions,
	}
	for index, question := range questions {
		leftAnswer := d.answer(left, question)
		rightAnswer := d.answer(right, question)
		isDifferent := NormalizeAnswer(leftAnswer) != NormalizeAnswer(rightAnswer)
		if isDifferent {
			report.DifferenceCount++
		}
		result := QuestionResult{
			Question:         question,
			LeftAnswer:       leftAnswer,
			RightAnswer:      rightAnswer,
			IsDifferent:      isDifferent,
			DifferencesSoFar: report.DifferenceCount,
		}
		report.Results = append(report.Results, result)
		d.logger.Log(fmt.Sprintf("\"%s\": LEFT \"%s\", RIGHT \"%s\", different: %t (%d so far)",
			question, leftAnswer, rightAnswer, isDifferent, report.DifferenceCount))
		if listener != nil {
			listener.OnQuestionEvaluated(index+1, result)
		}
	}
	return report
}

func (d *DifferenceEvaluator) answer(image *Image, question string) string {
	answer, err := d.answerer.Answer(image, question)
	if err != nil {
		d.logger.Log(fmt.Sprintf("failed to answer \"%s\" against the %s image: %s", question, image.Side, err.Error()))
		return ErrorAnswer(err)
	}
	return answer
}

// NormalizeAnswer trims surrounding whitespace and lower-cases. Two answers are equal
// iff their normalized forms are identical.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// ErrorAnswer is the marker recorded in place of an answer when the VQA backend fails
// for one (image, question) pair. It takes part in the difference comparison like any
// other answer.
func ErrorAnswer(err error) string {
	return "ERROR: " + err.Error()
}
