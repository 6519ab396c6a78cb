package domain

import (
	"fmt"
	"os"
	"sync"

	"kgeyst.com/diffspot/pkg/common"
)

// ComparisonService is the top-level workflow: validate that the scene images exist,
// ask the question generator for a battery of questions, load both images, and
// evaluate every question against each of them. It also remembers the image pair of
// the last successful run so frontends can pose ad-hoc follow-up questions.
type ComparisonService struct {
	mutex       sync.Mutex
	generator   QuestionGenerator
	imageLoader ImageLoader
	evaluator   *DifferenceEvaluator
	logger      common.Logger
	lastLeft    *Image
	lastRight   *Image
}

func NewComparisonService(
	generator QuestionGenerator,
	imageLoader ImageLoader,
	evaluator *DifferenceEvaluator,
	logger common.Logger,
) *ComparisonService {
	return &ComparisonService{
		generator:   generator,
		imageLoader: imageLoader,
		evaluator:   evaluator,
		logger:      logger,
	}
}

// Compare runs the end-to-end comparison. Missing scene images fail with
// ErrImageNotFound before anything touches the network. The heatmap path is not
// checked here: it is consumed only by question generation, which fails
// transport-side if it's unreadable.
func (c *ComparisonService) Compare(leftImagePath, rightImagePath, diffImagePath string, listener ProgressListener) (*ComparisonReport, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, path := range []string{leftImagePath, rightImagePath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
	}
	c.logger.Log(fmt.Sprintf("comparing \"%s\" and \"%s\" (heatmap \"%s\")", leftImagePath, rightImagePath, diffImagePath))
	generated, err := c.generator.GenerateQuestions(leftImagePath, rightImagePath, diffImagePath)
	if err != nil {
		return nil, err
	}
	if listener != nil {
		listener.OnQuestionsGenerated(generated.RawResponse, generated.Questions)
	}
	left, err := c.imageLoader.Load(leftImagePath, ImageSideLeft)
	if err != nil {
		return nil, err
	}
	right, err := c.imageLoader.Load(rightImagePath, ImageSideRight)
	if err != nil {
		return nil, err
	}
	report := c.evaluator.Evaluate(left, right, generated.Questions, listener)
	report.RawResponse = generated.RawResponse
	c.lastLeft = left
	c.lastRight = right
	return report, nil
}

// AnswerFollowUp answers a single ad-hoc question against the image pair of the last
// successful comparison, with the same normalization and difference verdict.
func (c *ComparisonService) AnswerFollowUp(question string) (*QuestionResult, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.lastLeft == nil || c.lastRight == nil {
		return nil, ErrNoComparison
	}
	report := c.evaluator.Evaluate(c.lastLeft, c.lastRight, []string{question}, nil)
	return &report.Results[0], nil
}
