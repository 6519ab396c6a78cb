package logging

import (
	"fmt"
	"time"

	"kgeyst.com/diffspot/pkg/common"
	"kgeyst.com/diffspot/pkg/diffspot/domain"
)

type answererDecorator struct {
	wrappedAnswerer domain.Answerer
	logger          common.Logger
}

// NewAnswererDecorator logs every question, answer and timing of the wrapped VQA
// answerer. Useful for debugging why two answers did or didn't match.
func NewAnswererDecorator(wrappedAnswerer domain.Answerer, logger common.Logger) domain.Answerer {
	return &answererDecorator{
		wrappedAnswerer: wrappedAnswerer,
		logger:          logger,
	}
}

func (a *answererDecorator) Answer(image *domain.Image, question string) (string, error) {
	a.logger.Log(fmt.Sprintf("\n================\n VQA question (%s image):\n%s\n================\n", image.Side, question))
	t := time.Now()
	answer, err := a.wrappedAnswerer.Answer(image, question)
	if err != nil {
		return "", err
	}
	a.logger.Log(fmt.Sprintf("\n================\n VQA answer:\n%s\n (took %d ms)\n================\n", answer, time.Since(t).Milliseconds()))
	return answer, nil
}
