package visprog

import (
	"fmt"
	"strings"

	"kgeyst.com/diffspot/pkg/diffspot/domain"
)

// answerer implements domain.Answerer by compiling each (image, question) pair into a
// two-statement symbolic program: a VQA step against the image bound under the
// image's side name, then a RESULT step reading the answer back.
type answerer struct {
	interpreter *Interpreter
}

func NewAnswerer(interpreter *Interpreter) domain.Answerer {
	return &answerer{
		interpreter: interpreter,
	}
}

func (a *answerer) Answer(image *domain.Image, question string) (string, error) {
	program, err := Parse(buildProgram(image.Side, question))
	if err != nil {
		return "", err
	}
	state := map[string]any{
		string(image.Side): image,
	}
	return a.interpreter.Execute(program, state)
}

func buildProgram(side domain.ImageSide, question string) string {
	// Single quotes would terminate the quoted argument early, so they are stripped
	// from the question before it is embedded.
	question = strings.ReplaceAll(question, "'", "")
	return fmt.Sprintf("ANSWER=VQA(image=%s,question='%s')\nFINAL_ANSWER=RESULT(var=ANSWER)", side, question)
}
