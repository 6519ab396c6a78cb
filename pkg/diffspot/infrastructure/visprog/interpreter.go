package visprog

import (
	"errors"
	"fmt"
)

// VisionModel answers a free-form prompt against an image file. Implemented by the
// llava.cpp adapter in production and by fakes in tests.
type VisionModel interface {
	Infer(filePath, prompt string) (string, error)
}

// Step executes one operation of a symbolic program over the interpreter state.
type Step interface {
	Execute(args map[string]string, state map[string]any) (any, error)
}

// Interpreter executes symbolic VQA programs statement by statement, binding each
// statement's result to its variable. The result of the final statement is the
// program result.
type Interpreter struct {
	steps map[string]Step
}

func NewInterpreter(visionModel VisionModel) *Interpreter {
	return &Interpreter{
		steps: map[string]Step{
			"VQA":    &vqaStep{visionModel: visionModel},
			"RESULT": &resultStep{},
		},
	}
}

// Execute runs the program over a copy of `state` (programs must not leak bindings
// into the caller's state) and returns the final statement's value as a string.
func (i *Interpreter) Execute(program *Program, state map[string]any) (string, error) {
	locals := make(map[string]any, len(state))
	for key, value := range state {
		locals[key] = value
	}
	var last any
	for _, statement := range program.Statements {
		step, ok := i.steps[statement.Op]
		if !ok {
			return "", fmt.Errorf("unknown operation: %s", statement.Op)
		}
		value, err := step.Execute(statement.Args, locals)
		if err != nil {
			return "", err
		}
		locals[statement.Variable] = value
		last = value
	}
	if last == nil {
		return "", errors.New("the program produced no result")
	}
	return fmt.Sprintf("%v", last), nil
}
