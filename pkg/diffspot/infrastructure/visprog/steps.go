package visprog

import (
	"errors"
	"fmt"

	"kgeyst.com/diffspot/pkg/diffspot/domain"
)

// oneWordAnswerPrompt wraps the question so the vision model keeps its answer short
// enough to be compared verbatim between the two images.
const oneWordAnswerPrompt = "Look at the image and answer the following question with a single word or a very short phrase.\nQuestion: %s\nAnswer:"

type vqaStep struct {
	visionModel VisionModel
}

func (v *vqaStep) Execute(args map[string]string, state map[string]any) (any, error) {
	imageName := args["image"]
	question := args["question"]
	if imageName == "" || question == "" {
		return nil, errors.New("VQA requires `image` and `question` arguments")
	}
	value, ok := state[imageName]
	if !ok {
		return nil, fmt.Errorf("unknown image variable: %s", imageName)
	}
	img, ok := value.(*domain.Image)
	if !ok {
		return nil, fmt.Errorf("variable %s is not an image", imageName)
	}
	return v.visionModel.Infer(img.Path, fmt.Sprintf(oneWordAnswerPrompt, question))
}

type resultStep struct{}

func (r *resultStep) Execute(args map[string]string, state map[string]any) (any, error) {
	name := args["var"]
	value, ok := state[name]
	if !ok {
		return nil, fmt.Errorf("unknown variable: %s", name)
	}
	return value, nil
}
