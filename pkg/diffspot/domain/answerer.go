package domain

// Answerer answers a natural-language question against a single image and is expected
// to produce a short (ideally one-word) answer. The underlying visual-reasoning
// engine is a black box to the core: it may decompose the question into sub-steps
// internally, but here it is just a fallible function from (image, question) to text.
type Answerer interface {
	Answer(image *Image, question string) (string, error)
}
