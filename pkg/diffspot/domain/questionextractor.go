package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fallbackQuestions is returned when the model completion cannot be parsed at all:
// generic questions still let the pipeline run, which beats failing the whole comparison.
var fallbackQuestions = []string{
	"What objects are visible in the image?",
	"What are the main colors present?",
	"What actions or activities are occurring?",
	"Describe the setting or background.",
}

// minNumberedListSize one or two period-splits are likely accidental periods in prose,
// a real numbered list has at least 3 entries.
const minNumberedListSize = 3

// QuestionExtractor recovers a question list from the free-form text of a model
// completion. Models don't always honor the "JSON array only" instruction, so parsing
// falls back from fenced JSON to bare JSON to a numbered list, and finally to a fixed
// generic list. ExtractQuestions never fails and never returns an empty list.
type QuestionExtractor struct{}

func NewQuestionExtractor() *QuestionExtractor {
	return &QuestionExtractor{}
}

func (q *QuestionExtractor) ExtractQuestions(response string) []string {
	if questions := parseFencedJSONList(response); questions != nil {
		return questions
	}
	if questions := parseJSONList(response); questions != nil {
		return questions
	}
	if questions := parseNumberedList(response); questions != nil {
		return questions
	}
	return fallbackQuestions
}

func parseFencedJSONList(response string) []string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```json") {
		return nil
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return parseJSONStringList(strings.TrimSpace(trimmed))
}

func parseJSONList(response string) []string {
	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, "```json") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return parseJSONStringList(strings.TrimSpace(trimmed))
}

// parseJSONStringList accepts only a JSON array: any other JSON value (an object, say)
// must be rejected so the next fallback can run, not silently wrapped in a list.
func parseJSONStringList(text string) []string {
	var items []any
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil
	}
	questions := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			str = fmt.Sprintf("%v", item)
		}
		str = strings.TrimSpace(str)
		if str != "" {
			questions = append(questions, str)
		}
	}
	if len(questions) == 0 {
		return nil
	}
	return questions
}

// parseNumberedList handles completions like "1. Is there a dog?\n2. ...": every line
// containing a period contributes the trimmed text after the first period.
func parseNumberedList(response string) []string {
	var questions []string
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		_, after, found := strings.Cut(line, ".")
		if !found {
			continue
		}
		candidate := strings.TrimSpace(after)
		if candidate != "" {
			questions = append(questions, candidate)
		}
	}
	if len(questions) < minNumberedListSize {
		return nil
	}
	return questions
}
