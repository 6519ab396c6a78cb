package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeGenerator struct {
	called    bool
	questions []string
}

func (f *fakeGenerator) GenerateQuestions(string, string, string) (*GeneratedQuestions, error) {
	f.called = true
	return &GeneratedQuestions{RawResponse: "raw", Questions: f.questions}, nil
}

type fakeLoader struct{}

func (fakeLoader) Load(path string, side ImageSide) (*Image, error) {
	return &Image{Side: side, Path: path}, nil
}

func writeSceneFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really an image"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestService(generator QuestionGenerator) *ComparisonService {
	answerer := &fakeAnswerer{answers: map[ImageSide]map[string]string{
		ImageSideLeft:  {"q1": "yes", "q2": "red"},
		ImageSideRight: {"q1": "no", "q2": "red"},
	}}
	evaluator := NewDifferenceEvaluator(answerer, nopLogger{})
	return NewComparisonService(generator, fakeLoader{}, evaluator, nopLogger{})
}

func TestCompareMissingSceneImage(t *testing.T) {
	dir := t.TempDir()
	left := writeSceneFile(t, dir, "left.png")
	generator := &fakeGenerator{questions: []string{"q1"}}
	service := newTestService(generator)
	_, err := service.Compare(left, filepath.Join(dir, "missing.png"), filepath.Join(dir, "diff.png"), nil)
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
	if generator.called {
		t.Fatal("the generator must not be invoked when a scene image is missing")
	}
}

func TestCompareHeatmapIsNotExistenceChecked(t *testing.T) {
	dir := t.TempDir()
	left := writeSceneFile(t, dir, "left.png")
	right := writeSceneFile(t, dir, "right.png")
	generator := &fakeGenerator{questions: []string{"q1", "q2"}}
	service := newTestService(generator)
	report, err := service.Compare(left, right, filepath.Join(dir, "missing-heatmap.png"), nil)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !generator.called {
		t.Fatal("expected the generator to be invoked")
	}
	if report.DifferenceCount != 1 {
		t.Fatalf("expected 1 difference, got %d", report.DifferenceCount)
	}
	if report.RawResponse != "raw" {
		t.Fatalf("expected the raw completion on the report, got %q", report.RawResponse)
	}
}

func TestAnswerFollowUpBeforeAnyComparison(t *testing.T) {
	service := newTestService(&fakeGenerator{questions: []string{"q1"}})
	if _, err := service.AnswerFollowUp("q1"); !errors.Is(err, ErrNoComparison) {
		t.Fatalf("expected ErrNoComparison, got %v", err)
	}
}

func TestAnswerFollowUpAfterComparison(t *testing.T) {
	dir := t.TempDir()
	left := writeSceneFile(t, dir, "left.png")
	right := writeSceneFile(t, dir, "right.png")
	service := newTestService(&fakeGenerator{questions: []string{"q2"}})
	if _, err := service.Compare(left, right, filepath.Join(dir, "diff.png"), nil); err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	result, err := service.AnswerFollowUp("q1")
	if err != nil {
		t.Fatalf("AnswerFollowUp returned error: %v", err)
	}
	if !result.IsDifferent {
		t.Fatal("expected q1 to differ between the two images")
	}
}
