package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"kgeyst.com/diffspot/pkg/common"
	"kgeyst.com/diffspot/pkg/diffspot/domain"
)

type nopLogger struct{}

func (nopLogger) Log(string) {}

func newTestConfig(t *testing.T, baseURL string) *common.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := fmt.Sprintf("openAIKey: test-key\nopenAIBaseURL: %s\n", baseURL)
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	config, err := common.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	return config
}

func writeImageFiles(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 3)
	for i, name := range []string{"left.png", "right.png", "diff.png"} {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], []byte("fake image bytes "+name), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return paths[0], paths[1], paths[2]
}

func TestGenerateQuestionsSuccess(t *testing.T) {
	var gotRequest chatCompletionRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("failed to decode the request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[\"Is there a boat?\",\"What color is the car?\"]"}}]}`))
	}))
	defer server.Close()
	generator := NewQuestionGenerator(domain.NewQuestionExtractor(), newTestConfig(t, server.URL), nopLogger{})
	left, right, diff := writeImageFiles(t)
	generated, err := generator.GenerateQuestions(left, right, diff)
	if err != nil {
		t.Fatalf("GenerateQuestions returned error: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected a bearer auth header, got %q", gotAuth)
	}
	if gotRequest.Model != "gpt-4o" {
		t.Fatalf("expected the default model, got %q", gotRequest.Model)
	}
	content := gotRequest.Messages[0].Content
	if len(content) != 4 || content[0].Type != "text" {
		t.Fatalf("expected 1 text part + 3 image parts, got %d parts", len(content))
	}
	for _, part := range content[1:] {
		if part.Type != "image_url" || !strings.HasPrefix(part.ImageURL.URL, "data:image/png;base64,") {
			t.Fatalf("expected an inline base64 image part, got %+v", part)
		}
	}
	want := []string{"Is there a boat?", "What color is the car?"}
	if !reflect.DeepEqual(generated.Questions, want) {
		t.Fatalf("expected %v, got %v", want, generated.Questions)
	}
	if generated.RawResponse == "" {
		t.Fatal("expected the raw completion text to be preserved")
	}
}

func TestGenerateQuestionsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer server.Close()
	generator := NewQuestionGenerator(domain.NewQuestionExtractor(), newTestConfig(t, server.URL), nopLogger{})
	left, right, diff := writeImageFiles(t)
	_, err := generator.GenerateQuestions(left, right, diff)
	var transportError *domain.TransportError
	if !errors.As(err, &transportError) {
		t.Fatalf("expected a TransportError, got %v", err)
	}
	if transportError.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", transportError.StatusCode)
	}
	if !strings.Contains(transportError.Body, "rate limited") {
		t.Fatalf("expected the response body to be preserved, got %q", transportError.Body)
	}
}

func TestGenerateQuestionsUnparsableCompletionFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Sorry, I cannot help with that"}}]}`))
	}))
	defer server.Close()
	generator := NewQuestionGenerator(domain.NewQuestionExtractor(), newTestConfig(t, server.URL), nopLogger{})
	left, right, diff := writeImageFiles(t)
	generated, err := generator.GenerateQuestions(left, right, diff)
	if err != nil {
		t.Fatalf("GenerateQuestions returned error: %v", err)
	}
	if len(generated.Questions) == 0 {
		t.Fatal("an unparsable completion must still yield the fallback questions")
	}
}
