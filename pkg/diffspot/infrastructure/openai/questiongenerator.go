package openai

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"kgeyst.com/diffspot/pkg/common"
	"kgeyst.com/diffspot/pkg/diffspot/domain"
)

const (
	// ConfigKeyAPIKey the OpenAI API key used for question generation (required)
	ConfigKeyAPIKey = "openAIKey"
	// ConfigKeyModel which chat model generates the questions
	ConfigKeyModel = "openAIModel"
	// ConfigKeyBaseURL the API endpoint prefix; override it to point at a proxy or a test server
	ConfigKeyBaseURL = "openAIBaseURL"
	// ConfigKeyMaxTokens the completion token budget for question generation
	ConfigKeyMaxTokens = "openAIMaxTokens"
	// ConfigKeyRequestTimeout when to give up on the completion request
	ConfigKeyRequestTimeout = "openAIRequestTimeout"
)

// taskPrompt instructs the model to produce as many independently answerable,
// single-category questions as possible, as a bare JSON array of strings. The
// extractor copes when the model ignores the output mandate anyway.
const taskPrompt = "You are given two images of the same scene and a difference heatmap. " +
	"The difference heatmap is a binary image where the difference between the two images is highlighted in white. " +
	"Generate AS MANY *specific and visually testable* questions that help identify differences between them as you can. " +
	"Use the difference heatmap to generate questions that focus on the differences between the two images. " +
	"Cover the following categories:\n" +
	"- Presence or absence of objects (e.g. 'Is there a boat?')\n" +
	"- Quantity (e.g. 'How many cars are there?')\n" +
	"- Color (e.g. 'What is the color of the shirt?')\n" +
	"- Shape or orientation (e.g. 'What shape is the object? Is it upright or tilted?')\n" +
	"- Action or behavior (e.g. 'Is anyone walking? Is the dog sitting?')\n\n" +
	"Write each question so it can be answered **independently** for each image — do not compare directly (e.g. not 'Which image has more trees?').\n\n" +
	"Do not combine questions. Do not repeat the same wording.\n\n" +
	"Each question should focus on a specific object, color, action, or spatial detail. " +
	"Questions should have one word answers. " +
	"Respond only with a JSON array of strings (no explanation, no Markdown)."

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type questionGenerator struct {
	extractor  *domain.QuestionExtractor
	logger     common.Logger
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
}

// NewQuestionGenerator creates a question generator backed by the OpenAI
// chat-completions API (or any endpoint speaking the same protocol, see
// ConfigKeyBaseURL). The three images are uploaded inline as base64 payloads
// alongside one fixed instruction block.
func NewQuestionGenerator(extractor *domain.QuestionExtractor, config *common.Config, logger common.Logger) domain.QuestionGenerator {
	return &questionGenerator{
		extractor:  extractor,
		logger:     logger,
		httpClient: &http.Client{Timeout: config.GetDurationOrDefault(ConfigKeyRequestTimeout, time.Minute)},
		apiKey:     config.GetString(ConfigKeyAPIKey),
		model:      config.GetStringOrDefault(ConfigKeyModel, "gpt-4o"),
		baseURL:    config.GetStringOrDefault(ConfigKeyBaseURL, "https://api.openai.com/v1"),
		maxTokens:  config.GetIntOrDefault(ConfigKeyMaxTokens, 1000),
	}
}

func (q *questionGenerator) GenerateQuestions(leftImagePath, rightImagePath, diffImagePath string) (*domain.GeneratedQuestions, error) {
	content := []contentPart{
		{Type: "text", Text: taskPrompt},
	}
	for _, path := range []string{leftImagePath, rightImagePath, diffImagePath} {
		dataURL, err := encodeImageToDataURL(path)
		if err != nil {
			return nil, err
		}
		content = append(content, contentPart{Type: "image_url", ImageURL: &imageURL{URL: dataURL}})
	}
	requestBody := chatCompletionRequest{
		Model:     q.model,
		MaxTokens: q.maxTokens,
		Messages: []chatMessage{
			{Role: "user", Content: content},
		},
	}
	encoded, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}
	request, err := http.NewRequest(http.MethodPost, q.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+q.apiKey)
	request.Header.Set("Content-Type", "application/json")
	response, err := q.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = response.Body.Close()
	}()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &domain.TransportError{StatusCode: response.StatusCode, Body: string(body)}
	}
	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("the completion response contains no choices")
	}
	rawResponse := completion.Choices[0].Message.Content
	q.logger.Log(fmt.Sprintf("\n================\n raw completion:\n%s\n================\n", rawResponse))
	return &domain.GeneratedQuestions{
		RawResponse: rawResponse,
		Questions:   q.extractor.ExtractQuestions(rawResponse),
	}, nil
}

func encodeImageToDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
