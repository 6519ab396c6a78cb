package api

import (
	"errors"

	"kgeyst.com/diffspot/pkg/common"
	"kgeyst.com/diffspot/pkg/diffspot/domain"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/filesystem"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/imaging"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/llavacpp"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/logging"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/openai"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/visprog"
)

// See domain/config.go
const (
	ConfigKeyLogPath        = domain.ConfigKeyLogPath
	ConfigKeyLeftImagePath  = domain.ConfigKeyLeftImagePath
	ConfigKeyRightImagePath = domain.ConfigKeyRightImagePath
	ConfigKeyDiffImagePath  = domain.ConfigKeyDiffImagePath
)

// API is the entrypoint to diffspot. It shouldn't contain any logic of its own; it
// glues all the components together and provides a public interface for
// domain.ComparisonService. The API can be used in various contexts: a console tool,
// an IRC bot, an HTTP server etc.
type API interface {
	// Compare runs the full workflow for two scene images plus a precomputed
	// difference heatmap: question generation, per-image VQA answering and
	// difference counting. `listener` may be nil.
	Compare(leftImagePath, rightImagePath, diffImagePath string, listener domain.ProgressListener) (*domain.ComparisonReport, error)
	// AnswerFollowUp answers an ad-hoc question against the image pair of the last
	// successful Compare call.
	AnswerFollowUp(question string) (*domain.QuestionResult, error)
}

type api struct {
	comparisonService *domain.ComparisonService
}

func NewAPI(config *common.Config) (API, error) {
	if config.GetString(openai.ConfigKeyAPIKey) == "" {
		return nil, errors.New("config key \"" + openai.ConfigKeyAPIKey + "\" is required")
	}
	logger := common.NewFileLogger(config.GetStringOrDefault(ConfigKeyLogPath, "log.txt"))
	tempFilePathProvider := filesystem.NewTempFilePathProvider(config)
	imageLoader := imaging.NewLoader(tempFilePathProvider, config, logger)
	visionModel := llavacpp.NewVisionModel(config)
	interpreter := visprog.NewInterpreter(visionModel)
	answerer := logging.NewAnswererDecorator(visprog.NewAnswerer(interpreter), logger)
	evaluator := domain.NewDifferenceEvaluator(answerer, logger)
	questionGenerator := openai.NewQuestionGenerator(domain.NewQuestionExtractor(), config, logger)
	return &api{
		comparisonService: domain.NewComparisonService(questionGenerator, imageLoader, evaluator, logger),
	}, nil
}

func (a *api) Compare(leftImagePath, rightImagePath, diffImagePath string, listener domain.ProgressListener) (*domain.ComparisonReport, error) {
	return a.comparisonService.Compare(leftImagePath, rightImagePath, diffImagePath, listener)
}

func (a *api) AnswerFollowUp(question string) (*domain.QuestionResult, error) {
	return a.comparisonService.AnswerFollowUp(question)
}
