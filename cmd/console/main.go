package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"kgeyst.com/diffspot/pkg/common"
	"kgeyst.com/diffspot/pkg/diffspot/api"
	"kgeyst.com/diffspot/pkg/diffspot/domain"
)

func main() {
	// All failures end up here: print a diagnostic and remediation hints but still
	// exit normally, this is an interactive analysis tool.
	if err := mainImpl(); err != nil {
		fmt.Printf("\nError: %s\n", err.Error())
		fmt.Println("Make sure:")
		fmt.Println("1. Your OpenAI API key is valid in config.yaml")
		fmt.Println("2. The two image files exist")
		fmt.Println("3. You are connected to the internet")
	}
}

func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	leftImagePath := config.GetStringOrDefault(api.ConfigKeyLeftImagePath, "assets/hard1.png")
	rightImagePath := config.GetStringOrDefault(api.ConfigKeyRightImagePath, "assets/hard2.png")
	diffImagePath := config.GetStringOrDefault(api.ConfigKeyDiffImagePath, "assets/difference_heatmap.png")
	diffspot, err := api.NewAPI(config)
	if err != nil {
		return err
	}
	fmt.Println("Getting questions from the vision model...")
	report, err := diffspot.Compare(leftImagePath, rightImagePath, diffImagePath, &consolePrinter{})
	if err != nil {
		return err
	}
	fmt.Printf("\nDone (run %s). Total differences: %d across %d questions.\n",
		report.RunID, report.DifferenceCount, len(report.Results))
	return followUpLoop(diffspot)
}

// followUpLoop lets the user test ad-hoc questions against the already loaded image
// pair until EOF (Ctrl+D).
func followUpLoop(diffspot api.API) error {
	fmt.Println("Type a follow-up question to test it against both images (Ctrl+D to exit).")
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result, err := diffspot.AnswerFollowUp(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("  LEFT : %s\n  RIGHT: %s\n  Different? -> %s\n",
			result.LeftAnswer, result.RightAnswer, yesNo(result.IsDifferent))
	}
	return nil
}

type consolePrinter struct{}

func (c *consolePrinter) OnQuestionsGenerated(rawResponse string, questions []string) {
	fmt.Println("\nRaw model response:")
	fmt.Println(rawResponse)
	fmt.Println("\nQuestions to test:")
	for i, question := range questions {
		fmt.Printf("  %d. %s\n", i+1, question)
	}
	fmt.Println("\nQuestions & VQA results\n" + strings.Repeat("=", 60))
}

func (c *consolePrinter) OnQuestionEvaluated(index int, result domain.QuestionResult) {
	fmt.Printf("\n ->> Question %d: %s\n", index, result.Question)
	fmt.Printf("  LEFT : %s\n", result.LeftAnswer)
	fmt.Printf("  RIGHT: %s\n", result.RightAnswer)
	fmt.Printf("  Different? -> %s\n", yesNo(result.IsDifferent))
	fmt.Printf("TOTAL DIFFERENCES FOUND: %d\n", result.DifferencesSoFar)
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
