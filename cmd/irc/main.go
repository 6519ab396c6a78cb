package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvdan/xurls"
	"github.com/whyrusleeping/hellabot"

	"kgeyst.com/diffspot/pkg/common"
	"kgeyst.com/diffspot/pkg/diffspot/api"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/filesystem"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	botName := config.GetStringOrDefault("botName", "diffspot")
	roomName := config.GetStringOrDefault("roomName", "diffspot")
	serverName := config.GetStringOrDefault("serverName", "irc.euirc.net:6667")
	diffspot, err := api.NewAPI(config)
	if err != nil {
		return err
	}
	tempFilePathProvider := filesystem.NewTempFilePathProvider(config)
	ircBot, err := hbot.NewBot(serverName, botName)
	if err != nil {
		return err
	}
	trigger := hbot.Trigger{
		Condition: func(b *hbot.Bot, m *hbot.Message) bool {
			return true
		},
		Action: func(b *hbot.Bot, m *hbot.Message) bool {
			if m.Command != "PRIVMSG" {
				return true
			}
			if !strings.HasPrefix(strings.ToLower(m.Content), strings.ToLower(botName)) {
				return true
			}
			what := strings.TrimSpace(m.Content[len(botName):])
			if len(what) == 0 || len(m.To) == 0 || m.To[0] != '#' {
				return false
			}
			if what[0] == ',' {
				what = strings.TrimSpace(what[1:])
			}
			if strings.HasPrefix(what, "compare") {
				b.Reply(m, m.From+" "+compareFromMessage(diffspot, tempFilePathProvider, what))
				return false
			}
			if strings.HasPrefix(what, "ask ") {
				b.Reply(m, m.From+" "+answerFromMessage(diffspot, strings.TrimSpace(what[len("ask "):])))
				return false
			}
			return true
		},
	}
	ircBot.AddTrigger(trigger)
	ircBot.Channels = []string{"#" + roomName}
	ircBot.Run()
	return nil
}

// compareFromMessage downloads the three images linked in the message (left scene,
// right scene, difference heatmap, in that order) and runs the comparison on them.
func compareFromMessage(diffspot api.API, tempFilePathProvider *filesystem.TempFilePathProvider, what string) string {
	urls := xurls.Relaxed.FindAllString(what, -1)
	if len(urls) != 3 {
		return "usage: compare <leftImageURL> <rightImageURL> <diffHeatmapURL>"
	}
	var paths []string
	for index, url := range urls {
		if !common.IsImageFormat(url) {
			return fmt.Sprintf("\"%s\" doesn't look like an image", url)
		}
		path := tempFilePathProvider.GetTempFilePath(fmt.Sprintf("diffspot-irc-%d%s", index, filepath.Ext(url)))
		if err := common.DownloadFromURL(url, path); err != nil {
			return "failed to download \"" + url + "\": " + err.Error()
		}
		paths = append(paths, path)
	}
	report, err := diffspot.Compare(paths[0], paths[1], paths[2], nil)
	if err != nil {
		return "comparison failed: " + err.Error()
	}
	var differing []string
	for _, result := range report.Results {
		if result.IsDifferent {
			differing = append(differing, fmt.Sprintf("\"%s\" (LEFT: %s, RIGHT: %s)",
				result.Question, result.LeftAnswer, result.RightAnswer))
		}
	}
	if len(differing) == 0 {
		return fmt.Sprintf("no differences found across %d questions", len(report.Results))
	}
	return fmt.Sprintf("%d difference(s) across %d questions: %s",
		report.DifferenceCount, len(report.Results), strings.Join(differing, "; "))
}

func answerFromMessage(diffspot api.API, question string) string {
	result, err := diffspot.AnswerFollowUp(question)
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("LEFT: %s, RIGHT: %s, different: %t", result.LeftAnswer, result.RightAnswer, result.IsDifferent)
}
