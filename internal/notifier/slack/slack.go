package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/pklbhq/courtside/internal/metrics"
	"github.com/pklbhq/courtside/internal/notifier"
	"github.com/pklbhq/courtside/internal/rotation"
	"github.com/pklbhq/courtside/internal/session"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// Implement the Notifier interface
func (s *Notifier) SendSlateNotification(slate *rotation.Slate, skippedLocked []int, playerNames map[string]string, dryRun bool) error {
	msg := s.formatSlateNotification(slate, skippedLocked, playerNames)
	return s.sendMessage(msg, dryRun)
}

func (s *Notifier) SendResultNotification(game *session.GameRecord, playerNames map[string]string, dryRun bool) error {
	msg := s.formatResultNotification(game, playerNames)
	return s.sendMessage(msg, dryRun)
}

func (s *Notifier) SendDuplicateWarning(duplicateOf string, dryRun bool) error {
	msg := s.formatDuplicateWarning(duplicateOf)
	return s.sendMessage(msg, dryRun)
}

// formatSlateNotification creates the Slack message for a new rotation using Block Kit.
func (s *Notifier) formatSlateNotification(slate *rotation.Slate, skippedLocked []int, playerNames map[string]string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Next up on the courts!", false, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	for _, assignment := range slate.Assignments {
		courtText := fmt.Sprintf("Court %d:\n%s  vs  %s",
			assignment.CourtIndex+1,
			teamLine(assignment.TeamA, playerNames),
			teamLine(assignment.TeamB, playerNames),
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", courtText, false, false), nil, nil))
	}

	var contextElements []slack.MixedElement
	if len(slate.Waiting) > 0 {
		waitingText := "Waiting: " + namesLine(slate.Waiting, playerNames)
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", waitingText, false, false))
	}
	if len(skippedLocked) > 0 {
		var courtsText []string
		for _, index := range skippedLocked {
			courtsText = append(courtsText, fmt.Sprintf("%d", index+1))
		}
		lockedText := "Locked courts left unchanged: " + strings.Join(courtsText, ", ")
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", lockedText, false, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatResultNotification creates the Slack message for a recorded game using Block Kit.
func (s *Notifier) formatResultNotification(game *session.GameRecord, playerNames map[string]string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Game finished!", false, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	winners, losers := game.TeamAIDs, game.TeamBIDs
	winnerScore, loserScore := game.ScoreA, game.ScoreB
	if game.ScoreB > game.ScoreA {
		winners, losers = losers, winners
		winnerScore, loserScore = loserScore, winnerScore
	}
	resultText := fmt.Sprintf("%s def. %s  %d-%d",
		teamLine(winners, playerNames),
		teamLine(losers, playerNames),
		winnerScore, loserScore,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, false, false), nil, nil))

	timeText := slack.NewTextBlockObject("plain_text", game.PlayedAt.Format("Monday 02 Jan, 15:04"), false, false)
	blocks = append(blocks, slack.NewContextBlock("", timeText))

	return slack.NewBlockMessage(blocks...)
}

// formatDuplicateWarning creates the Slack message for a held-back submission.
func (s *Notifier) formatDuplicateWarning(duplicateOf string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Possible duplicate game", false, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	bodyText := fmt.Sprintf("The backend matched this submission against game %s. It was NOT recorded; resubmit with force to confirm.", duplicateOf)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", bodyText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

func teamLine(ids []string, playerNames map[string]string) string {
	var names []string
	for _, id := range ids {
		names = append(names, displayName(id, playerNames))
	}
	return strings.Join(names, " & ")
}

func namesLine(ids []string, playerNames map[string]string) string {
	var names []string
	for _, id := range ids {
		names = append(names, displayName(id, playerNames))
	}
	return strings.Join(names, ", ")
}

func displayName(id string, playerNames map[string]string) string {
	if name, ok := playerNames[id]; ok && name != "" {
		return name
	}
	return id
}
