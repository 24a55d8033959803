package slack

import (
	"context"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pklbhq/courtside/internal/metrics"
	"github.com/pklbhq/courtside/internal/rotation"
	"github.com/pklbhq/courtside/internal/session"
)

// fakeSlackClient captures posted messages instead of hitting the Slack API.
type fakeSlackClient struct {
	calls []string
	err   error
}

func (f *fakeSlackClient) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.calls = append(f.calls, channelID)
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "1234.5678", nil
}

func TestSendSlateNotification(t *testing.T) {
	fake := &fakeSlackClient{}
	mockMetrics := metrics.NewMockMetrics()
	n := NewNotifierWithAPI(fake, "C123", mockMetrics)

	slate := &rotation.Slate{
		Assignments: []rotation.CourtAssignment{
			{CourtIndex: 0, TeamA: []string{"p1", "p2"}, TeamB: []string{"p3", "p4"}},
		},
		Waiting: []string{"p5"},
	}
	names := map[string]string{"p1": "Alice", "p2": "Bob", "p3": "Cara", "p4": "Dan", "p5": "Eve"}

	err := n.SendSlateNotification(slate, []int{1}, names, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"C123"}, fake.calls)
	assert.Equal(t, 1, mockMetrics.SlackNotifSent)
}

func TestSendSlateNotificationDryRun(t *testing.T) {
	fake := &fakeSlackClient{}
	n := NewNotifierWithAPI(fake, "C123", metrics.NewMockMetrics())

	err := n.SendSlateNotification(&rotation.Slate{}, nil, nil, true)

	require.NoError(t, err)
	assert.Empty(t, fake.calls, "dry run must not hit the API")
}

func TestSendResultNotificationSwapsWinnerFirst(t *testing.T) {
	fake := &fakeSlackClient{}
	n := NewNotifierWithAPI(fake, "C123", metrics.NewMockMetrics())

	game := &session.GameRecord{
		TeamAIDs: []string{"p1", "p2"},
		TeamBIDs: []string{"p3", "p4"},
		ScoreA:   7,
		ScoreB:   11,
		PlayedAt: time.Date(2026, 8, 20, 19, 0, 0, 0, time.UTC),
	}
	msg := n.formatResultNotification(game, map[string]string{"p3": "Cara", "p4": "Dan"})

	require.NotEmpty(t, msg.Blocks.BlockSet)
	section, ok := msg.Blocks.BlockSet[1].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Cara & Dan def.")
	assert.Contains(t, section.Text.Text, "11-7")

	require.NoError(t, n.SendResultNotification(game, nil, false))
	assert.Len(t, fake.calls, 1)
}

func TestSendFailureCountsAsFailed(t *testing.T) {
	fake := &fakeSlackClient{err: assert.AnError}
	mockMetrics := metrics.NewMockMetrics()
	n := NewNotifierWithAPI(fake, "C123", mockMetrics)

	err := n.SendDuplicateWarning("game-41", false)

	assert.Error(t, err)
	assert.Equal(t, 1, mockMetrics.SlackNotifFailed)
	assert.Equal(t, 0, mockMetrics.SlackNotifSent)
}
