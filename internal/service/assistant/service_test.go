package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herahealth/portal-api/internal/model"
)

func TestReply(t *testing.T) {
	svc := NewService(Config{ReplyDelay: time.Millisecond})

	msg, err := svc.Reply(context.Background(), &model.AssistantMessageRequest{Content: "hello"})
	require.NoError(t, err)

	assert.Equal(t, model.AssistantRoleAssistant, msg.Role)
	assert.Equal(t, defaultReply, msg.Content)
}

func TestReplySameForAnyInput(t *testing.T) {
	svc := NewService(Config{ReplyDelay: time.Millisecond})

	first, err := svc.Reply(context.Background(), &model.AssistantMessageRequest{Content: "what is my cycle length?"})
	require.NoError(t, err)
	second, err := svc.Reply(context.Background(), &model.AssistantMessageRequest{Content: "book me an appointment"})
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}

func TestReplyConfiguredText(t *testing.T) {
	svc := NewService(Config{ReplyDelay: time.Millisecond, Reply: "custom answer"})

	msg, err := svc.Reply(context.Background(), &model.AssistantMessageRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "custom answer", msg.Content)
}

func TestReplyCancelled(t *testing.T) {
	svc := NewService(Config{ReplyDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Reply(ctx, &model.AssistantMessageRequest{Content: "hello"})
	require.ErrorIs(t, err, context.Canceled)
}
