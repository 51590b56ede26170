package session

import (
	"context"
	"testing"

	"github.com/graceway/shepherd/internal/services/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	assert.Empty(t, svc.History(ctx, "s1"))

	svc.Append(ctx, "s1", "How do I pray?", "Start with gratitude.")

	history := svc.History(ctx, "s1")
	require.Len(t, history, 2)
	assert.Equal(t, completion.RoleUser, history[0].Role)
	assert.Equal(t, "How do I pray?", history[0].Content)
	assert.Equal(t, completion.RoleAssistant, history[1].Role)
}

func TestHistoryIsPerSession(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	svc.Append(ctx, "s1", "a", "b")

	assert.Len(t, svc.History(ctx, "s1"), 2)
	assert.Empty(t, svc.History(ctx, "s2"))
}

func TestHistoryTrimsToRecentMessages(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	for i := 0; i < maxHistoryMessages; i++ {
		svc.Append(ctx, "s1", "question", "answer")
	}

	history := svc.History(ctx, "s1")
	assert.Len(t, history, maxHistoryMessages)
}

func TestBlankSessionIDIsIgnored(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	svc.Append(ctx, "", "a", "b")
	assert.Empty(t, svc.History(ctx, ""))
}
