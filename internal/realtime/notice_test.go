package realtime

import (
	"testing"
	"time"

	"workhub/internal/hub"

	"github.com/stretchr/testify/assert"
)

func TestNoticeToMessage(t *testing.T) {
	sent := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	notice := Notice{
		Kind:     "task_notice",
		SenderID: 2,
		TeamID:   9,
		Targets:  []uint{4, 5},
		Content:  "New task assigned: Inventory count",
		SentAt:   sent,
	}

	msg := notice.toMessage()

	assert.Equal(t, hub.KindTaskNotice, msg.Kind)
	assert.Equal(t, uint(2), msg.SenderID)
	assert.Equal(t, uint(9), msg.TeamID)
	assert.Equal(t, []uint{4, 5}, msg.Targets)
	assert.Equal(t, "New task assigned: Inventory count", msg.Content)
	assert.Equal(t, sent, msg.SentAt)
	assert.False(t, msg.ToAgent)
}
