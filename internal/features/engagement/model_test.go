package engagement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/eduflow/eduflow-server/internal/features/content"
)

func TestLearnerPoints(t *testing.T) {
	assert.Equal(t, int64(0), learnerPoints(0, 0, 0))
	assert.Equal(t, int64(5), learnerPoints(1, 0, 0))
	assert.Equal(t, int64(50), learnerPoints(0, 1, 0))
	assert.Equal(t, int64(10), learnerPoints(0, 0, 1))
	assert.Equal(t, int64(5*3+50*2+10*4), learnerPoints(3, 2, 4))
}

func TestLearnerMinutes(t *testing.T) {
	assert.Equal(t, int64(0), learnerMinutes(0, 0))
	assert.Equal(t, int64(5), learnerMinutes(1, 0))
	assert.Equal(t, int64(30), learnerMinutes(0, 1))
	assert.Equal(t, int64(5*7+30*2), learnerMinutes(7, 2))
}

func TestAnnotateCompleted(t *testing.T) {
	first := content.Content{ID: uuid.New(), Title: "first"}
	second := content.Content{ID: uuid.New(), Title: "second"}

	done := map[uuid.UUID]struct{}{second.ID: {}}

	visited := annotateCompleted([]content.Content{first, second}, done)
	assert.Len(t, visited, 2)
	assert.Equal(t, "first", visited[0].Title)
	assert.False(t, visited[0].Completed)
	assert.True(t, visited[1].Completed)

	assert.Empty(t, annotateCompleted(nil, done))
}

func TestFormatTimeSpent(t *testing.T) {
	assert.Equal(t, "0m", FormatTimeSpent(0))
	assert.Equal(t, "59m", FormatTimeSpent(59))
	assert.Equal(t, "1h 0m", FormatTimeSpent(60))
	assert.Equal(t, "1h 35m", FormatTimeSpent(95))
	assert.Equal(t, "3h 0m", FormatTimeSpent(180))
}
