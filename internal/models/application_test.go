package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name     string
		tasks    []Task
		expected int
	}{
		{"empty list", []Task{}, 0},
		{"nil list", nil, 0},
		{"none done", []Task{{Status: TaskPending}, {Status: TaskPending}}, 0},
		{"all done", []Task{{Status: TaskDone}, {Status: TaskDone}}, 100},
		{"half done", []Task{{Status: TaskDone}, {Status: TaskPending}}, 50},
		{"one of three done rounds to 33", []Task{{Status: TaskDone}, {Status: TaskPending}, {Status: TaskPending}}, 33},
		{"two of three done rounds to 67", []Task{{Status: TaskDone}, {Status: TaskDone}, {Status: TaskPending}}, 67},
		{"one of six done rounds to 17", []Task{{Status: TaskDone}, {Status: TaskPending}, {Status: TaskPending}, {Status: TaskPending}, {Status: TaskPending}, {Status: TaskPending}}, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeProgress(tt.tasks))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusUnderReview, StatusAccepted, StatusRejected} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Approved"))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestValidEvaluation(t *testing.T) {
	for _, e := range []string{EvaluationPending, EvaluationCompleted, EvaluationNeedsImprov} {
		assert.True(t, ValidEvaluation(e), e)
	}
	assert.False(t, ValidEvaluation("Excellent"))
	assert.False(t, ValidEvaluation(""))
}
