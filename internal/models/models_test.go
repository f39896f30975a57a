package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentIDsSerializeAsStrings(t *testing.T) {
	quizID := int64(9007199254740993) // above 2^53, not exact in a float64
	a := TrainingAssignment{
		ID:        9007199254740995,
		TopicID:   3,
		Matricola: "EMP001",
		QuizID:    &quizID,
		Status:    TrainingCompleted,
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "9007199254740995", decoded["id"])
	assert.Equal(t, "9007199254740993", decoded["quizId"])
}

func TestEmployeeNeverSerializesPasswordHash(t *testing.T) {
	data, err := json.Marshal(Employee{Matricola: "EMP001", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestQuestionNeverSerializesCorrectAnswer(t *testing.T) {
	data, err := json.Marshal(Question{ID: 1, Text: "domanda", CorrectAnswer: true})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correct")
}

func TestProgressSummaryFieldNames(t *testing.T) {
	data, err := json.Marshal(ProgressSummary{TotalCourses: 5, Completed: 2, InProgress: 2, NotStarted: 1, Percent: 40})
	require.NoError(t, err)
	assert.JSONEq(t, `{"totaleCorsi":5,"completati":2,"inCorso":2,"nonIniziati":1,"percentuale":40}`, string(data))
}
