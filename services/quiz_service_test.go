package services

import (
	"testing"

	"quizhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveQuizCreatesAllRows(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")

	quizID, err := s.SaveQuiz(&SaveQuizRequest{
		UserID:      alice.ID,
		Title:       "Capitals",
		Description: "European capitals",
		IsPublic:    true,
		Questions: []SaveQuestionRequest{
			{Text: "Capital of France?", CorrectAnswer: 0, Options: []string{"Paris", "Lyon", "Nice"}},
			{Text: "Capital of Spain?", CorrectAnswer: 2, Options: []string{"Seville", "Barcelona", "Madrid"}},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, quizID)

	var questionCount, optionCount int64
	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Option{}).Count(&optionCount).Error)
	assert.Equal(t, int64(2), questionCount)
	assert.Equal(t, int64(6), optionCount)

	quiz, questions, err := s.GetDetails(quizID)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", quiz.Title)
	require.Len(t, questions, 2)
	assert.Equal(t, "Capital of France?", questions[0].Text)
	assert.Equal(t, 0, questions[0].CorrectOptionIndex)
	assert.Equal(t, []string{"Paris", "Lyon", "Nice"}, questions[0].Options)
	assert.Equal(t, 2, questions[1].CorrectOptionIndex)
	assert.Equal(t, []string{"Seville", "Barcelona", "Madrid"}, questions[1].Options)
}

func TestSaveQuizAcceptsEmptyQuestions(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")

	quizID, err := s.SaveQuiz(&SaveQuizRequest{
		UserID: alice.ID,
		Title:  "Empty",
	})
	require.NoError(t, err)

	_, questions, err := s.GetDetails(quizID)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestSaveQuizUpdateReplacesChildren(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")

	quizID, err := s.SaveQuiz(&SaveQuizRequest{
		UserID: alice.ID,
		Title:  "v1",
		Questions: []SaveQuestionRequest{
			{Text: "old one", CorrectAnswer: 0, Options: []string{"a", "b"}},
			{Text: "old two", CorrectAnswer: 1, Options: []string{"c", "d"}},
		},
	})
	require.NoError(t, err)

	var oldIDs []uint
	require.NoError(t, db.Model(&models.Question{}).Pluck("id", &oldIDs).Error)
	require.Len(t, oldIDs, 2)

	updatedID, err := s.SaveQuiz(&SaveQuizRequest{
		UserID:   alice.ID,
		QuizID:   quizID,
		Title:    "v2",
		IsPublic: true,
		Questions: []SaveQuestionRequest{
			{Text: "new one", CorrectAnswer: 1, Options: []string{"x", "y", "z"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, quizID, updatedID)

	// No row from the prior question set survives
	var survivors int64
	require.NoError(t, db.Model(&models.Question{}).Where("id IN ?", oldIDs).Count(&survivors).Error)
	assert.Zero(t, survivors)

	var questionCount, optionCount int64
	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Option{}).Count(&optionCount).Error)
	assert.Equal(t, int64(1), questionCount)
	assert.Equal(t, int64(3), optionCount)

	quiz, questions, err := s.GetDetails(quizID)
	require.NoError(t, err)
	assert.Equal(t, "v2", quiz.Title)
	require.Len(t, questions, 1)
	assert.Equal(t, "new one", questions[0].Text)
}

func TestSaveQuizRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")

	// Sabotage the option insert so the transaction fails mid-save
	require.NoError(t, db.Migrator().DropTable(&models.Option{}))

	_, err := s.SaveQuiz(&SaveQuizRequest{
		UserID: alice.ID,
		Title:  "doomed",
		Questions: []SaveQuestionRequest{
			{Text: "q", CorrectAnswer: 0, Options: []string{"a", "b"}},
		},
	})
	require.Error(t, err)

	var quizCount, questionCount int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&quizCount).Error)
	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	assert.Zero(t, quizCount)
	assert.Zero(t, questionCount)
}

func TestSaveQuizUpdateRollsBackToPriorState(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")

	quizID, err := s.SaveQuiz(&SaveQuizRequest{
		UserID: alice.ID,
		Title:  "v1",
		Questions: []SaveQuestionRequest{
			{Text: "original", CorrectAnswer: 1, Options: []string{"a", "b"}},
		},
	})
	require.NoError(t, err)

	// Make the second of the duplicate new options fail mid-replace, after
	// the old question set has already been deleted inside the transaction
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX idx_options_text ON options(text)").Error)

	_, err = s.SaveQuiz(&SaveQuizRequest{
		UserID: alice.ID,
		QuizID: quizID,
		Title:  "v2",
		Questions: []SaveQuestionRequest{
			{Text: "replacement", CorrectAnswer: 0, Options: []string{"x", "x"}},
		},
	})
	require.Error(t, err)

	// The quiz id is unchanged and the prior state survives in full
	quiz, questions, err := s.GetDetails(quizID)
	require.NoError(t, err)
	assert.Equal(t, "v1", quiz.Title)
	require.Len(t, questions, 1)
	assert.Equal(t, "original", questions[0].Text)
	assert.Equal(t, 1, questions[0].CorrectOptionIndex)
	assert.Equal(t, []string{"a", "b"}, questions[0].Options)

	var questionCount, optionCount int64
	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Option{}).Count(&optionCount).Error)
	assert.Equal(t, int64(1), questionCount)
	assert.Equal(t, int64(2), optionCount)
}

func TestSaveQuizUpdateByNonOwnerLeavesQuizRowUntouched(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")
	mallory := seedUser(t, db, "mallory", "mallory@x.com")

	quizID, err := s.SaveQuiz(&SaveQuizRequest{
		UserID: alice.ID,
		Title:  "mine",
		Questions: []SaveQuestionRequest{
			{Text: "q", CorrectAnswer: 0, Options: []string{"a", "b"}},
		},
	})
	require.NoError(t, err)

	_, err = s.SaveQuiz(&SaveQuizRequest{
		UserID: mallory.ID,
		QuizID: quizID,
		Title:  "stolen",
		Questions: []SaveQuestionRequest{
			{Text: "theirs", CorrectAnswer: 0, Options: []string{"x"}},
		},
	})
	require.NoError(t, err)

	var quiz models.Quiz
	require.NoError(t, db.First(&quiz, quizID).Error)
	assert.Equal(t, "mine", quiz.Title)
	assert.Equal(t, alice.ID, quiz.UserID)

	// The question replace is scoped by quiz id only, so the non-owner's
	// payload did land. Kept as documented legacy behavior.
	_, questions, err := s.GetDetails(quizID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "theirs", questions[0].Text)
}

func TestGetDetailsNotFound(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)

	_, _, err := s.GetDetails(12345)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")
	mallory := seedUser(t, db, "mallory", "mallory@x.com")

	quizID, err := s.SaveQuiz(&SaveQuizRequest{
		UserID: alice.ID,
		Title:  "keep out",
		Questions: []SaveQuestionRequest{
			{Text: "q", CorrectAnswer: 0, Options: []string{"a", "b"}},
		},
	})
	require.NoError(t, err)

	removed, err := s.Delete(quizID, mallory.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	var quizCount, questionCount, optionCount int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&quizCount).Error)
	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Option{}).Count(&optionCount).Error)
	assert.Equal(t, int64(1), quizCount)
	assert.Equal(t, int64(1), questionCount)
	assert.Equal(t, int64(2), optionCount)

	removed, err = s.Delete(quizID, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	require.NoError(t, db.Model(&models.Question{}).Count(&questionCount).Error)
	require.NoError(t, db.Model(&models.Option{}).Count(&optionCount).Error)
	assert.Zero(t, questionCount)
	assert.Zero(t, optionCount)
}

func TestResetAccountDeletesOnlyOwnQuizzes(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")
	bob := seedUser(t, db, "bob", "bob@x.com")

	for _, title := range []string{"one", "two"} {
		_, err := s.SaveQuiz(&SaveQuizRequest{UserID: alice.ID, Title: title})
		require.NoError(t, err)
	}
	bobQuiz, err := s.SaveQuiz(&SaveQuizRequest{UserID: bob.ID, Title: "bobs"})
	require.NoError(t, err)

	require.NoError(t, s.ResetAccount(alice.ID))

	var remaining []models.Quiz
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, bobQuiz, remaining[0].ID)

	// Resetting an account with no quizzes is still a success
	require.NoError(t, s.ResetAccount(alice.ID))
}

func TestIncrementPlays(t *testing.T) {
	db := newTestDB(t)
	s := NewQuizService(db)
	alice := seedUser(t, db, "alice", "alice@x.com")

	quizID, err := s.SaveQuiz(&SaveQuizRequest{UserID: alice.ID, Title: "played"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.IncrementPlays(quizID))
	}

	var quiz models.Quiz
	require.NoError(t, db.First(&quiz, quizID).Error)
	assert.Equal(t, 3, quiz.PlaysCount)

	// Unknown quiz id is not an error
	require.NoError(t, s.IncrementPlays(99999))
}
