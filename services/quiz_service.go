package services

import (
	"errors"

	"quizhub/models"

	"gorm.io/gorm"
)

var ErrQuizNotFound = errors.New("quiz not found")

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type SaveQuizRequest struct {
	UserID      uint                  `json:"user_id" binding:"required"`
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	IsPublic    bool                  `json:"is_public"`
	ImageURL    *string               `json:"image_url"`
	Questions   []SaveQuestionRequest `json:"questions"`
	QuizID      uint                  `json:"quiz_id"`
}

type SaveQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	CorrectAnswer int      `json:"correctAnswer"`
	Options       []string `json:"options"`
}

type QuizDetail struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type QuestionDetail struct {
	ID                 uint     `json:"id"`
	Text               string   `json:"question_text"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Options            []string `json:"options"`
}

// SaveQuiz creates a new quiz or fully replaces an existing one. Updates do
// not diff children: every question row for the quiz is deleted (options
// cascade) and the submitted set is reinserted, so question and option ids
// are not stable across saves. The whole sequence runs in one transaction.
//
// The update of the quiz row itself is scoped by (id AND user_id) and is a
// silent no-op when the requester does not own the quiz, while the question
// replace below is scoped by quiz id only. That asymmetry matches the
// historical behavior this service replaces; see DESIGN.md before changing it.
func (s *QuizService) SaveQuiz(req *SaveQuizRequest) (uint, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quizID := req.QuizID
	if quizID != 0 {
		updates := map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
			"is_public":   req.IsPublic,
			"image_url":   req.ImageURL,
		}
		if err := tx.Model(&models.Quiz{}).
			Where("id = ? AND user_id = ?", quizID, req.UserID).
			Updates(updates).Error; err != nil {
			tx.Rollback()
			return 0, err
		}

		// Drop the old question set; options go with them via ON DELETE CASCADE
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	} else {
		quiz := models.Quiz{
			UserID:      req.UserID,
			Title:       req.Title,
			Description: req.Description,
			IsPublic:    req.IsPublic,
			ImageURL:    req.ImageURL,
		}

		if err := tx.Create(&quiz).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
		quizID = quiz.ID
	}

	// Insert questions and options in the order the caller supplied them
	for _, qReq := range req.Questions {
		question := models.Question{
			QuizID:             quizID,
			Text:               qReq.Text,
			CorrectOptionIndex: qReq.CorrectAnswer,
		}

		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return 0, err
		}

		for _, optText := range qReq.Options {
			option := models.Option{
				QuestionID: question.ID,
				Text:       optText,
			}

			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return 0, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return quizID, nil
}

// GetDetails loads a quiz with its full question/option structure, including
// each question's correct option index. There is no ownership check; any
// caller that knows a quiz id can read its answers.
func (s *QuizService) GetDetails(quizID uint) (*QuizDetail, []QuestionDetail, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuizNotFound
		}
		return nil, nil, err
	}

	var questions []models.Question
	err := s.db.Where("quiz_id = ?", quizID).
		Order("id").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id")
		}).
		Find(&questions).Error
	if err != nil {
		return nil, nil, err
	}

	details := make([]QuestionDetail, 0, len(questions))
	for _, q := range questions {
		texts := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			texts = append(texts, opt.Text)
		}
		details = append(details, QuestionDetail{
			ID:                 q.ID,
			Text:               q.Text,
			CorrectOptionIndex: q.CorrectOptionIndex,
			Options:            texts,
		})
	}

	return &QuizDetail{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		ImageURL:    quiz.ImageURL,
	}, details, nil
}

// Delete removes a quiz and, through cascading deletes, all of its questions
// and options. It returns false when no row matched, which covers both an
// unknown quiz id and a quiz owned by someone else; callers cannot tell the
// two apart.
func (s *QuizService) Delete(quizID, userID uint) (bool, error) {
	result := s.db.Where("id = ? AND user_id = ?", quizID, userID).Delete(&models.Quiz{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ResetAccount deletes every quiz the user owns. Deleting zero quizzes is
// still a success.
func (s *QuizService) ResetAccount(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.Quiz{}).Error
}

// IncrementPlays bumps the play counter by one. An unknown quiz id is not
// reported back to the caller.
func (s *QuizService) IncrementPlays(quizID uint) error {
	return s.db.Model(&models.Quiz{}).
		Where("id = ?", quizID).
		UpdateColumn("plays_count", gorm.Expr("plays_count + ?", 1)).Error
}
