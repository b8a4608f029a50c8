package services

import (
	"errors"
	"time"

	"quizhub/models"

	"gorm.io/gorm"
)

// StatsService serves the read-only listing and ranking queries. It never
// writes; results come straight from the store with no caching in between.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type PublicQuiz struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	ImageURL    *string   `json:"image_url"`
	PlaysCount  int       `json:"plays_count"`
	CreatedAt   time.Time `json:"created_at"`
	Author      string    `json:"author"`
	Questions   int64     `json:"questions"`
}

type UserQuiz struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IsPublic      bool      `json:"is_public"`
	ImageURL      *string   `json:"image_url"`
	PlaysCount    int       `json:"plays_count"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int64     `json:"question_count"`
}

type UserQuizzes struct {
	Quizzes    []UserQuiz `json:"quizzes"`
	TotalPlays int        `json:"total_plays"`
	Username   string     `json:"username"`
	AvatarURL  *string    `json:"avatar_url"`
}

type LeaderboardEntry struct {
	UserID             uint    `json:"user_id"`
	Username           string  `json:"username"`
	AvatarURL          *string `json:"avatar_url"`
	QuizzesCreated     int64   `json:"quizzes_created"`
	TotalPlaysReceived int64   `json:"total_plays_received"`
	TotalQuestions     int64   `json:"total_questions"`
}

// ListPublic returns every public quiz, newest first, annotated with the
// author's username and a per-quiz question count.
func (s *StatsService) ListPublic() ([]PublicQuiz, error) {
	var quizzes []PublicQuiz
	err := s.db.Raw(`
		SELECT q.id, q.user_id, q.title, q.description, q.is_public, q.image_url,
		       q.plays_count, q.created_at, u.username AS author,
		       (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS questions
		FROM quizzes q
		JOIN users u ON q.user_id = u.id
		WHERE q.is_public = ?
		ORDER BY q.created_at DESC`, true).
		Scan(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ListForUser returns all quizzes owned by the user regardless of visibility,
// newest first, plus the sum of their play counters and the owner's profile
// fields. A missing user row does not fail the call; the profile fields fall
// back to "Unknown" and a nil avatar.
func (s *StatsService) ListForUser(userID uint) (*UserQuizzes, error) {
	var quizzes []UserQuiz
	err := s.db.Raw(`
		SELECT q.id, q.user_id, q.title, q.description, q.is_public, q.image_url,
		       q.plays_count, q.created_at,
		       (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS question_count
		FROM quizzes q
		WHERE q.user_id = ?
		ORDER BY q.created_at DESC`, userID).
		Scan(&quizzes).Error
	if err != nil {
		return nil, err
	}

	totalPlays := 0
	for _, quiz := range quizzes {
		totalPlays += quiz.PlaysCount
	}

	result := &UserQuizzes{
		Quizzes:    quizzes,
		TotalPlays: totalPlays,
		Username:   "Unknown",
	}

	var user models.User
	if err := s.db.Select("username", "avatar_url").First(&user, userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		result.Username = user.Username
		result.AvatarURL = user.AvatarURL
	}

	return result, nil
}

// Leaderboard ranks every user by the total plays their quizzes have
// received. Users with no quizzes still get a row with zeroed aggregates.
// The user id tiebreak keeps the ordering stable between calls.
func (s *StatsService) Leaderboard() ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := s.db.Raw(`
		SELECT u.id AS user_id, u.username, u.avatar_url,
		       COUNT(DISTINCT q.id) AS quizzes_created,
		       COALESCE(SUM(q.plays_count), 0) AS total_plays_received,
		       (SELECT COUNT(*)
		        FROM questions qs
		        JOIN quizzes q2 ON qs.quiz_id = q2.id
		        WHERE q2.user_id = u.id) AS total_questions
		FROM users u
		LEFT JOIN quizzes q ON q.user_id = u.id
		GROUP BY u.id, u.username, u.avatar_url
		ORDER BY total_plays_received DESC, u.id`).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
