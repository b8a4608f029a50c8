package models

// Question order within a quiz is insertion order; there is no
// explicit sequence column, so re-saving a quiz renumbers questions.
type Question struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	QuizID             uint   `json:"quiz_id" gorm:"not null;index"`
	Text               string `json:"question_text" gorm:"not null"`
	CorrectOptionIndex int    `json:"correct_option_index" gorm:"not null"`

	// Relationships
	Quiz    Quiz     `json:"quiz,omitempty"`
	Options []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
