package domain

import (
	"context"
	"time"
)

type NoteType string

const (
	NoteGeneral     NoteType = "general"
	NotePhoneScreen NoteType = "phone_screen"
	NoteInterview   NoteType = "interview"
	NoteReference   NoteType = "reference"
	NoteOther       NoteType = "other"
)

func (t NoteType) IsValid() bool {
	switch t {
	case NoteGeneral, NotePhoneScreen, NoteInterview, NoteReference, NoteOther:
		return true
	}
	return false
}

type NoteVisibility string

const (
	VisibilityPrivate NoteVisibility = "private"
	VisibilityTeam    NoteVisibility = "team"
)

// Note is a reviewer remark, never edited once written
type Note struct {
	ID            string         `json:"id"`
	ApplicationID string         `json:"applicationId"`
	AuthorID      string         `json:"authorId"`
	AuthorName    string         `json:"authorName"`
	NoteType      NoteType       `json:"noteType"`
	Content       string         `json:"content"`
	IsPinned      bool           `json:"isPinned"`
	Visibility    NoteVisibility `json:"visibility"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Rating is one reviewer score in one category, append-only
type Rating struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	Category      string    `json:"category"`
	Score         float64   `json:"score"`
	MaxScore      float64   `json:"maxScore"`
	ReviewerID    string    `json:"reviewerId"`
	ReviewerName  string    `json:"reviewerName"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RatingScale is the star scale application averages are expressed in
const RatingScale = 5.0

// AverageRating normalises every rating to RatingScale and averages them
func AverageRating(ratings []Rating) float64 {
	var sum float64
	var n int
	for _, r := range ratings {
		if r.MaxScore <= 0 {
			continue
		}
		sum += r.Score / r.MaxScore * RatingScale
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

type NoteInput struct {
	NoteType   NoteType
	Content    string
	IsPinned   bool
	Visibility NoteVisibility
}

type RatingInput struct {
	Category string
	Score    float64
	MaxScore float64
	Comment  string
}

type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	ListByApplication(ctx context.Context, applicationID string) ([]Note, error)
}

type RatingRepository interface {
	// Create stores the rating and recomputes the application's average in
	// the same transaction, returning the new average
	Create(ctx context.Context, rating *Rating) (float64, error)
	ListByApplication(ctx context.Context, applicationID string) ([]Rating, error)
}
