package timelineapimodels

import (
	"github.com/pkg/errors"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"
	"time"
)

type CommentRequest struct {
	Text string `json:"text"` // Текст комментария
}

func (c CommentRequest) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return errors.New("комментарий не может быть пустым")
	}
	return nil
}

type TimelineView struct {
	ID          string                   `json:"id"`
	CandidateID string                   `json:"candidate_id"`
	Type        models.TimelineEventType `json:"type"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Author      string                   `json:"author"`
	Date        time.Time                `json:"date"`
	Icon        string                   `json:"icon"`
}

func Convert(rec dbmodels.TimelineEvent) TimelineView {
	return TimelineView{
		ID:          rec.ID,
		CandidateID: rec.CandidateID,
		Type:        rec.Type,
		Title:       rec.Title,
		Description: rec.Description,
		Author:      rec.Author,
		Date:        rec.Date,
		Icon:        rec.Type.Icon(),
	}
}
