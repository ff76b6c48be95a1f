package notificationapimodels

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"time"
)

type NotificationView struct {
	ID            string                    `json:"id"`
	CandidateID   string                    `json:"candidate_id"`
	CandidateName string                    `json:"candidate_name"`
	StageID       string                    `json:"stage_id"`
	StageName     string                    `json:"stage_name"`
	ProcessTitle  string                    `json:"process_title"`
	MovedBy       string                    `json:"moved_by"`
	Status        models.NotificationStatus `json:"status"`
	CreatedAt     time.Time                 `json:"created_at"`
	ReadAt        *time.Time                `json:"read_at,omitempty"`
	Message       string                    `json:"message"`
}

func (n NotificationView) IsUnread() bool {
	return n.Status == models.NotificationUnread
}

func Convert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:            rec.ID,
		CandidateID:   rec.CandidateID,
		CandidateName: rec.CandidateName,
		StageID:       rec.StageID,
		StageName:     rec.StageName,
		ProcessTitle:  rec.ProcessTitle,
		MovedBy:       rec.MovedBy,
		Status:        rec.Status,
		CreatedAt:     rec.CreatedAt,
		ReadAt:        rec.ReadAt,
		Message:       rec.Message(),
	}
}

// OutboxView состояние доставки уведомления, для администратора
type OutboxView struct {
	ID             string                `json:"id"`
	RecipientName  string                `json:"recipient_name"`
	RecipientEmail string                `json:"recipient_email"`
	CandidateName  string                `json:"candidate_name"`
	StageName      string                `json:"stage_name"`
	DeliveryStatus models.DeliveryStatus `json:"delivery_status"`
	Attempts       int                   `json:"attempts"`
	LastError      string                `json:"last_error"`
	EmailID        string                `json:"email_id"`
	CreatedAt      time.Time             `json:"created_at"`
}

func OutboxConvert(rec dbmodels.Notification) OutboxView {
	return OutboxView{
		ID:             rec.ID,
		RecipientName:  rec.RecipientName,
		RecipientEmail: rec.RecipientEmail,
		CandidateName:  rec.CandidateName,
		StageName:      rec.StageName,
		DeliveryStatus: rec.DeliveryStatus,
		Attempts:       rec.Attempts,
		LastError:      rec.LastError,
		EmailID:        rec.EmailID,
		CreatedAt:      rec.CreatedAt,
	}
}

type UnreadCount struct {
	Count int64 `json:"count"`
}
