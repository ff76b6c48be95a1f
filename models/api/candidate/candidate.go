package candidateapimodels

import (
	"github.com/pkg/errors"
	"net/mail"
	"recruitment-backend/models"
	apimodels "recruitment-backend/models/api"
	processapimodels "recruitment-backend/models/api/process"
	dbmodels "recruitment-backend/models/db"
	"strings"
	"time"
)

type CandidateCreate struct {
	Name      string `json:"name"`       // Имя кандидата
	Email     string `json:"email"`      // Почта
	Phone     string `json:"phone"`      // Телефон
	Location  string `json:"location"`   // Город
	Origin    string `json:"origin"`     // Источник кандидата
	ProcessID string `json:"process_id"` // Процесс подбора
	StageID   string `json:"stage_id"`   // Начальный этап
}

func (c CandidateCreate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("не указано имя кандидата")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("почта кандидата имеет неправильный формат")
	}
	if c.ProcessID == "" {
		return errors.New("не указан процесс подбора")
	}
	if c.StageID == "" {
		return errors.New("не указан начальный этап")
	}
	return nil
}

type MoveRequest struct {
	StageID string `json:"stage_id"` // Этап, на который переводится кандидат
}

func (m MoveRequest) Validate() error {
	if m.StageID == "" {
		return errors.New("не указан этап")
	}
	return nil
}

type RejectRequest struct {
	Reason string `json:"reason"` // Причина отказа
}

func (r RejectRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("не указана причина отказа")
	}
	return nil
}

type CandidateFilter struct {
	apimodels.Pagination
	ProcessID string                 `json:"process_id"` // Процесс
	StageID   string                 `json:"stage_id"`   // Этап
	Status    models.CandidateStatus `json:"status"`     // Статус
	Search    string                 `json:"search"`     // Поиск по имени, почте, телефону
}

func (f CandidateFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errors.New("неизвестный статус кандидата")
	}
	return nil
}

func (f CandidateFilter) ToDB() dbmodels.CandidateFilter {
	page, limit := f.GetPage()
	return dbmodels.CandidateFilter{
		ProcessID: f.ProcessID,
		StageID:   f.StageID,
		Status:    f.Status,
		Search:    f.Search,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
}

type CandidateView struct {
	ID               string                 `json:"id"`
	ProcessID        string                 `json:"process_id"`
	CurrentStageID   string                 `json:"current_stage_id"`
	CurrentStageName string                 `json:"current_stage_name,omitempty"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	Location         string                 `json:"location"`
	Origin           string                 `json:"origin"`
	DocumentID       string                 `json:"document_id,omitempty"`
	Status           models.CandidateStatus `json:"status"`
	Comments         int                    `json:"comments"`
	AppliedDate      string                 `json:"applied_date"`
	LastUpdated      time.Time              `json:"last_updated"`
}

func Convert(rec dbmodels.Candidate) CandidateView {
	result := CandidateView{
		ID:             rec.ID,
		ProcessID:      rec.ProcessID,
		CurrentStageID: rec.CurrentStageID,
		Name:           rec.Name,
		Email:          rec.Email,
		Phone:          rec.Phone,
		Location:       rec.Location,
		Origin:         rec.Origin,
		Status:         rec.Status,
		Comments:       rec.Comments,
		AppliedDate:    rec.AppliedDate.Format("2006-01-02"),
		LastUpdated:    rec.LastUpdated,
	}
	if rec.DocumentID != nil {
		result.DocumentID = *rec.DocumentID
	}
	if rec.CurrentStage != nil {
		result.CurrentStageName = rec.CurrentStage.Name
	}
	return result
}

type RelevanceReason string

const (
	RelevanceManager     RelevanceReason = "manager"
	RelevanceResponsible RelevanceReason = "responsible"
	RelevanceBoth        RelevanceReason = "both"
)

// NearMeView кандидат, по которому текущий пользователь менеджер процесса или ответственный этапа
type NearMeView struct {
	CandidateView
	ProcessTitle    string          `json:"process_title"`
	StageName       string          `json:"stage_name"`
	RelevanceReason RelevanceReason `json:"relevance_reason"`
}

// BoardColumn колонка доски процесса: этап и кандидаты на нем
type BoardColumn struct {
	Stage      processapimodels.StageView `json:"stage"`
	Candidates []CandidateView            `json:"candidates"`
}
