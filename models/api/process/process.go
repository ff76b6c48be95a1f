package processapimodels

import (
	"github.com/pkg/errors"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"
	"time"
)

type ProcessData struct {
	Title       string               `json:"title"`        // Название вакансии
	Description string               `json:"description"`  // Описание
	Manager     string               `json:"manager"`      // Менеджер процесса (имя пользователя)
	SalaryRange string               `json:"salary_range"` // Вилка зарплаты
	Status      models.ProcessStatus `json:"status"`       // Статус Activo/Pausado/Cerrado
	Stages      []StageData          `json:"stages"`       // Этапы, при создании; если пусто - берется шаблон
}

func (p ProcessData) Validate(isUpdate bool) error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("не указано название процесса")
	}
	if p.Status != "" && !p.Status.IsValid() {
		return errors.New("неизвестный статус процесса")
	}
	if isUpdate {
		return nil
	}
	for _, stage := range p.Stages {
		if err := stage.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ProcessStatusData struct {
	Status models.ProcessStatus `json:"status"` // Новый статус
}

func (p ProcessStatusData) Validate() error {
	if !p.Status.IsValid() {
		return errors.New("неизвестный статус процесса")
	}
	return nil
}

type ProcessFilter struct {
	Status models.ProcessStatus `json:"status"` // Фильтр по статусу, пусто - все
}

type ProcessView struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Manager         string               `json:"manager"`
	SalaryRange     string               `json:"salary_range"`
	Status          models.ProcessStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	Stages          []StageView          `json:"stages,omitempty"`
	CandidatesTotal int                  `json:"candidates_total"` // Кол-во кандидатов в процессе
}

func Convert(rec dbmodels.Process) ProcessView {
	result := ProcessView{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Manager:     rec.Manager,
		SalaryRange: rec.SalaryRange,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt,
	}
	if len(rec.Stages) != 0 {
		stages := make([]dbmodels.Stage, len(rec.Stages))
		copy(stages, rec.Stages)
		dbmodels.SortStages(stages)
		result.Stages = make([]StageView, 0, len(stages))
		for _, stage := range stages {
			result.Stages = append(result.Stages, StageConvert(stage))
		}
	}
	return result
}
