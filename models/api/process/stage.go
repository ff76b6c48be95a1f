package processapimodels

import (
	"github.com/pkg/errors"
	dbmodels "recruitment-backend/models/db"
	"strings"
)

type StageData struct {
	Name        string `json:"name"`        // Название этапа
	Responsible string `json:"responsible"` // Ответственный (имя пользователя), может быть пустым
}

func (s StageData) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("не указано название этапа")
	}
	return nil
}

type StageOrderData struct {
	ID       string `json:"id"`        // Идентификатор этапа
	NewOrder int    `json:"new_order"` // Новый порядковый номер
}

func (s StageOrderData) Validate() error {
	if s.ID == "" {
		return errors.New("не указан идентификатор этапа")
	}
	if s.NewOrder <= 0 {
		return errors.New("порядковый номер этапа должен быть больше нуля")
	}
	return nil
}

type StageView struct {
	ID          string `json:"id"`
	ProcessID   string `json:"process_id"`
	Name        string `json:"name"`
	Responsible string `json:"responsible"`
	StageOrder  int    `json:"order"`
}

func StageConvert(rec dbmodels.Stage) StageView {
	return StageView{
		ID:          rec.ID,
		ProcessID:   rec.ProcessID,
		Name:        rec.Name,
		Responsible: rec.GetResponsible(),
		StageOrder:  rec.StageOrder,
	}
}
