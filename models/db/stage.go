package dbmodels

import (
	"github.com/pkg/errors"
	"sort"
)

type Stage struct {
	BaseModel
	ProcessID   string  `gorm:"type:varchar(36);uniqueIndex:idx_process_stage_order"`
	Name        string  `gorm:"type:varchar(255)"`
	Responsible *string `gorm:"type:varchar(255);index"`
	StageOrder  int     `gorm:"uniqueIndex:idx_process_stage_order"`
}

func (s Stage) GetResponsible() string {
	if s.Responsible == nil {
		return ""
	}
	return *s.Responsible
}

// SortStages сортирует этапы по порядковому номеру
func SortStages(list []Stage) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].StageOrder < list[j].StageOrder
	})
}

// NextStage этап с порядковым номером order+1 в том же процессе
func NextStage(list []Stage, current Stage) *Stage {
	for _, rec := range list {
		if rec.ProcessID == current.ProcessID && rec.StageOrder == current.StageOrder+1 {
			next := rec
			return &next
		}
	}
	return nil
}

// ValidateStageOrders проверяет что номера этапов положительные и не повторяются
func ValidateStageOrders(list []Stage) error {
	if len(list) == 0 {
		return errors.New("у процесса должен быть хотя бы один этап")
	}
	used := make(map[int]bool, len(list))
	for _, rec := range list {
		if rec.StageOrder <= 0 {
			return errors.Errorf("некорректный порядковый номер этапа: %v", rec.StageOrder)
		}
		if used[rec.StageOrder] {
			return errors.Errorf("порядковый номер этапа повторяется: %v", rec.StageOrder)
		}
		used[rec.StageOrder] = true
	}
	return nil
}
