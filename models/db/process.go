package dbmodels

import "recruitment-backend/models"

type Process struct {
	BaseModel
	Title       string `gorm:"type:varchar(255)"`
	Description string
	Manager     string               `gorm:"type:varchar(255);index"`
	SalaryRange string               `gorm:"type:varchar(255)"`
	Status      models.ProcessStatus `gorm:"type:varchar(50);index"`
	Stages      []Stage              `gorm:"foreignKey:ProcessID"`
}

type ProcessFilter struct {
	Status models.ProcessStatus
}
