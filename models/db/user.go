package dbmodels

import (
	"recruitment-backend/models"
	"time"
)

type User struct {
	BaseModel
	FullName  string          `gorm:"type:varchar(255);index"`
	Email     string          `gorm:"type:varchar(255);uniqueIndex"`
	Password  string          `gorm:"type:varchar(128)"`
	Role      models.UserRole `gorm:"type:varchar(50)"`
	IsActive  bool
	LastLogin time.Time
}
