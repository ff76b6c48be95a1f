package userapimodels

import (
	"github.com/pkg/errors"
	"net/mail"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"
)

type UserCreate struct {
	FullName string          `json:"full_name"` // Имя и фамилия
	Email    string          `json:"email"`     // Почта, она же логин
	Password string          `json:"password"`  // Пароль
	Role     models.UserRole `json:"role"`      // Роль admin/recruiter
}

func (r UserCreate) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("не указано имя пользователя")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	if len(r.Password) < 6 {
		return errors.New("пароль должен содержать не менее 6 символов")
	}
	if r.Role != "" && !r.Role.IsValid() {
		return errors.New("неизвестная роль пользователя")
	}
	return nil
}

type UserView struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	RoleHuman string `json:"role_human"`
	IsAdmin   bool   `json:"is_admin"`
}

func Convert(rec dbmodels.User) UserView {
	return UserView{
		ID:        rec.ID,
		FullName:  rec.FullName,
		Email:     rec.Email,
		Role:      string(rec.Role),
		RoleHuman: rec.Role.ToHuman(),
		IsAdmin:   rec.Role.IsAdmin(),
	}
}
