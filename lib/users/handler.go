package usershandler

import (
	"recruitment-backend/db"
	usersstore "recruitment-backend/lib/users/store"
	authutils "recruitment-backend/lib/utils/auth-utils"
	initchecker "recruitment-backend/lib/utils/init-checker"
	"recruitment-backend/models"
	authapimodels "recruitment-backend/models/api/auth"
	userapimodels "recruitment-backend/models/api/user"
	dbmodels "recruitment-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data userapimodels.UserCreate) (id string, hMsg string, err error)
	List() (list []userapimodels.UserView, err error)
	Login(email, password string) (response authapimodels.JWTResponse, hMsg string, err error)
	Me(userID string) (view userapimodels.UserView, hMsg string, err error)
	EnsureAdmin(email, password string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:    usersstore.NewInstance(db.DB),
		getToken: authutils.GetToken,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store    usersstore.Provider
	getToken func(userID, name string, role models.UserRole) (string, error)
}

func (i impl) Create(data userapimodels.UserCreate) (id string, hMsg string, err error) {
	if err = data.Validate(); err != nil {
		return "", err.Error(), nil
	}
	logger := log.WithField("email", data.Email)
	exist, err := i.store.ExistByEmail(data.Email)
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка проверки почты пользователя")
	}
	if exist {
		return "", "пользователь с такой почтой уже существует", nil
	}
	hash, err := authutils.HashPassword(data.Password)
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка генерации хэша пароля")
	}
	role := data.Role
	if role == "" {
		role = models.UserRoleRecruiter
	}
	id, err = i.store.Create(dbmodels.User{
		FullName: strings.TrimSpace(data.FullName),
		Email:    strings.TrimSpace(data.Email),
		Password: hash,
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка создания пользователя")
	}
	logger.WithField("user_id", id).Info("создан пользователь")
	return id, "", nil
}

func (i impl) List() (list []userapimodels.UserView, err error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка пользователей")
	}
	list = make([]userapimodels.UserView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, userapimodels.Convert(rec))
	}
	return list, nil
}

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, hMsg string, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.GetByEmail(email)
	if err != nil {
		return response, "", errors.Wrap(err, "ошибка поиска пользователя по почте")
	}
	if user == nil || !user.IsActive {
		logger.Debug("пользователь с такой почтой не найден")
		return response, "неверная почта или пароль", nil
	}
	if !authutils.CheckPassword(user.Password, password) {
		logger.Debug("пользователь не прошел проверку пароля")
		return response, "неверная почта или пароль", nil
	}
	token, err := i.getToken(user.ID, user.FullName, user.Role)
	if err != nil {
		return response, "", errors.Wrap(err, "ошибка генерации JWT")
	}
	err = i.store.UpdateLastLogin(user.ID)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return authapimodels.JWTResponse{
		Token:    token,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, "", nil
}

func (i impl) Me(userID string) (view userapimodels.UserView, hMsg string, err error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return view, "", errors.Wrap(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return view, "пользователь не найден", nil
	}
	return userapimodels.Convert(*rec), "", nil
}

// EnsureAdmin создает администратора из конфига, если пользователя с такой почтой еще нет
func (i impl) EnsureAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	exist, err := i.store.ExistByEmail(email)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки почты администратора")
	}
	if exist {
		return nil
	}
	_, hMsg, err := i.Create(userapimodels.UserCreate{
		FullName: "Administrador",
		Email:    email,
		Password: password,
		Role:     models.UserRoleAdmin,
	})
	if err != nil {
		return err
	}
	if hMsg != "" {
		return errors.New(hMsg)
	}
	return nil
}
