package authutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"recruitment-backend/config"
	"recruitment-backend/models"
	"time"
)

func GetToken(userID, name string, role models.UserRole) (tokenString string, err error) {
	return GetTokenWithSecret(config.Conf.Auth.JWTSecret, config.Conf.Auth.JWTExpireInSec, userID, name, role)
}

func GetTokenWithSecret(secret string, expireInSec int64, userID, name string, role models.UserRole) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(time.Second * time.Duration(expireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}
