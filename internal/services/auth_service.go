package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/repositories"
	"imperialvip/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("kullanıcı adı veya şifre hatalı")
	ErrInvalidToken       = errors.New("geçersiz veya süresi dolmuş oturum")
)

type adminStore interface {
	GetByUsername(ctx context.Context, username string) (models.AdminUser, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, username, passwordHash string, at time.Time) (int64, error)
}

// AdminClaims is the payload of an admin bearer token.
type AdminClaims struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Admins adminStore
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the credentials and returns a signed HS256 token.
func (s AuthService) Login(ctx context.Context, username, password string) (string, models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", models.AdminUser{}, ErrInvalidCredentials
	}
	u, err := s.Admins.GetByUsername(ctx, username)
	if err != nil {
		terr := repositories.TranslateError("admin", err)
		if domain.IsNotFound(terr) {
			return "", models.AdminUser{}, ErrInvalidCredentials
		}
		return "", models.AdminUser{}, terr
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "auth", "login", "bad password for "+username, nil)
		return "", models.AdminUser{}, ErrInvalidCredentials
	}

	token, err := s.Issue(u)
	if err != nil {
		return "", models.AdminUser{}, domain.InternalError{Msg: "token oluşturulamadı", Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", fmt.Sprintf("admin_id=%d", u.ID))
	return token, u, nil
}

func (s AuthService) Issue(u models.AdminUser) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := s.now()
	claims := AdminClaims{
		AdminID:  u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify parses a bearer token. Only HS256 is accepted.
func (s AuthService) Verify(raw string) (AdminClaims, error) {
	var claims AdminClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return AdminClaims{}, ErrInvalidToken
	}
	return claims, nil
}

// SeedAdmin creates the first admin when the table is empty.
func (s AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	n, err := s.Admins.Count(ctx)
	if err != nil {
		return repositories.TranslateError("admin", err)
	}
	if n > 0 {
		return nil
	}
	if strings.TrimSpace(username) == "" || password == "" {
		utils.LogWarn("", "auth", "seed", "no admin users and ADMIN_PASSWORD is empty; admin API is unusable", nil)
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "şifre işlenemedi", Err: err}
	}
	id, err := s.Admins.Create(ctx, strings.TrimSpace(username), string(hash), s.now().UTC())
	if err != nil {
		return repositories.TranslateError("admin", err)
	}
	utils.LogEvent("", "auth", "seed", fmt.Sprintf("admin_id=%d username=%s", id, username))
	return nil
}
