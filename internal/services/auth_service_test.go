package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"imperialvip/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdmins struct {
	users   map[string]models.AdminUser
	created int
}

func (f *fakeAdmins) GetByUsername(_ context.Context, username string) (models.AdminUser, error) {
	u, ok := f.users[username]
	if !ok {
		return models.AdminUser{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeAdmins) Count(context.Context) (int, error) { return len(f.users), nil }

func (f *fakeAdmins) Create(_ context.Context, username, hash string, _ time.Time) (int64, error) {
	if f.users == nil {
		f.users = map[string]models.AdminUser{}
	}
	f.created++
	u := models.AdminUser{ID: int64(len(f.users) + 1), Username: username, PasswordHash: hash}
	f.users[username] = u
	return u.ID, nil
}

func hashFor(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	admins := &fakeAdmins{users: map[string]models.AdminUser{
		"admin": {ID: 1, Username: "admin", PasswordHash: hashFor(t, "s3cret")},
	}}
	svc := AuthService{Admins: admins, Secret: []byte("test-secret")}

	token, u, err := svc.Login(context.Background(), " admin ", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != 1 || token == "" {
		t.Fatalf("unexpected login result %+v", u)
	}
	claims, err := svc.Verify(token)
	if err != nil || claims.AdminID != 1 || claims.Username != "admin" {
		t.Fatalf("Verify = %+v, %v", claims, err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	admins := &fakeAdmins{users: map[string]models.AdminUser{
		"admin": {ID: 1, Username: "admin", PasswordHash: hashFor(t, "s3cret")},
	}}
	svc := AuthService{Admins: admins, Secret: []byte("k")}

	for _, tc := range [][2]string{{"admin", "wrong"}, {"ghost", "s3cret"}, {"", ""}} {
		if _, _, err := svc.Login(context.Background(), tc[0], tc[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%v: expected invalid credentials, got %v", tc, err)
		}
	}
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	past := AuthService{Secret: []byte("k"), TTL: time.Hour, Now: clockAt(time.Now().Add(-2 * time.Hour))}
	old, err := past.Issue(models.AdminUser{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatal(err)
	}
	svc := AuthService{Secret: []byte("k")}
	if _, err := svc.Verify(old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}

	other, _ := AuthService{Secret: []byte("other")}.Issue(models.AdminUser{ID: 1})
	if _, err := svc.Verify(other); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another key accepted")
	}

	hs384, _ := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{"admin_id": 1}).SignedString([]byte("k"))
	if _, err := svc.Verify(hs384); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("non-HS256 token accepted")
	}
}

func TestSeedAdminOnlyWhenEmpty(t *testing.T) {
	admins := &fakeAdmins{}
	svc := AuthService{Admins: admins, Secret: []byte("k")}
	ctx := context.Background()

	if err := svc.SeedAdmin(ctx, "admin", ""); err != nil || admins.created != 0 {
		t.Fatalf("empty password must not seed: %v", err)
	}
	if err := svc.SeedAdmin(ctx, "admin", "first"); err != nil || admins.created != 1 {
		t.Fatalf("seed: %v created=%d", err, admins.created)
	}
	if err := svc.SeedAdmin(ctx, "admin2", "second"); err != nil || admins.created != 1 {
		t.Fatalf("a second seed must be a no-op")
	}
	if _, _, err := svc.Login(ctx, "admin", "first"); err != nil {
		t.Fatalf("seeded admin cannot log in: %v", err)
	}
}
