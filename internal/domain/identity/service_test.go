package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

type mockRepo struct {
	employees map[uuid.UUID]*Employee
}

func newMockRepo() *mockRepo {
	return &mockRepo{employees: make(map[uuid.UUID]*Employee)}
}

func (m *mockRepo) Create(_ context.Context, e *Employee) error {
	for _, existing := range m.employees {
		if strings.EqualFold(existing.Email, e.Email) {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	e.ID = uuid.New()
	cp := *e
	m.employees[e.ID] = &cp
	return nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Employee, error) {
	for _, e := range m.employees {
		if strings.EqualFold(e.Email, email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Employee, error) {
	var out []*Employee
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.employees, id)
	return nil
}

var testJWT = auth.JWTConfig{Secret: []byte("test-secret"), TokenTTL: time.Hour}

func newTestService(repo Repository) *Service {
	return NewService(repo, testJWT, zerolog.Nop())
}

func register(t *testing.T, svc *Service) *Employee {
	t.Helper()
	e, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Alice Smith",
		Email:    "alice@hospital.test",
		Password: "s3cret-pass",
		Role:     RoleReceptionist,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newMockRepo()
	e := register(t, newTestService(repo))

	stored := repo.employees[e.ID]
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatal("password must not be stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash must verify the original password: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newMockRepo())

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"empty name", RegisterRequest{Email: "a@b.c", Password: "longenough", Role: RoleAdmin}},
		{"bad email", RegisterRequest{Name: "A", Email: "not-an-email", Password: "longenough", Role: RoleAdmin}},
		{"short password", RegisterRequest{Name: "A", Email: "a@b.c", Password: "short", Role: RoleAdmin}},
		{"unknown role", RegisterRequest{Name: "A", Email: "a@b.c", Password: "longenough", Role: "janitor"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), &tc.req); !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMockRepo())
	register(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Another Alice",
		Email:    "ALICE@hospital.test",
		Password: "other-pass123",
		Role:     RoleDoctor,
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
}

func TestLogin_IssuesToken(t *testing.T) {
	svc := newTestService(newMockRepo())
	e := register(t, svc)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@hospital.test",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &auth.Claims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return testJWT.Secret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected a valid token, got %v", err)
	}
	if claims.Subject != e.ID.String() {
		t.Errorf("expected subject %s, got %s", e.ID, claims.Subject)
	}
	if claims.Role != RoleReceptionist {
		t.Errorf("expected role %s, got %s", RoleReceptionist, claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(newMockRepo())
	register(t, svc)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@hospital.test",
		Password: "wrong-pass-123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(newMockRepo())
	register(t, svc)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@hospital.test",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like a bad password, got %v", err)
	}
}
