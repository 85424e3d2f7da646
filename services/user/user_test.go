package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"havenstay/database/repository"
	"havenstay/models"
	"havenstay/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeProfiles struct {
	byID      map[string]*models.Profile
	updateErr error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[string]*models.Profile{}}
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	for _, existing := range f.byID {
		if existing.Email == p.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}
func (f *fakeProfiles) GetByID(_ context.Context, id string) (*models.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (f *fakeProfiles) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.Profile, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeProfiles) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
func (f *fakeProfiles) UpdateSetDocument(_ context.Context, id string, doc bson.M) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("profile with id %s: %w", id, repository.ErrNotFound)
	}
	for k, v := range doc {
		switch k {
		case "tokenHash":
			p.TokenHash = v.(string)
		case "role":
			p.Role = v.(models.Role)
		case "fullName":
			p.FullName = v.(string)
		case "phoneNumber":
			p.PhoneNumber = v.(string)
		case "fcmToken":
			p.FCMToken = v.(string)
		}
	}
	return nil
}

func newService() (*DefaultUserService, *fakeProfiles) {
	repo := newFakeProfiles()
	return &DefaultUserService{Repo: repo, Logger: zap.NewNop()}, repo
}

func register(t *testing.T, s *DefaultUserService) *models.AuthResponse {
	t.Helper()
	res, err := s.Register(context.Background(), models.RegisterRequest{
		Email: " Ana@Example.com ", Password: "sunny2030", FullName: "Ana",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return res
}

func TestRegister(t *testing.T) {
	s, repo := newService()
	res := register(t, s)

	if res.Profile.Email != "ana@example.com" || res.Profile.Role != models.RoleGuest {
		t.Fatalf("unexpected profile %+v", res.Profile)
	}
	stored := repo.byID[res.Profile.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "sunny2030" {
		t.Fatal("password must be stored hashed")
	}
	if stored.TokenHash != utils.HashToken(res.Token) {
		t.Fatal("token hash not stored")
	}
	session, err := utils.ExtractSessionFromToken(res.Token)
	if err != nil || session.UserID != res.Profile.ID {
		t.Fatalf("token does not carry the profile: %+v, %v", session, err)
	}

	_, err = s.Register(context.Background(), models.RegisterRequest{Email: "ana@example.com", Password: "sunny2030", FullName: "Other"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRollsBackWhenTokenCannotBeStored(t *testing.T) {
	s, repo := newService()
	repo.updateErr = errors.New("write conflict")
	req := models.RegisterRequest{Email: "ana@example.com", Password: "sunny2030", FullName: "Ana"}

	if _, err := s.Register(context.Background(), req); err == nil {
		t.Fatal("expected registration to fail")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("half-registered profile left behind: %+v", repo.byID)
	}

	repo.updateErr = nil
	if _, err := s.Register(context.Background(), req); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	s, _ := newService()
	tests := []struct {
		name string
		req  models.RegisterRequest
		want error
	}{
		{"bad email", models.RegisterRequest{Email: "nope", Password: "sunny2030", FullName: "A"}, nil},
		{"short password", models.RegisterRequest{Email: "a@b.co", Password: "s1", FullName: "A"}, nil},
		{"no digit", models.RegisterRequest{Email: "a@b.co", Password: "sunnysunny", FullName: "A"}, ErrWeakPassword},
		{"no name", models.RegisterRequest{Email: "a@b.co", Password: "sunny2030", FullName: "  "}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var verr *models.ValidationError
			if tt.want == nil && !errors.As(err, &verr) {
				t.Fatalf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	s, repo := newService()
	reg := register(t, s)

	res, err := s.Login(context.Background(), models.LoginRequest{Email: "ANA@example.com", Password: "sunny2030"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if repo.byID[reg.Profile.ID].TokenHash != utils.HashToken(res.Token) {
		t.Fatal("login should rotate the stored token hash")
	}

	if _, err := s.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "wrong1234"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(context.Background(), models.LoginRequest{Email: "bob@example.com", Password: "sunny2030"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should look like a bad password, got %v", err)
	}
}

func TestUpdateProfileAndBecomeHost(t *testing.T) {
	s, _ := newService()
	reg := register(t, s)
	id := reg.Profile.ID

	name, phone := "Ana Maria", "+254700000000"
	p, err := s.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{FullName: &name, PhoneNumber: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.FullName != name || p.PhoneNumber != phone {
		t.Fatalf("unexpected profile %+v", p)
	}

	bad := "12345"
	if _, err := s.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{PhoneNumber: &bad}); err == nil {
		t.Fatal("expected validation error for phone number")
	}

	res, err := s.BecomeHost(context.Background(), id)
	if err != nil {
		t.Fatalf("BecomeHost: %v", err)
	}
	session, err := utils.ExtractSessionFromToken(res.Token)
	if err != nil || !session.IsHost() {
		t.Fatalf("new token should carry the host role: %+v, %v", session, err)
	}
	if _, err := s.BecomeHost(context.Background(), id); !errors.Is(err, ErrAlreadyHost) {
		t.Fatalf("expected ErrAlreadyHost, got %v", err)
	}
	if _, err := s.GetProfile(context.Background(), "missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
