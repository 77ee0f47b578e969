package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/domain/entity"
	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/internal/metrics"
	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
	mailtpl "github.com/oksasatya/rentify/pkg/mailer/templates"
)

const phoneNumberLength = 10

// Messages returned to clients; kept stable for existing frontends.
const (
	msgUserExists         = "User already exists!"
	msgUserMissing        = "User doesn't exist!"
	msgInvalidCredentials = "Invalid Credentials!"
	msgNoFile             = "No file uploaded"
	msgPhoneLength        = "Phone number must be exactly 10 characters"
)

type AuthService struct {
	Users   repo.UserRepository
	Files   repo.FileStore
	JWT     *helpers.JWTManager
	Revoked repo.RevocationList
	Audit   repo.AuditLog
	Notify  repo.Notifier
	Logger  *logrus.Logger

	now func() time.Time
}

func NewAuthService(users repo.UserRepository, files repo.FileStore, jwt *helpers.JWTManager, revoked repo.RevocationList, audit repo.AuditLog, notifier repo.Notifier, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:   users,
		Files:   files,
		JWT:     jwt,
		Revoked: revoked,
		Audit:   audit,
		Notify:  notifier,
		Logger:  loggerOrNop(logger),
		now:     time.Now,
	}
}

type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	PhoneNumber  string
	ProfileImage *Upload
}

// NormalizeEmail trims and lower-cases an address before lookup or insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input, stores the profile image and inserts the user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, client ClientInfo) (*entity.User, error) {
	if utf8.RuneCountInString(in.PhoneNumber) != phoneNumberLength {
		return nil, apperror.Validation(msgPhoneLength)
	}
	if in.ProfileImage == nil || in.ProfileImage.Reader == nil {
		return nil, apperror.Validation(msgNoFile)
	}
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict(msgUserExists)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Internal("Registration failed!", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("Registration failed!", err)
	}

	name := helpers.UploadName(s.now(), in.ProfileImage.Filename)
	stored, err := s.Files.Save(ctx, name, in.ProfileImage.ContentType, in.ProfileImage.Reader)
	if err != nil {
		return nil, apperror.Internal("Registration failed!", err)
	}

	u := &entity.User{
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            email,
		Password:         hash,
		PhoneNumber:      in.PhoneNumber,
		ProfileImagePath: stored.Path,
		WishList:         []string{},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		s.discardFile(ctx, stored)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(msgUserExists)
		}
		return nil, apperror.Internal("Registration failed!", err)
	}

	metrics.IncRegistration()
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	s.audit(ctx, u.ID, u.Email, "register", client, nil)
	notify(ctx, s.Notify, s.Logger, u.Email, mailtpl.Welcome, mailtpl.ToMap(mailtpl.EmailData{
		Name:  u.FirstName,
		Email: u.Email,
	}))
	return u, nil
}

func (s *AuthService) discardFile(ctx context.Context, f repo.StoredFile) {
	c, cancel := detached(ctx)
	defer cancel()
	if err := s.Files.Delete(c, f.Name); err != nil {
		s.Logger.WithError(err).WithField("file", f.Name).Warn("remove orphan upload failed")
		return
	}
	s.Logger.WithField("file", f.Name).Warn("removed upload after failed user insert")
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string, client ClientInfo) (*LoginResult, error) {
	email = NormalizeEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		metrics.IncLogin("unknown_user")
		s.audit(ctx, "", email, "login_failed", client, map[string]any{"reason": "unknown_user"})
		return nil, apperror.NotFound(msgUserMissing)
	}
	if err != nil {
		return nil, apperror.Internal("Login failed!", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		metrics.IncLogin("bad_password")
		s.audit(ctx, u.ID, u.Email, "login_failed", client, map[string]any{"reason": "bad_password"})
		return nil, apperror.Authentication(msgInvalidCredentials)
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, apperror.Internal("Login failed!", err)
	}

	metrics.IncLogin("success")
	s.audit(ctx, u.ID, u.Email, "login_success", client, nil)
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Authenticate verifies a session token and that it has not been revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*helpers.Claims, error) {
	if token == "" {
		return nil, apperror.Authentication("missing access token")
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, apperror.Authentication("invalid access token")
	}
	if s.Revoked != nil && claims.SessionID() != "" {
		revoked, err := s.Revoked.IsRevoked(ctx, claims.SessionID())
		if err != nil {
			return nil, apperror.Internal("session lookup failed", err)
		}
		if revoked {
			return nil, apperror.Authentication("session has been revoked")
		}
	}
	return claims, nil
}

// Logout revokes the token id until the token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *helpers.Claims, client ClientInfo) error {
	if claims == nil {
		return apperror.Authentication("missing access token")
	}
	if s.Revoked != nil && claims.SessionID() != "" {
		if err := s.Revoked.Revoke(ctx, claims.SessionID(), claims.Expiry()); err != nil {
			return apperror.Internal("logout failed", err)
		}
	}
	s.audit(ctx, claims.UserID, "", "logout", client, nil)
	return nil
}

func (s *AuthService) audit(ctx context.Context, userID, email, action string, client ClientInfo, md map[string]any) {
	if s.Audit == nil {
		return
	}
	c, cancel := detached(ctx)
	defer cancel()
	err := s.Audit.Record(c, repo.AuditEvent{
		UserID:    userID,
		Email:     email,
		Action:    action,
		IP:        client.IP,
		UserAgent: client.UserAgent,
		Metadata:  md,
	})
	if err != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}
