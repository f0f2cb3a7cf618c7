package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/store"
)

// AuthService matches credentials against the user directory and issues the
// session marker (a signed token carrying the user id) that clients persist
// and present back to restore the session.
//
// Passwords are stored and compared as plain text. That mirrors the observed
// system and is a documented weakness, not an invitation.
type AuthService struct {
	Store  *store.Store
	Secret []byte

	TokenTTL time.Duration
	NewID    func() string
}

type SignupInput struct {
	Name       string      `json:"name" binding:"required"`
	Identifier string      `json:"identifier" binding:"required"`
	Password   string      `json:"password" binding:"required"`
	Role       models.Role `json:"role" binding:"required"`
}

func (s *AuthService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

// Login matches the identifier case-insensitively and the role and password
// exactly. The failure is deliberately generic so callers cannot probe which
// identifiers exist.
func (s *AuthService) Login(identifier, password string, role models.Role) (models.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return models.User{}, "", domain.AuthError{}
	}

	for _, u := range s.Store.Users() {
		if strings.EqualFold(u.Identifier, identifier) && u.Role == role && u.Password == password {
			token, err := s.IssueToken(u)
			if err != nil {
				return models.User{}, "", domain.InternalError{Msg: "failed to create session token", Err: err}
			}
			return u, token, nil
		}
	}
	return models.User{}, "", domain.AuthError{}
}

// Signup registers a new user and immediately establishes the session.
// Identifier uniqueness is case-insensitive; students get their identifier
// mirrored into StudentID.
func (s *AuthService) Signup(in SignupInput) (models.User, string, error) {
	identifier := strings.TrimSpace(in.Identifier)
	for _, u := range s.Store.Users() {
		if strings.EqualFold(u.Identifier, identifier) {
			return models.User{}, "", domain.ConflictError{Resource: "identifier", Msg: "already registered"}
		}
	}

	user := models.User{
		ID:         s.newID(),
		Name:       strings.TrimSpace(in.Name),
		Identifier: identifier,
		Password:   in.Password,
		Role:       in.Role,
	}
	if in.Role == models.RoleStudent {
		user.StudentID = identifier
	}

	if err := s.Store.AddUser(user); err != nil {
		return models.User{}, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.User{}, "", domain.InternalError{Msg: "failed to create session token", Err: err}
	}
	return user, token, nil
}

// Restore resolves the user behind a previously issued session marker.
func (s *AuthService) Restore(userID string) (models.User, bool) {
	return s.Store.FindUser(userID)
}

func (s *AuthService) IssueToken(u models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"exp":     time.Now().Add(s.ttl()).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}
