package services

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rach2103/moviereview/internal/models"
)

// ErrUnknownIdentity is returned by Login when the email does not match any
// roster member.
var ErrUnknownIdentity = errors.New("no account matches that email")

// SessionService issues opaque tokens against the roster and persists the
// identity snapshot per token. Mock authentication: any roster email logs
// in, no credential is checked. The snapshot is taken at login and is not
// refreshed when the roster record changes afterwards.
type SessionService struct {
	db     *gorm.DB
	social *SocialService
}

// NewSessionService creates a session service backed by the given database.
func NewSessionService(db *gorm.DB, social *SocialService) *SessionService {
	return &SessionService{db: db, social: social}
}

// Login resolves the email against the roster, mints a token, and stores
// the identity snapshot under it.
func (s *SessionService) Login(email string) (string, models.User, error) {
	user, ok := s.social.UserByEmail(email)
	if !ok {
		return "", models.User{}, ErrUnknownIdentity
	}

	identity, err := json.Marshal(user)
	if err != nil {
		return "", models.User{}, err
	}

	token := uuid.NewString()
	record := models.SessionRecord{
		Token:    token,
		Identity: models.JSON{JSON: datatypes.JSON(identity)},
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Logout deletes the session record. Unknown tokens are a no-op.
func (s *SessionService) Logout(token string) {
	if token == "" {
		return
	}
	if err := s.db.Delete(&models.SessionRecord{}, "token = ?", token).Error; err != nil {
		log.Printf("Failed to delete session: %v", err)
	}
}

// Resolve returns the identity snapshot stored under the token. Missing
// tokens and snapshots that no longer decode both read as unauthenticated.
func (s *SessionService) Resolve(token string) (models.User, bool) {
	if token == "" {
		return models.User{}, false
	}

	var record models.SessionRecord
	if err := s.db.First(&record, "token = ?", token).Error; err != nil {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(record.Identity.JSON, &user); err != nil {
		log.Printf("Failed to decode session identity: %v", err)
		return models.User{}, false
	}
	return user, true
}
