package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/helpers"
	"github.com/clinichq/clinic-manager/pkg/mailer"
)

// AuthService handles registration, login, and token lifecycle.
type AuthService struct {
	Accounts        repository.AccountRepository
	JWT             *helpers.JWTManager
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESAccountsIndex string
	Pub             *helpers.RabbitPublisher
}

func NewAuthService(accounts repository.AccountRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, pub *helpers.RabbitPublisher) *AuthService {
	return &AuthService{
		Accounts:        accounts,
		JWT:             jwt,
		Redis:           rdb,
		Logger:          logger,
		ES:              es,
		ESAccountsIndex: esIndex,
		Pub:             pub,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(accountID string) string {
	return "account:session:" + accountID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a new account. Public registration never creates an
// Admin; the seed command provisions the first administrator.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role entity.Role) (*entity.Account, error) {
	if role == "" {
		role = entity.RolePatient
	}
	if !role.Assignable() {
		return nil, ErrInvalidRole
	}
	if existing, err := s.Accounts.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	a := &entity.Account{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Role:     role,
		Status:   entity.StatusActive,
	}
	if err := s.Accounts.Create(ctx, a); err != nil {
		return nil, err
	}

	_ = s.indexAccount(ctx, a)
	s.notify(ctx, &mailer.EmailJob{
		To:       a.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": a.Name, "Role": string(a.Role)},
	})

	return a.Stripped(), nil
}

// Authenticate validates email/password and account status without
// issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil || a == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if a.Disabled() {
		return nil, ErrAccountDisabled
	}
	if a.Status == entity.StatusSuspended {
		return nil, ErrAccountSuspended
	}
	return a, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, a *entity.Account) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"account_id": a.ID,
			"email":      a.Email,
			"name":       a.Name,
			"role":       string(a.Role),
			"sid":        sid,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(a.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

type LoginResponse struct {
	AccountID string      `json:"account_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      entity.Role `json:"role"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	a, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResponse{AccountID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}, pair, nil
}

// Refresh rotates the session and issues a new token pair. The account
// is re-resolved so revoked or disabled accounts cannot refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	a, err := s.Accounts.GetByID(ctx, claims.AccountID)
	if err != nil || a == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if a.Disabled() || a.Status == entity.StatusSuspended {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		key := sessionKey(a.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}

	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, a.ID, nil
}

// Logout drops the Redis session. Tokens already issued expire on their
// own; the gate's account re-resolution covers status revocation.
func (s *AuthService) Logout(ctx context.Context, accountID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(accountID)).Err()
}

func (s *AuthService) notify(ctx context.Context, job *mailer.EmailJob) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", job.Template).Warn("notification publish failed")
	}
}

func (s *AuthService) indexAccount(ctx context.Context, a *entity.Account) error {
	return indexAccountDoc(ctx, s.ES, s.ESAccountsIndex, s.Logger, a)
}

// SearchAccounts performs a multi_match search on email and name.
func (s *AuthService) SearchAccounts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESAccountsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errors.New("search failed: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
