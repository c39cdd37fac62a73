package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/qoloner/qoloner-api/internal/models"
	"github.com/qoloner/qoloner-api/internal/utils"
)

// MasterRepository is the master data access surface registration needs.
type MasterRepository interface {
	GetByTelegram(ctx context.Context, telegram string) (*models.Master, error)
	Create(ctx context.Context, master *models.Master) error
}

// TokenIssuer issues submission capability tokens for new masters.
type TokenIssuer interface {
	IssueSubmissionToken(masterID int) (string, error)
}

// RegistrationInput is the master registration form.
type RegistrationInput struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Telegram string `json:"telegram"`
	Phone    string `json:"phone"`
}

// RegistrationResult is the created master plus the submission token that
// authorizes the follow-up listing submission.
type RegistrationResult struct {
	Master          *models.Master `json:"master"`
	SubmissionToken string         `json:"submission_token"`
}

// MasterService runs the master registration workflow.
type MasterService struct {
	masters MasterRepository
	tokens  TokenIssuer
}

// NewMasterService constructs a MasterService.
func NewMasterService(masters MasterRepository, tokens TokenIssuer) *MasterService {
	return &MasterService{masters: masters, tokens: tokens}
}

// Register validates the form, probes telegram uniqueness, inserts the
// master, and issues the submission token. Validation failures never reach
// the store; a duplicate handle fails before the insert.
func (s *MasterService) Register(ctx context.Context, in *RegistrationInput) (*RegistrationResult, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	existing, err := s.masters.GetByTelegram(ctx, in.Telegram)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrDuplicateTelegram
	}

	master := &models.Master{
		Name:     strings.TrimSpace(in.Name),
		City:     in.City,
		Telegram: in.Telegram,
		Phone:    in.Phone,
	}
	if err := s.masters.Create(ctx, master); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueSubmissionToken(master.ID)
	if err != nil {
		return nil, err
	}

	log.Info().Int("master_id", master.ID).Str("city", master.City).Msg("master registered")
	return &RegistrationResult{Master: master, SubmissionToken: token}, nil
}

// validateRegistration checks the form in fixed order; the first failing
// field wins.
func validateRegistration(in *RegistrationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return utils.NewValidationError("name", "Введите ваше имя")
	}
	if !models.IsKnownCity(in.City) {
		return utils.NewValidationError("city", "Выберите город")
	}
	if !strings.HasPrefix(in.Telegram, "@") {
		return utils.NewValidationError("telegram", "Telegram должен начинаться с @")
	}
	if len(phoneDigits(in.Phone)) < 11 {
		return utils.NewValidationError("phone", "Введите корректный номер телефона")
	}
	return nil
}

// phoneDigits strips every non-digit rune from a phone number.
func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
