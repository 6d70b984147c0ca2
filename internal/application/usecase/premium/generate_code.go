package premium

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Unambiguous alphabet: no 0/O or 1/I, codes get read aloud and retyped.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const generatedCodeLength = 8

// GenerateCodeInput represents the input for minting an activation code.
type GenerateCodeInput struct {
	CreatedBy     string
	Prefix        string
	ExpiresInDays int
}

// GenerateCodeOutput represents the output of minting a code.
type GenerateCodeOutput struct {
	Code      string
	ExpiresAt *time.Time
}

// GenerateCodeUseCase mints single-use activation codes for manual premium
// grants. Admin-only; the entrypoint enforces the key.
type GenerateCodeUseCase struct {
	codeRepo adapter.ActivationCodeRepository
	clock    adapter.Clock
}

// NewGenerateCodeUseCase creates a new GenerateCodeUseCase instance.
func NewGenerateCodeUseCase(codeRepo adapter.ActivationCodeRepository, clock adapter.Clock) *GenerateCodeUseCase {
	return &GenerateCodeUseCase{codeRepo: codeRepo, clock: clock}
}

// Execute mints and stores a new code.
func (uc *GenerateCodeUseCase) Execute(ctx context.Context, input GenerateCodeInput) (*GenerateCodeOutput, error) {
	random, err := randomCode(generatedCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate activation code: %w", err)
	}
	code := random
	if input.Prefix != "" {
		code = input.Prefix + "-" + random
	}

	var expiresAt *time.Time
	if input.ExpiresInDays > 0 {
		t := uc.clock.Now().AddDate(0, 0, input.ExpiresInDays)
		expiresAt = &t
	}

	record := entity.NewActivationCode(code, input.CreatedBy, expiresAt)
	if err := uc.codeRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &GenerateCodeOutput{Code: code, ExpiresAt: expiresAt}, nil
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
