package premium

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type stubUserRepo struct {
	user    *entity.User
	updated int
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error { return nil }

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, domainerror.ErrUserNotFound
	}
	return r.user, nil
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (r *stubUserRepo) Update(_ context.Context, user *entity.User) error {
	r.user = user
	r.updated++
	return nil
}

type stubCodeRepo struct {
	code       *entity.ActivationCode
	markedUsed int
}

func (r *stubCodeRepo) Create(context.Context, *entity.ActivationCode) error { return nil }

func (r *stubCodeRepo) FindByCode(_ context.Context, code string) (*entity.ActivationCode, error) {
	if r.code != nil && r.code.Code == code {
		return r.code, nil
	}
	return nil, nil
}

func (r *stubCodeRepo) MarkUsed(context.Context, string, string, time.Time) error {
	r.markedUsed++
	return nil
}

type stubGateway struct {
	status adapter.PaymentStatus
	err    error
	calls  int
}

func (g *stubGateway) CheckPaymentStatus(context.Context, string) (adapter.PaymentStatus, error) {
	g.calls++
	return g.status, g.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) AfterFunc(time.Duration, func()) adapter.Timer { return nil }

func newRedeemFixture(code *entity.ActivationCode, gateway *stubGateway, special []string) (*RedeemCodeUseCase, *stubUserRepo, *stubCodeRepo) {
	userRepo := &stubUserRepo{user: entity.NewUser("user@example.com", "User", "hash")}
	codeRepo := &stubCodeRepo{code: code}
	clock := fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	uc := NewRedeemCodeUseCase(userRepo, codeRepo, gateway, nil, clock, special)
	return uc, userRepo, codeRepo
}

func TestRedeemCode(t *testing.T) {
	t.Run("rejects short codes", func(t *testing.T) {
		uc, userRepo, _ := newRedeemFixture(nil, &stubGateway{}, nil)

		_, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "abc"})
		var premiumErr *domainerror.PremiumError
		if !errors.As(err, &premiumErr) || premiumErr.Code != domainerror.ErrCodeActivationCodeTooShort {
			t.Fatalf("expected too-short error, got %v", err)
		}
	})

	t.Run("special code activates", func(t *testing.T) {
		gateway := &stubGateway{}
		uc, userRepo, _ := newRedeemFixture(nil, gateway, []string{"PROMO2025"})

		out, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "promo2025"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsPremium || out.ActivationMethod != entity.ActivationMethodManualCode {
			t.Errorf("unexpected output: %+v", out)
		}
		if !userRepo.user.IsPremium {
			t.Error("expected user to be premium")
		}
		if userRepo.user.PaymentID != "special_PROMO2025" {
			t.Errorf("unexpected payment id %q", userRepo.user.PaymentID)
		}
		if gateway.calls != 0 {
			t.Error("special codes must not reach the payment gateway")
		}
	})

	t.Run("registered code activates and is marked used", func(t *testing.T) {
		code := entity.NewActivationCode("WELCOME-123", "admin@example.com", nil)
		uc, userRepo, codeRepo := newRedeemFixture(code, &stubGateway{}, nil)

		out, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "WELCOME-123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsPremium || out.ActivationMethod != entity.ActivationMethodManualCode {
			t.Errorf("unexpected output: %+v", out)
		}
		if codeRepo.markedUsed != 1 {
			t.Errorf("expected one MarkUsed call, got %d", codeRepo.markedUsed)
		}
	})

	t.Run("deactivated code", func(t *testing.T) {
		code := entity.NewActivationCode("WELCOME-123", "admin@example.com", nil)
		code.Active = false
		uc, userRepo, _ := newRedeemFixture(code, &stubGateway{}, nil)

		_, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "WELCOME-123"})
		var premiumErr *domainerror.PremiumError
		if !errors.As(err, &premiumErr) || premiumErr.Code != domainerror.ErrCodeActivationCodeInactive {
			t.Fatalf("expected inactive error, got %v", err)
		}
		if userRepo.user.IsPremium {
			t.Error("expected user to stay free")
		}
	})

	t.Run("exhausted code", func(t *testing.T) {
		code := entity.NewActivationCode("WELCOME-123", "admin@example.com", nil)
		code.MaxUses = 2
		code.CurrentUses = 2
		uc, userRepo, _ := newRedeemFixture(code, &stubGateway{}, nil)

		_, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "WELCOME-123"})
		var premiumErr *domainerror.PremiumError
		if !errors.As(err, &premiumErr) || premiumErr.Code != domainerror.ErrCodeActivationCodeUsed {
			t.Fatalf("expected used error, got %v", err)
		}
	})

	t.Run("expired code", func(t *testing.T) {
		expiry := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		code := entity.NewActivationCode("WELCOME-123", "admin@example.com", &expiry)
		uc, userRepo, _ := newRedeemFixture(code, &stubGateway{}, nil)

		_, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "WELCOME-123"})
		var premiumErr *domainerror.PremiumError
		if !errors.As(err, &premiumErr) || premiumErr.Code != domainerror.ErrCodeActivationCodeExpired {
			t.Fatalf("expected expired error, got %v", err)
		}
	})

	t.Run("approved payment id activates", func(t *testing.T) {
		gateway := &stubGateway{status: adapter.PaymentStatusApproved}
		uc, userRepo, _ := newRedeemFixture(nil, gateway, nil)

		out, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "123456789"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ActivationMethod != entity.ActivationMethodPayment {
			t.Errorf("expected payment activation, got %s", out.ActivationMethod)
		}
		if userRepo.user.PaymentID != "123456789" {
			t.Errorf("unexpected payment id %q", userRepo.user.PaymentID)
		}
	})

	t.Run("pending payment does not activate", func(t *testing.T) {
		gateway := &stubGateway{status: adapter.PaymentStatusPending}
		uc, userRepo, _ := newRedeemFixture(nil, gateway, nil)

		_, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "123456789"})
		var premiumErr *domainerror.PremiumError
		if !errors.As(err, &premiumErr) || premiumErr.Code != domainerror.ErrCodePaymentPending {
			t.Fatalf("expected pending error, got %v", err)
		}
		if userRepo.user.IsPremium {
			t.Error("expected user to stay free")
		}
	})

	t.Run("gateway failure never grants premium", func(t *testing.T) {
		gateway := &stubGateway{err: errors.New("provider down")}
		uc, userRepo, _ := newRedeemFixture(nil, gateway, nil)

		_, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "123456789"})
		var premiumErr *domainerror.PremiumError
		if !errors.As(err, &premiumErr) || premiumErr.Code != domainerror.ErrCodePaymentVerification {
			t.Fatalf("expected verification error, got %v", err)
		}
		if userRepo.user.IsPremium {
			t.Error("expected user to stay free on verification failure")
		}
	})

	t.Run("already premium is a no-op", func(t *testing.T) {
		gateway := &stubGateway{}
		uc, userRepo, _ := newRedeemFixture(nil, gateway, nil)
		userRepo.user.ActivatePremium(entity.ActivationMethodPayment, "", "pay_1", time.Now())
		updatesBefore := userRepo.updated

		out, err := uc.Execute(context.Background(), RedeemCodeInput{UserID: userRepo.user.ID, Code: "123456789"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.IsPremium {
			t.Error("expected premium status to be reported")
		}
		if userRepo.updated != updatesBefore {
			t.Error("expected no user update for an already-premium account")
		}
		if gateway.calls != 0 {
			t.Error("expected no gateway call for an already-premium account")
		}
	})
}

func TestGenerateCode(t *testing.T) {
	clock := fixedClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}

	t.Run("generates with prefix and expiry", func(t *testing.T) {
		codeRepo := &stubCodeRepo{}
		uc := NewGenerateCodeUseCase(codeRepo, clock)

		out, err := uc.Execute(context.Background(), GenerateCodeInput{
			Prefix:        "LAUNCH",
			ExpiresInDays: 30,
			CreatedBy:     "admin@example.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Code) != len("LAUNCH-")+generatedCodeLength {
			t.Errorf("unexpected code length: %q", out.Code)
		}
		if out.Code[:7] != "LAUNCH-" {
			t.Errorf("expected prefix, got %q", out.Code)
		}
		if out.ExpiresAt == nil {
			t.Fatal("expected an expiry")
		}
		want := clock.now.AddDate(0, 0, 30)
		if !out.ExpiresAt.Equal(want) {
			t.Errorf("expected expiry %v, got %v", want, out.ExpiresAt)
		}
	})

	t.Run("no expiry by default", func(t *testing.T) {
		codeRepo := &stubCodeRepo{}
		uc := NewGenerateCodeUseCase(codeRepo, clock)

		out, err := uc.Execute(context.Background(), GenerateCodeInput{CreatedBy: "admin@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ExpiresAt != nil {
			t.Errorf("expected no expiry, got %v", out.ExpiresAt)
		}
		if len(out.Code) != generatedCodeLength {
			t.Errorf("unexpected code length: %q", out.Code)
		}
	})
}
