package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kyc-identity/internal/adapters/persistence/repositories"
	"kyc-identity/internal/core/domain"
	"kyc-identity/internal/pkg/password"
	"kyc-identity/internal/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, repositories.UserRepository) {
	t.Helper()

	codec, err := token.NewCodec("unit-test-signing-secret", "HS256", 30*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewCodec returned error: %v", err)
	}

	repo := repositories.NewMemoryUserRepository()
	svc := NewAuthService(repo, codec, password.NewHasher(bcrypt.MinCost))
	return svc, repo
}

func registerInput(email string) *RegisterInput {
	return &RegisterInput{
		Email:           email,
		Password:        "Sup3rSecret",
		ConfirmPassword: "Sup3rSecret",
		FirstName:       "Jane",
		LastName:        "Doe",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerInput("jane@example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.User.Email != "jane@example.com" {
		t.Errorf("email = %q, want jane@example.com", resp.User.Email)
	}
	if resp.User.Role != "user" {
		t.Errorf("role = %q, want user", resp.User.Role)
	}
	if !resp.User.IsActive || resp.User.IsVerified {
		t.Errorf("new user must be active and unverified, got active=%v verified=%v",
			resp.User.IsActive, resp.User.IsVerified)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("registration must return a full token pair")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	t.Run("password mismatch", func(t *testing.T) {
		input := registerInput("mismatch@example.com")
		input.ConfirmPassword = "Different1"
		if _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		for _, weak := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
			input := registerInput("weak@example.com")
			input.Password = weak
			input.ConfirmPassword = weak
			if _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("password %q: err = %v, want ErrValidation", weak, err)
			}
		}
	})
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("dup@example.com")); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Register(ctx, registerInput("dup@example.com")); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}

	// Same address in different case still collides.
	if _, err := svc.Register(ctx, registerInput("  DUP@Example.COM ")); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("case-variant email: err = %v, want ErrDuplicateEmail", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("login@example.com")); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Login(ctx, &LoginInput{Email: "Login@Example.com", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("login must return a full token pair")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("known@example.com")); err != nil {
		t.Fatal(err)
	}

	_, unknownErr := svc.Login(ctx, &LoginInput{Email: "unknown@example.com", Password: "Sup3rSecret"})
	_, wrongErr := svc.Login(ctx, &LoginInput{Email: "known@example.com", Password: "WrongPass1"})

	// Unknown email and wrong password must be indistinguishable.
	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerInput("inactive@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Deactivate(ctx, resp.User.ID); err != nil {
		t.Fatal(err)
	}

	// Correct credentials on a deactivated account surface the account
	// state, not a credential failure.
	if _, err := svc.Login(ctx, &LoginInput{Email: "inactive@example.com", Password: "Sup3rSecret"}); !errors.Is(err, domain.ErrAccountInactive) {
		t.Errorf("err = %v, want ErrAccountInactive", err)
	}

	// Wrong credentials on a deactivated account stay a credential failure.
	if _, err := svc.Login(ctx, &LoginInput{Email: "inactive@example.com", Password: "WrongPass1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("refresh@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Refresh(ctx, reg.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if resp.User.ID != reg.User.ID {
		t.Errorf("refreshed subject = %q, want %q", resp.User.ID, reg.User.ID)
	}
	if resp.AccessToken == reg.AccessToken || resp.RefreshToken == reg.RefreshToken {
		t.Error("refresh must rotate both tokens")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("classes@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Refresh(ctx, reg.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("access token accepted for refresh: err = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.Refresh(ctx, "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("garbage token: err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshInactiveUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("stale@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Deactivate(ctx, reg.User.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Refresh(ctx, reg.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("rotate@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	userID := reg.User.ID

	// Wrong current password is rejected and changes nothing.
	if err := svc.ChangePassword(ctx, userID, "WrongPass1", "NewSecret99"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong current: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &LoginInput{Email: "rotate@example.com", Password: "Sup3rSecret"}); err != nil {
		t.Errorf("old password must still work after a failed change: %v", err)
	}

	// Weak replacement is rejected.
	if err := svc.ChangePassword(ctx, userID, "Sup3rSecret", "weak"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("weak new password: err = %v, want ErrValidation", err)
	}

	// Unknown user.
	if err := svc.ChangePassword(ctx, "no-such-id", "Sup3rSecret", "NewSecret99"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}

	// Correct change takes effect immediately.
	if err := svc.ChangePassword(ctx, userID, "Sup3rSecret", "NewSecret99"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.Login(ctx, &LoginInput{Email: "rotate@example.com", Password: "Sup3rSecret"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &LoginInput{Email: "rotate@example.com", Password: "NewSecret99"}); err != nil {
		t.Errorf("new password must log in: %v", err)
	}
}

func TestActivateDeactivateIdempotent(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("toggle@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		u, err := svc.Deactivate(ctx, reg.User.ID)
		if err != nil {
			t.Fatalf("Deactivate #%d returned error: %v", i+1, err)
		}
		if u.IsActive {
			t.Errorf("Deactivate #%d left user active", i+1)
		}
	}

	for i := 0; i < 2; i++ {
		u, err := svc.Activate(ctx, reg.User.ID)
		if err != nil {
			t.Fatalf("Activate #%d returned error: %v", i+1, err)
		}
		if !u.IsActive {
			t.Errorf("Activate #%d left user inactive", i+1)
		}
	}

	if _, err := svc.Activate(ctx, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestValidateAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("bearer@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	user, err := svc.ValidateAccessToken(ctx, reg.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned error: %v", err)
	}
	if user.ID != reg.User.ID {
		t.Errorf("resolved user = %q, want %q", user.ID, reg.User.ID)
	}

	if _, err := svc.ValidateAccessToken(ctx, reg.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("refresh token accepted as access: err = %v, want ErrInvalidToken", err)
	}

	if _, err := svc.Deactivate(ctx, reg.User.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateAccessToken(ctx, reg.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("deactivated user token: err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("verify@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	u, err := svc.VerifyEmail(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("VerifyEmail returned error: %v", err)
	}
	if !u.IsVerified {
		t.Error("user not marked verified")
	}

	// Verification does not gate login.
	if _, err := svc.Login(ctx, &LoginInput{Email: "verify@example.com", Password: "Sup3rSecret"}); err != nil {
		t.Errorf("verified user login failed: %v", err)
	}
}
