package orchestrators

import (
	"context"
	"testing"

	"physionomie/internal/domain/auth"
	"physionomie/internal/domain/therapist"
)

func loginDeps(sessions *mockSessions) LoginDeps {
	return LoginDeps{
		Roster: &mockRoster{
			written: true,
			therapists: []therapist.Therapist{
				{ID: "1", Name: "Anna Müller", Email: "anna.mueller@praxis.de", Password: therapist.DefaultPassword, BonusTarget: 3000},
			},
		},
		Sessions:      sessions,
		Verifier:      auth.PlainVerifier{},
		AdminEmail:    "admin@praxis.de",
		AdminPassword: "admin123",
	}
}

func TestExecuteLogin_Admin(t *testing.T) {
	sessions := &mockSessions{}
	sess, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@praxis.de",
		Password: "admin123",
	}, loginDeps(sessions))
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if sess.Role != auth.RoleAdmin || sess.UserID != auth.AdminUserID {
		t.Errorf("session = %+v, want admin role", sess)
	}
	if sessions.saved != nil {
		t.Error("session persisted without remember-me")
	}
}

func TestExecuteLogin_TherapistWithRememberMe(t *testing.T) {
	sessions := &mockSessions{}
	sess, err := ExecuteLogin(context.Background(), LoginInput{
		Email:      "anna.mueller@praxis.de",
		Password:   therapist.DefaultPassword,
		RememberMe: true,
	}, loginDeps(sessions))
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if sess.Role != auth.RoleTherapist || sess.UserID != "1" || sess.Name != "Anna Müller" {
		t.Errorf("session = %+v, want therapist 1", sess)
	}
	if sessions.saved == nil || sessions.saved.UserID != "1" {
		t.Error("remember-me session not persisted")
	}
}

func TestExecuteLogin_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		input LoginInput
	}{
		{"wrong admin password", LoginInput{Email: "admin@praxis.de", Password: "admin124"}},
		{"wrong therapist password", LoginInput{Email: "anna.mueller@praxis.de", Password: "nope"}},
		{"unknown email", LoginInput{Email: "who@praxis.de", Password: "therapeut123"}},
		{"empty password", LoginInput{Email: "anna.mueller@praxis.de"}},
		{"empty email", LoginInput{Password: "therapeut123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sessions := &mockSessions{}
			if _, err := ExecuteLogin(context.Background(), tc.input, loginDeps(sessions)); err != ErrInvalidCredentials {
				t.Errorf("ExecuteLogin = %v, want ErrInvalidCredentials", err)
			}
			if sessions.saved != nil {
				t.Error("failed login persisted a session")
			}
		})
	}
}

func TestExecuteLogin_WithoutRememberMeClearsStored(t *testing.T) {
	sessions := &mockSessions{saved: &auth.Session{UserID: "1"}}
	if _, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@praxis.de",
		Password: "admin123",
	}, loginDeps(sessions)); err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if sessions.saved != nil || sessions.cleared != 1 {
		t.Error("previously remembered session not cleared")
	}
}

func TestExecuteLogout(t *testing.T) {
	sessions := &mockSessions{saved: &auth.Session{UserID: "1"}}
	if err := ExecuteLogout(context.Background(), LogoutDeps{Sessions: sessions}); err != nil {
		t.Fatalf("ExecuteLogout: %v", err)
	}
	if sessions.saved != nil {
		t.Error("remembered session survived logout")
	}
}
