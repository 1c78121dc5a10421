package impl

import (
	"context"
	"testing"

	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/service"
	"gachigage/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignupInput() usecase.SignupInput {
	return usecase.SignupInput{
		Identifier: "tester1",
		Password:   "secret12",
		Nickname:   "테스터",
		Sido:       "서울",
		Gugun:      "노원구",
	}
}

func TestAuthService_SignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*usecase.SignupInput)
		wantErr error
	}{
		{"identifier too short", func(in *usecase.SignupInput) { in.Identifier = "abc12" }, domainerrors.ErrIdentifierInvalid},
		{"identifier too long", func(in *usecase.SignupInput) { in.Identifier = "abcdefghij123" }, domainerrors.ErrIdentifierInvalid},
		{"identifier with symbol", func(in *usecase.SignupInput) { in.Identifier = "abc123!" }, domainerrors.ErrIdentifierInvalid},
		{"password too short", func(in *usecase.SignupInput) { in.Password = "ab1" }, domainerrors.ErrPasswordInvalid},
		{"password too long", func(in *usecase.SignupInput) { in.Password = "abcdefghij123" }, domainerrors.ErrPasswordInvalid},
		{"nickname empty after trim", func(in *usecase.SignupInput) { in.Nickname = "   " }, domainerrors.ErrNicknameInvalid},
		{"nickname too long", func(in *usecase.SignupInput) { in.Nickname = "가나다라마바사아자차카타파하가나" }, domainerrors.ErrNicknameInvalid},
		{"unknown region", func(in *usecase.SignupInput) { in.Gugun = "강남구" }, domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{signupFn: func(context.Context, service.SignupInput) error {
				t.Fatal("gateway must not be called on validation failure")
				return nil
			}}
			svc := NewAuthService(gateway, &memorySessionRepo{}, discardLogger())

			input := validSignupInput()
			tt.mutate(&input)

			err := svc.Signup(context.Background(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_SignupTrimsNickname(t *testing.T) {
	var sent service.SignupInput
	gateway := &fakeGateway{signupFn: func(_ context.Context, input service.SignupInput) error {
		sent = input
		return nil
	}}
	svc := NewAuthService(gateway, &memorySessionRepo{}, discardLogger())

	input := validSignupInput()
	input.Nickname = "  테스터  "

	require.NoError(t, svc.Signup(context.Background(), input))
	assert.Equal(t, "테스터", sent.Username)
	assert.Equal(t, "tester1", sent.Identifier)
}

func TestAuthService_LoginPersistsSession(t *testing.T) {
	gateway := &fakeGateway{loginFn: func(_ context.Context, identifier, password string) (*service.LoginOutput, error) {
		return &service.LoginOutput{AccessToken: "a1", RefreshToken: "r1", UserID: 7}, nil
	}}
	sessions := &memorySessionRepo{}
	svc := NewAuthService(gateway, sessions, discardLogger())

	session, err := svc.Login(context.Background(), "tester1", "secret12")
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.True(t, session.Authenticated())

	stored, err := sessions.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a1", stored.AccessToken)
	assert.Equal(t, "r1", stored.RefreshToken)
}

func TestAuthService_LoginRejectsEmptyCredentials(t *testing.T) {
	svc := NewAuthService(&fakeGateway{}, &memorySessionRepo{}, discardLogger())

	_, err := svc.Login(context.Background(), "", "secret12")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_LogoutClearsSession(t *testing.T) {
	sessions := &memorySessionRepo{}
	svc := NewAuthService(&fakeGateway{loginFn: func(context.Context, string, string) (*service.LoginOutput, error) {
		return &service.LoginOutput{AccessToken: "a1", RefreshToken: "r1", UserID: 7}, nil
	}}, sessions, discardLogger())

	_, err := svc.Login(context.Background(), "tester1", "secret12")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	_, err = svc.Session(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrAuthRequired)
}

func TestAuthService_SessionSurvivesRestart(t *testing.T) {
	// A new service instance over the same store still sees the login; the
	// session is hydrated from persistence, not from process memory.
	sessions := &memorySessionRepo{}
	first := NewAuthService(&fakeGateway{loginFn: func(context.Context, string, string) (*service.LoginOutput, error) {
		return &service.LoginOutput{AccessToken: "a1", RefreshToken: "r1", UserID: 7}, nil
	}}, sessions, discardLogger())

	_, err := first.Login(context.Background(), "tester1", "secret12")
	require.NoError(t, err)

	second := NewAuthService(&fakeGateway{}, sessions, discardLogger())
	session, err := second.Session(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
}

func TestAuthService_CheckIdentifier(t *testing.T) {
	gateway := &fakeGateway{checkIdentifierFn: func(_ context.Context, identifier string) (bool, error) {
		return identifier != "taken1", nil
	}}
	svc := NewAuthService(gateway, &memorySessionRepo{}, discardLogger())

	available, err := svc.CheckIdentifier(context.Background(), "tester1")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = svc.CheckIdentifier(context.Background(), "taken1")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.CheckIdentifier(context.Background(), "a!")
	assert.ErrorIs(t, err, domainerrors.ErrIdentifierInvalid)
}
