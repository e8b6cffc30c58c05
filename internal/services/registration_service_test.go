package services

import (
	"errors"
	"testing"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"
	"github.com/dancedrill/dancedrill_backend/internal/config"
	"github.com/dancedrill/dancedrill_backend/internal/mock"
	"github.com/dancedrill/dancedrill_backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func validInput() *RegistrationInput {
	return &RegistrationInput{
		UserType:        "student",
		LastName:        "山田",
		FirstName:       "花子",
		LastNameKana:    "ヤマダ",
		FirstNameKana:   "ハナコ",
		LastNameRomaji:  "Yamada",
		FirstNameRomaji: "Hanako",
		Gender:          "female",
		PostalCode:      "1234567",
		Address:         "東京都新宿区1-2-3",
		BirthDate:       "2008-04-01",
		Phone:           "09012345678",
		Email:           "a@x.com",
		EmailConfirm:    "a@x.com",
		Password:        "longpass1",
		PasswordConfirm: "longpass1",
		ParentalConsent: true,
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	repo := mock.NewUserRepository()
	mail := mock.NewMailService()
	svc := NewRegistrationService(repo, mail, testConfig(t))

	userID, err := svc.Register(validInput(), false)
	require.NoError(t, err)
	assert.NotZero(t, userID)

	stored, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)

	// 平文は保存されず、ハッシュは平文に対して検証できる
	assert.NotEqual(t, "longpass1", stored.Password)
	assert.True(t, utils.VerifyPassword("longpass1", stored.Password))

	// 確認メールなしの登録ではメールは送られない
	assert.Empty(t, mail.RegistrationEmails)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := mock.NewUserRepository()
	mail := mock.NewMailService()
	svc := NewRegistrationService(repo, mail, testConfig(t))

	firstID, err := svc.Register(validInput(), false)
	require.NoError(t, err)

	// 同じメールアドレスでの2回目の登録は必ず失敗する
	second := validInput()
	second.LastName = "佐藤"
	_, err = svc.Register(second, false)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	// 1回目のレコードは影響を受けない
	stored, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, firstID, stored.ID)
	assert.Equal(t, "山田", stored.LastName)
}

func TestRegisterValidationFailure(t *testing.T) {
	repo := mock.NewUserRepository()
	svc := NewRegistrationService(repo, mock.NewMailService(), testConfig(t))

	// 学生なのに保護者確認がない
	input := validInput()
	input.ParentalConsent = false

	_, err := svc.Register(input, false)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Details, 1)
	assert.Equal(t, "parentalConsent", verr.Details[0].Field)

	// 検証に失敗した場合はレコードが作られない
	stored, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRegisterInvalidBirthDate(t *testing.T) {
	svc := NewRegistrationService(mock.NewUserRepository(), mock.NewMailService(), testConfig(t))

	input := validInput()
	input.BirthDate = "not-a-date"

	_, err := svc.Register(input, false)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "birthDate", verr.Details[0].Field)
}

func TestRegisterSendsConfirmationEmail(t *testing.T) {
	repo := mock.NewUserRepository()
	mail := mock.NewMailService()
	svc := NewRegistrationService(repo, mail, testConfig(t))

	_, err := svc.Register(validInput(), true)
	require.NoError(t, err)

	require.Len(t, mail.RegistrationEmails, 1)
	assert.Equal(t, "a@x.com", mail.RegistrationEmails[0])
}

func TestRegisterMailFailureDoesNotFailRegistration(t *testing.T) {
	repo := mock.NewUserRepository()
	mail := mock.NewMailService()
	mail.SendErr = errors.New("SMTPサーバーに接続できません")
	svc := NewRegistrationService(repo, mail, testConfig(t))

	// 確認メールの送信に失敗しても登録自体は成功する
	userID, err := svc.Register(validInput(), true)
	require.NoError(t, err)
	assert.NotZero(t, userID)

	stored, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestRegisterNeverTrustsPrehashedPassword(t *testing.T) {
	repo := mock.NewUserRepository()
	svc := NewRegistrationService(repo, mock.NewMailService(), testConfig(t))

	// ハッシュ済みに見える値もそのまま保存せず、必ず再ハッシュする
	input := validInput()
	input.Password = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	input.PasswordConfirm = input.Password

	_, err := svc.Register(input, false)
	require.NoError(t, err)

	stored, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, input.Password, stored.Password)
	assert.True(t, utils.VerifyPassword(input.Password, stored.Password))
}

func TestCheckEmailExists(t *testing.T) {
	repo := mock.NewUserRepository()
	svc := NewRegistrationService(repo, mock.NewMailService(), testConfig(t))

	exists, err := svc.CheckEmailExists("a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Register(validInput(), false)
	require.NoError(t, err)

	exists, err = svc.CheckEmailExists("a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSendRegistrationInvite(t *testing.T) {
	repo := mock.NewUserRepository()
	mail := mock.NewMailService()
	svc := NewRegistrationService(repo, mail, testConfig(t))

	err := svc.SendRegistrationInvite("new@x.com")
	require.NoError(t, err)
	require.Len(t, mail.InviteEmails, 1)
	assert.Equal(t, "new@x.com", mail.InviteEmails[0].To)
	assert.Contains(t, mail.InviteEmails[0].RegistrationURL, "/register?email=new%40x.com")
}

func TestSendRegistrationInviteRejectsDuplicate(t *testing.T) {
	repo := mock.NewUserRepository()
	mail := mock.NewMailService()
	svc := NewRegistrationService(repo, mail, testConfig(t))

	_, err := svc.Register(validInput(), false)
	require.NoError(t, err)

	err = svc.SendRegistrationInvite("a@x.com")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	assert.Empty(t, mail.InviteEmails)
}

func TestSendRegistrationInviteRejectsInvalidEmail(t *testing.T) {
	svc := NewRegistrationService(mock.NewUserRepository(), mock.NewMailService(), testConfig(t))

	err := svc.SendRegistrationInvite("not-an-email")
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
}
