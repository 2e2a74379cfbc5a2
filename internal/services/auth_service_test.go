package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"lifeline/internal/models"
	"lifeline/pkg/logger"
)

func newAuthTestService(userRepo *mockUserRepository, doctorRepo *mockDoctorRepository, notifier *mockNotifier) AuthService {
	return NewAuthService(userRepo, doctorRepo, notifier, "test-secret", "https://clinic.example.com", logger.NewNop())
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register_PatientGoesToUsers(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)
	notifier := new(mockNotifier)

	userRepo.On("GetByEmail", mock.Anything, "pat@x.com").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("GetByEmail", mock.Anything, "pat@x.com").Return(nil, mongo.ErrNoDocuments)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RolePatient && u.Email == "pat@x.com" &&
			u.Password != "secret-password" && u.VerificationToken != ""
	})).Return(nil)
	notifier.On("SendVerificationEmail", "pat@x.com", "Pat", mock.AnythingOfType("string")).Return()

	svc := newAuthTestService(userRepo, doctorRepo, notifier)
	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Pat",
		Email:    "pat@x.com",
		Password: "secret-password",
		Role:     models.RolePatient,
	})

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	doctorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DoctorGoesToDoctorsPendingApproval(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)
	notifier := new(mockNotifier)

	userRepo.On("GetByEmail", mock.Anything, "doc@x.com").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("GetByEmail", mock.Anything, "doc@x.com").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *models.Doctor) bool {
		return d.Role == models.RoleDoctor && d.IsApproved == models.ApprovalPending
	})).Return(nil)
	notifier.On("SendWelcomeEmail", "doc@x.com", "Doc").Return()

	svc := newAuthTestService(userRepo, doctorRepo, notifier)
	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Doc",
		Email:    "doc@x.com",
		Password: "secret-password",
		Role:     models.RoleDoctor,
	})

	require.NoError(t, err)
	doctorRepo.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_RejectsDuplicateEmailAcrossCollections(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)

	// email taken by a doctor blocks patient registration too
	userRepo.On("GetByEmail", mock.Anything, "doc@x.com").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("GetByEmail", mock.Anything, "doc@x.com").Return(&models.Doctor{Email: "doc@x.com"}, nil)

	svc := newAuthTestService(userRepo, doctorRepo, new(mockNotifier))
	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Pat",
		Email:    "doc@x.com",
		Password: "secret-password",
		Role:     models.RolePatient,
	})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_RejectsShortPassword(t *testing.T) {
	svc := newAuthTestService(new(mockUserRepository), new(mockDoctorRepository), new(mockNotifier))

	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Pat",
		Email:    "pat@x.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login_ResolvesPatient(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)
	userID := primitive.NewObjectID()

	userRepo.On("GetByEmail", mock.Anything, "pat@x.com").Return(&models.User{
		ID:            userID,
		Email:         "pat@x.com",
		Role:          models.RolePatient,
		Password:      hashFor(t, "secret-password"),
		EmailVerified: true,
	}, nil)

	svc := newAuthTestService(userRepo, doctorRepo, new(mockNotifier))
	result, err := svc.Login(context.Background(), "pat@x.com", "secret-password")

	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, result.Role)
	assert.NotEmpty(t, result.Token)
	doctorRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login_FallsBackToDoctors(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)
	doctorID := primitive.NewObjectID()

	userRepo.On("GetByEmail", mock.Anything, "doc@x.com").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("GetByEmail", mock.Anything, "doc@x.com").Return(&models.Doctor{
		ID:       doctorID,
		Email:    "doc@x.com",
		Password: hashFor(t, "secret-password"),
	}, nil)

	svc := newAuthTestService(userRepo, doctorRepo, new(mockNotifier))
	result, err := svc.Login(context.Background(), "doc@x.com", "secret-password")

	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, result.Role)
}

func TestAuthService_Login_RejectsUnverifiedEmail(t *testing.T) {
	userRepo := new(mockUserRepository)

	userRepo.On("GetByEmail", mock.Anything, "pat@x.com").Return(&models.User{
		Email:    "pat@x.com",
		Password: hashFor(t, "secret-password"),
	}, nil)

	svc := newAuthTestService(userRepo, new(mockDoctorRepository), new(mockNotifier))
	_, err := svc.Login(context.Background(), "pat@x.com", "secret-password")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_VerifyEmail_MarksAccountVerified(t *testing.T) {
	userRepo := new(mockUserRepository)
	notifier := new(mockNotifier)
	userID := primitive.NewObjectID()

	userRepo.On("GetByVerificationToken", mock.Anything, "tok").Return(&models.User{
		ID:    userID,
		Name:  "Pat",
		Email: "pat@x.com",
	}, nil)
	userRepo.On("MarkEmailVerified", mock.Anything, userID).Return(nil)
	notifier.On("SendWelcomeEmail", "pat@x.com", "Pat").Return()

	svc := newAuthTestService(userRepo, new(mockDoctorRepository), notifier)
	err := svc.VerifyEmail(context.Background(), "tok")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthService_VerifyEmail_UnknownToken(t *testing.T) {
	userRepo := new(mockUserRepository)
	userRepo.On("GetByVerificationToken", mock.Anything, "bad").Return(nil, mongo.ErrNoDocuments)

	svc := newAuthTestService(userRepo, new(mockDoctorRepository), new(mockNotifier))
	err := svc.VerifyEmail(context.Background(), "bad")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepository)

	userRepo.On("GetByEmail", mock.Anything, "pat@x.com").Return(&models.User{
		Email:    "pat@x.com",
		Password: hashFor(t, "secret-password"),
	}, nil)

	svc := newAuthTestService(userRepo, new(mockDoctorRepository), new(mockNotifier))
	_, err := svc.Login(context.Background(), "pat@x.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)

	userRepo.On("GetByEmail", mock.Anything, "none@x.com").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("GetByEmail", mock.Anything, "none@x.com").Return(nil, mongo.ErrNoDocuments)

	svc := newAuthTestService(userRepo, doctorRepo, new(mockNotifier))
	_, err := svc.Login(context.Background(), "none@x.com", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ForgotPassword_UnknownEmailDoesNotError(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)
	notifier := new(mockNotifier)

	userRepo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, mongo.ErrNoDocuments)

	svc := newAuthTestService(userRepo, doctorRepo, notifier)
	err := svc.ForgotPassword(context.Background(), "ghost@x.com")

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)

	userRepo.On("GetByResetToken", mock.Anything, "stale").Return(nil, mongo.ErrNoDocuments)
	doctorRepo.On("GetByResetToken", mock.Anything, "stale").Return(nil, mongo.ErrNoDocuments)

	svc := newAuthTestService(userRepo, doctorRepo, new(mockNotifier))
	err := svc.ResetPassword(context.Background(), "stale", "new-password-1")

	assert.ErrorIs(t, err, ErrValidation)
}
