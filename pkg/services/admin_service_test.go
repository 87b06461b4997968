package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/models"
)

func seedAdmin(t *testing.T, email, password string) *fakeAdminRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeAdminRepo{admins: map[string]*models.Admin{
		email: {ID: uuid.New(), Email: email, PasswordHash: string(hash)},
	}}
}

func TestAdminService_Authenticate(t *testing.T) {
	admins := seedAdmin(t, "admin@example.com", "root-pw")
	svc := NewAdminService(admins, newFakeUserRepo(), &fakeReportRepo{})
	ctx := context.Background()

	admin, err := svc.Authenticate(ctx, "admin@example.com", "root-pw")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", admin.Email)

	_, err = svc.Authenticate(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "root-pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminService_Stats(t *testing.T) {
	users := newFakeUserRepo()
	reports := &fakeReportRepo{}
	svc := NewAdminService(seedAdmin(t, "a@example.com", "pw"), users, reports)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{Name: "u1", Email: "u1@example.com"}))
	require.NoError(t, users.Create(ctx, &models.User{Name: "u2", Email: "u2@example.com"}))
	require.NoError(t, reports.Create(ctx, &models.Report{UserID: uuid.New(), UserName: "u1", Body: "b"}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.UserCount)
	assert.Equal(t, int64(1), stats.ReportCount)
}
