package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

func newAccountAuthService(accounts ...*entity.Account) (*AuthService, *fakeAccountRepo) {
	repo := newFakeAccountRepo(accounts...)
	return NewAuthService(repo, nil, nil, nil, nil, nil), repo
}

func TestUpdateAccountAppliesDetails(t *testing.T) {
	accountID := uuid.New()
	svc, repo := newAccountAuthService(&entity.Account{
		ID:       accountID,
		FullName: "Linh Tran",
		Username: "linhtran",
		Email:    "linh@example.com",
	})

	phone := "0901234567"
	photo := "https://cdn.example.com/avatars/linh.png"
	updated, err := svc.UpdateAccount(context.Background(), &UpdateAccountInput{
		AccountID:   accountID,
		FullName:    "Linh T. Tran",
		Username:    "linh.tran",
		PhoneNumber: &phone,
		Photo:       &photo,
	})
	require.NoError(t, err)

	assert.Equal(t, "Linh T. Tran", updated.FullName)
	assert.Equal(t, "linh.tran", updated.Username)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
	require.NotNil(t, updated.Photo)
	assert.Equal(t, photo, *updated.Photo)

	stored, err := repo.GetByID(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, "linh.tran", stored.Username)
}

func TestUpdateAccountKeepsOmittedFields(t *testing.T) {
	accountID := uuid.New()
	phone := "0909999999"
	svc, _ := newAccountAuthService(&entity.Account{
		ID:          accountID,
		FullName:    "Linh Tran",
		Username:    "linhtran",
		PhoneNumber: &phone,
	})

	updated, err := svc.UpdateAccount(context.Background(), &UpdateAccountInput{
		AccountID: accountID,
		FullName:  "Linh T. Tran",
	})
	require.NoError(t, err)

	assert.Equal(t, "Linh T. Tran", updated.FullName)
	assert.Equal(t, "linhtran", updated.Username)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
}

func TestUpdateAccountUsernameTaken(t *testing.T) {
	accountID := uuid.New()
	svc, _ := newAccountAuthService(
		&entity.Account{ID: accountID, Username: "linhtran"},
		&entity.Account{ID: uuid.New(), Username: "minhpham"},
	)

	_, err := svc.UpdateAccount(context.Background(), &UpdateAccountInput{
		AccountID: accountID,
		Username:  "minhpham",
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestUpdateAccountNotFound(t *testing.T) {
	svc, _ := newAccountAuthService()

	_, err := svc.UpdateAccount(context.Background(), &UpdateAccountInput{
		AccountID: uuid.New(),
		FullName:  "Nobody",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
