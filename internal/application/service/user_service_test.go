package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
	"github.com/sokoni/depot-api/pkg/pagination"
	"github.com/sokoni/depot-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCreateUserHashesPasswordAndForcesChange(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zaptest.NewLogger(t))

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Name:     "cashier",
		Password: "initial-pass",
		Role:     enum.RoleUser,
	})
	require.NoError(t, err)

	assert.True(t, user.MustChangePassword)
	assert.NotEqual(t, "initial-pass", user.Password)
	assert.True(t, utils.CheckPasswordHash("initial-pass", user.Password))
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), zaptest.NewLogger(t))

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Name: "  ", Password: "initial-pass", Role: enum.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	_, err = svc.CreateUser(context.Background(), &CreateUserInput{
		Name: "cashier", Password: "short", Role: enum.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestCreateUserRejectsTakenName(t *testing.T) {
	existing := &entity.User{ID: uuid.New(), Name: "cashier", Role: enum.RoleUser}
	svc := NewUserService(newFakeUserRepo(existing), zaptest.NewLogger(t))

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Name: "cashier", Password: "initial-pass", Role: enum.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestUpdateUserBlocksSelfDemotion(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Name: "boss", Role: enum.RoleAdmin}
	svc := NewUserService(newFakeUserRepo(admin), zaptest.NewLogger(t))

	_, err := svc.UpdateUser(context.Background(), admin.ID, admin.ID, &UpdateUserInput{
		Name: "boss", Role: enum.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestDeleteUserBlocksSelfDelete(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Name: "boss", Role: enum.RoleAdmin}
	svc := NewUserService(newFakeUserRepo(admin), zaptest.NewLogger(t))

	err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestListUsersExcludesRequester(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Name: "boss", Role: enum.RoleAdmin}
	cashier := &entity.User{ID: uuid.New(), Name: "cashier", Role: enum.RoleUser}
	svc := NewUserService(newFakeUserRepo(admin, cashier), zaptest.NewLogger(t))

	result, err := svc.ListUsers(context.Background(), admin.ID, &repository.UserFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, cashier.ID, result.Items[0].ID)
}

func TestResetPassword(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Name: "boss", Role: enum.RoleAdmin}
	cashier := &entity.User{ID: uuid.New(), Name: "cashier", Role: enum.RoleUser}
	repo := newFakeUserRepo(admin, cashier)
	svc := NewUserService(repo, zaptest.NewLogger(t))

	temp, err := svc.ResetPassword(context.Background(), admin.ID, cashier.ID)
	require.NoError(t, err)
	assert.Len(t, temp, 12)

	stored := repo.users[cashier.ID]
	assert.True(t, stored.MustChangePassword)
	assert.True(t, utils.CheckPasswordHash(temp, stored.Password))

	// Admins reset other accounts, not their own
	_, err = svc.ResetPassword(context.Background(), admin.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
