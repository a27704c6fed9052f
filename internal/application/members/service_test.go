package members

import (
	"context"
	"testing"

	"brickfolio-backend/internal/domain"
	"brickfolio-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupMembersTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return &Service{DB: db}
}

func TestCreateMember(t *testing.T) {
	svc := setupMembersTest(t)

	u, err := svc.Create(context.Background(), CreateInput{
		Fullname: "Alice Example",
		Email:    "Alice@Example.COM",
		Password: "passw0rd!",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
	assert.Equal(t, constants.Viewer, u.Role, "role defaults to viewer")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("passw0rd!")))
}

func TestCreateMember_Validation(t *testing.T) {
	svc := setupMembersTest(t)

	_, err := svc.Create(context.Background(), CreateInput{Fullname: "X9!", Email: "a@b.com", Password: "passw0rd!"})
	assert.ErrorIs(t, err, ErrInvalidFullname)

	_, err = svc.Create(context.Background(), CreateInput{Fullname: "Alice", Email: "not-an-email", Password: "passw0rd!"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Create(context.Background(), CreateInput{Fullname: "Alice", Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Create(context.Background(), CreateInput{Fullname: "Alice", Email: "a@b.com", Password: "passw0rd!", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateMember_DuplicateEmail(t *testing.T) {
	svc := setupMembersTest(t)

	_, err := svc.Create(context.Background(), CreateInput{Fullname: "Alice", Email: "a@b.com", Password: "passw0rd!"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Fullname: "Alicia", Email: "A@B.com", Password: "passw0rd!"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateMember(t *testing.T) {
	svc := setupMembersTest(t)
	u, err := svc.Create(context.Background(), CreateInput{Fullname: "Alice", Email: "a@b.com", Password: "passw0rd!"})
	require.NoError(t, err)

	role := constants.Admin
	updated, err := svc.Update(context.Background(), u.UserID, UpdateInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, constants.Admin, updated.Role)

	bad := "owner"
	_, err = svc.Update(context.Background(), u.UserID, UpdateInput{Role: &bad})
	assert.ErrorIs(t, err, ErrInvalidRole)

	other, err := svc.Create(context.Background(), CreateInput{Fullname: "Bob", Email: "b@b.com", Password: "passw0rd!"})
	require.NoError(t, err)
	takenEmail := "A@B.com"
	_, err = svc.Update(context.Background(), other.UserID, UpdateInput{Email: &takenEmail})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Update(context.Background(), uuid.New(), UpdateInput{Role: &role})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMember(t *testing.T) {
	svc := setupMembersTest(t)
	u, err := svc.Create(context.Background(), CreateInput{Fullname: "Alice", Email: "a@b.com", Password: "passw0rd!"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), u.UserID))
	assert.ErrorIs(t, svc.Delete(context.Background(), u.UserID), ErrNotFound)
}
