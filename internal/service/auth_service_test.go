package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-admin/internal/model"
	"go-blog-admin/internal/store"
	"go-blog-admin/internal/token"
)

type fixture struct {
	users *store.FileUserDirectory
	creds *store.FileCredentialStore
	auth  *AuthService
	mgr   *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	users := store.NewFileUserDirectory(filepath.Join(dir, "users.json"), 5*time.Second)
	creds := store.NewFileCredentialStore(filepath.Join(dir, "credentials.json"), 5*time.Second)

	tokens, err := token.New("test-signing-secret", time.Hour)
	require.NoError(t, err)

	return &fixture{
		users: users,
		creds: creds,
		auth:  NewAuthService(users, creds, tokens),
		mgr:   NewUserService(users, creds),
	}
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.mgr.Create(ctx, "alice", "alice@example.com", "correct-horse", "admin")
	require.NoError(t, err)

	session, err := f.auth.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, created.ID, session.User.ID)
	assert.Equal(t, model.RoleAdmin, session.User.Role)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	require.NotNil(t, session.User.LastLogin)

	// The login-by-email path works too.
	_, err = f.auth.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	verified, err := f.auth.Verify(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, verified.ID)
	assert.Equal(t, model.RoleAdmin, verified.Role)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.mgr.Create(ctx, "alice", "alice@example.com", "correct-horse", "editor")
	require.NoError(t, err)

	_, unknownErr := f.auth.Login(ctx, "nobody", "whatever")
	_, wrongErr := f.auth.Login(ctx, "alice", "wrong-password")

	// Unknown user and wrong password must produce the exact same failure so
	// the endpoint cannot be used to enumerate accounts.
	assert.ErrorIs(t, unknownErr, model.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, model.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestLogin_MissingCredentialIsGenericFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// A user record with no credential, e.g. a half-imported account.
	orphan := model.User{
		ID:        "orphan-1",
		Username:  "ghost",
		Email:     "ghost@example.com",
		Role:      model.RoleEditor,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.users.Insert(ctx, orphan))

	_, err := f.auth.Login(ctx, "ghost", "anything")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_NoMutationOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.mgr.Create(ctx, "alice", "alice@example.com", "correct-horse", "editor")
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)

	got, err := f.users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastLogin, "failed login must not touch lastLogin")
}

type faultyDirectory struct {
	store.UserDirectory
}

func (f *faultyDirectory) FindByUsernameOrEmail(context.Context, string) (model.User, error) {
	return model.User{}, &model.StorageError{Op: "find user", Err: errors.New("disk offline")}
}

func TestLogin_StorageFaultIsNotAuthFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tokens, err := token.New("test-signing-secret", time.Hour)
	require.NoError(t, err)
	broken := NewAuthService(&faultyDirectory{f.users}, f.creds, tokens)

	_, err = broken.Login(ctx, "alice", "correct-horse")
	require.Error(t, err)
	assert.True(t, model.IsStorageError(err))
	assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestVerify_RejectsTokenOfDeletedUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.mgr.Create(ctx, "root", "root@example.com", "root-password", "admin")
	require.NoError(t, err)
	ed, err := f.mgr.Create(ctx, "ed", "ed@example.com", "ed-password", "editor")
	require.NoError(t, err)

	session, err := f.auth.Login(ctx, "ed", "ed-password")
	require.NoError(t, err)

	require.NoError(t, f.mgr.Delete(ctx, ed.ID))

	// Signature and expiry are still fine, but the subject is gone.
	_, err = f.auth.Verify(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
