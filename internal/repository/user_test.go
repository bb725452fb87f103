package repository

import (
	"testing"
	"time"

	"github.com/userverse/userverse/internal/model"
	"github.com/userverse/userverse/internal/store"
)

// recordingHooks counts lifecycle callbacks so tests can assert they fire
// without being able to influence outcomes.
type recordingHooks struct {
	beforeCreate, afterCreate int
	beforeUpdate, afterUpdate int
	beforeDelete, afterDelete int
}

func (h *recordingHooks) BeforeCreate(*model.User) { h.beforeCreate++ }
func (h *recordingHooks) AfterCreate(*model.User)  { h.afterCreate++ }
func (h *recordingHooks) BeforeUpdate(string)      { h.beforeUpdate++ }
func (h *recordingHooks) AfterUpdate(*model.User)  { h.afterUpdate++ }
func (h *recordingHooks) BeforeDelete(string)      { h.beforeDelete++ }
func (h *recordingHooks) AfterDelete(string)       { h.afterDelete++ }

func newTestRepo(t *testing.T) (*UserRepository, *recordingHooks) {
	t.Helper()
	hooks := &recordingHooks{}
	repo := NewUserRepository(store.New[*model.User](), hooks, PlainScheme{})
	return repo, hooks
}

func createTestUser(t *testing.T, repo *UserRepository, email, userName string) *model.User {
	t.Helper()
	user, err := repo.Create(CreateInput{
		Email:    email,
		UserName: userName,
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}

func TestCreateStampsIDAndTimestamps(t *testing.T) {
	repo, hooks := newTestRepo(t)

	user := createTestUser(t, repo, "alice@example.com", "alice")

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
	if !user.UpdatedAt.Equal(user.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want equal to CreatedAt %v", user.UpdatedAt, user.CreatedAt)
	}
	if hooks.beforeCreate != 1 || hooks.afterCreate != 1 {
		t.Errorf("create hooks ran (%d, %d) times, want (1, 1)", hooks.beforeCreate, hooks.afterCreate)
	}
}

func TestLookupsAreExactAndCaseSensitive(t *testing.T) {
	repo, _ := newTestRepo(t)
	created := createTestUser(t, repo, "alice@example.com", "alice")

	if got, ok := repo.FindByEmail("alice@example.com"); !ok || got.ID != created.ID {
		t.Fatalf("FindByEmail() = %v, %v; want the created user", got, ok)
	}
	if _, ok := repo.FindByEmail("ALICE@example.com"); ok {
		t.Error("FindByEmail should be case-sensitive")
	}

	if got, ok := repo.FindByUsername("alice"); !ok || got.ID != created.ID {
		t.Fatalf("FindByUsername() = %v, %v; want the created user", got, ok)
	}
	if _, ok := repo.FindByUsername("Alice"); ok {
		t.Error("FindByUsername should be case-sensitive")
	}
}

func TestUpdateStampsUpdatedAt(t *testing.T) {
	repo, hooks := newTestRepo(t)
	user := createTestUser(t, repo, "alice@example.com", "alice")

	// Advance the clock so updatedAt visibly moves.
	later := user.CreatedAt.Add(time.Hour)
	repo.SetClock(func() time.Time { return later })

	updated, ok := repo.Update(user.ID, func(u *model.User) {
		u.UserName = "alice2"
	})
	if !ok {
		t.Fatal("Update() reported not found for an existing user")
	}
	if updated.UserName != "alice2" {
		t.Errorf("UserName = %q, want %q", updated.UserName, "alice2")
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, later)
	}
	if !updated.CreatedAt.Before(updated.UpdatedAt) {
		t.Error("CreatedAt should remain before UpdatedAt")
	}
	if hooks.afterUpdate != 1 {
		t.Errorf("afterUpdate ran %d times, want 1", hooks.afterUpdate)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	repo, hooks := newTestRepo(t)

	if _, ok := repo.Update("999", func(u *model.User) {}); ok {
		t.Fatal("Update() should report not found")
	}
	if hooks.afterUpdate != 0 {
		t.Error("afterUpdate must not run when the user is absent")
	}
}

func TestDelete(t *testing.T) {
	repo, hooks := newTestRepo(t)
	user := createTestUser(t, repo, "alice@example.com", "alice")

	if !repo.Delete(user.ID) {
		t.Fatal("Delete() = false for an existing user")
	}
	if repo.Delete(user.ID) {
		t.Error("second Delete() should return false")
	}
	if hooks.afterDelete != 1 {
		t.Errorf("afterDelete ran %d times, want 1", hooks.afterDelete)
	}
}

func TestVerifyCredentials(t *testing.T) {
	repo, _ := newTestRepo(t)
	created := createTestUser(t, repo, "alice@example.com", "alice")

	user, ok := repo.VerifyCredentials("alice@example.com", "secret1")
	if !ok {
		t.Fatal("VerifyCredentials() rejected correct credentials")
	}
	if user.ID != created.ID {
		t.Errorf("returned user %s, want %s", user.ID, created.ID)
	}

	// Wrong password and unknown email must be indistinguishable.
	if _, ok := repo.VerifyCredentials("alice@example.com", "wrong-pw"); ok {
		t.Error("VerifyCredentials() accepted a wrong password")
	}
	if _, ok := repo.VerifyCredentials("nobody@example.com", "secret1"); ok {
		t.Error("VerifyCredentials() accepted an unknown email")
	}
}

func TestBcryptScheme(t *testing.T) {
	// Minimum cost keeps the test fast; the logic is cost-independent.
	repo := NewUserRepository(store.New[*model.User](), nil, BcryptScheme{Cost: 4})

	user, err := repo.Create(CreateInput{
		Email:    "bob@example.com",
		UserName: "bob",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.Password == "secret1" {
		t.Fatal("bcrypt scheme stored the password verbatim")
	}

	if _, ok := repo.VerifyCredentials("bob@example.com", "secret1"); !ok {
		t.Error("VerifyCredentials() rejected correct credentials under bcrypt")
	}
	if _, ok := repo.VerifyCredentials("bob@example.com", "wrong-pw"); ok {
		t.Error("VerifyCredentials() accepted a wrong password under bcrypt")
	}
}
