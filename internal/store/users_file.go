package store

import (
	"context"
	"sync"
	"time"

	"go-blog-admin/internal/model"
)

// FileUserDirectory keeps identity records in a single JSON file. The mutex
// is held for the whole load-mutate-persist sequence; two mutations against
// this store never interleave. Reads take the same lock because a plain file
// offers no consistent snapshot to read around a writer.
type FileUserDirectory struct {
	path    string
	timeout time.Duration
	mu      sync.Mutex
}

func NewFileUserDirectory(path string, timeout time.Duration) *FileUserDirectory {
	return &FileUserDirectory{path: path, timeout: timeout}
}

func (d *FileUserDirectory) load() ([]model.User, error) {
	return readJSONFile[model.User](d.path, "read users file")
}

func (d *FileUserDirectory) persist(users []model.User) error {
	return writeJSONFile(d.path, "write users file", users)
}

func (d *FileUserDirectory) FindByUsernameOrEmail(_ context.Context, s string) (model.User, error) {
	return fetchBounded(d.timeout, "find user", func() (model.User, error) {
		d.mu.Lock()
		defer d.mu.Unlock()

		users, err := d.load()
		if err != nil {
			return model.User{}, err
		}

		for _, u := range users {
			if u.Username == s || u.Email == s {
				return u, nil
			}
		}
		return model.User{}, model.ErrUserNotFound
	})
}

func (d *FileUserDirectory) FindByID(_ context.Context, id string) (model.User, error) {
	return fetchBounded(d.timeout, "find user by id", func() (model.User, error) {
		d.mu.Lock()
		defer d.mu.Unlock()

		users, err := d.load()
		if err != nil {
			return model.User{}, err
		}

		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return model.User{}, model.ErrUserNotFound
	})
}

func (d *FileUserDirectory) Insert(_ context.Context, user model.User) error {
	return runBounded(d.timeout, "insert user", func() error {
		d.mu.Lock()
		defer d.mu.Unlock()

		users, err := d.load()
		if err != nil {
			return err
		}

		for _, u := range users {
			if u.Username == user.Username || u.Email == user.Email {
				return model.ErrUserExists
			}
		}

		return d.persist(append(users, user))
	})
}

func (d *FileUserDirectory) Remove(_ context.Context, id string) error {
	return runBounded(d.timeout, "remove user", func() error {
		d.mu.Lock()
		defer d.mu.Unlock()

		users, err := d.load()
		if err != nil {
			return err
		}

		kept := users[:0]
		removed := false
		for _, u := range users {
			if u.ID == id {
				removed = true
				continue
			}
			kept = append(kept, u)
		}
		if !removed {
			return model.ErrUserNotFound
		}

		return d.persist(kept)
	})
}

func (d *FileUserDirectory) List(_ context.Context) ([]model.User, error) {
	return fetchBounded(d.timeout, "list users", func() ([]model.User, error) {
		d.mu.Lock()
		defer d.mu.Unlock()

		return d.load()
	})
}

func (d *FileUserDirectory) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	return runBounded(d.timeout, "touch last login", func() error {
		d.mu.Lock()
		defer d.mu.Unlock()

		users, err := d.load()
		if err != nil {
			return err
		}

		for i := range users {
			if users[i].ID == id {
				t := at
				users[i].LastLogin = &t
				return d.persist(users)
			}
		}
		return model.ErrUserNotFound
	})
}

func (d *FileUserDirectory) CountAdmins(_ context.Context) (int, error) {
	return fetchBounded(d.timeout, "count admins", func() (int, error) {
		d.mu.Lock()
		defer d.mu.Unlock()

		users, err := d.load()
		if err != nil {
			return 0, err
		}

		count := 0
		for _, u := range users {
			if u.Role == model.RoleAdmin {
				count++
			}
		}
		return count, nil
	})
}
