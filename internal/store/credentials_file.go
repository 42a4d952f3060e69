package store

import (
	"context"
	"sync"
	"time"

	"go-blog-admin/internal/model"
)

// FileCredentialStore keeps password hashes in their own JSON file, physically
// separate from the identity records. Same single-writer discipline as
// FileUserDirectory.
type FileCredentialStore struct {
	path    string
	timeout time.Duration
	mu      sync.Mutex
}

func NewFileCredentialStore(path string, timeout time.Duration) *FileCredentialStore {
	return &FileCredentialStore{path: path, timeout: timeout}
}

func (s *FileCredentialStore) load() ([]model.Credential, error) {
	return readJSONFile[model.Credential](s.path, "read credentials file")
}

func (s *FileCredentialStore) persist(creds []model.Credential) error {
	return writeJSONFile(s.path, "write credentials file", creds)
}

func (s *FileCredentialStore) Get(_ context.Context, userID string) (string, bool, error) {
	cred, err := fetchBounded(s.timeout, "get credential", func() (model.Credential, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		creds, err := s.load()
		if err != nil {
			return model.Credential{}, err
		}

		for _, c := range creds {
			if c.UserID == userID {
				return c, nil
			}
		}
		return model.Credential{}, nil
	})
	if err != nil {
		return "", false, err
	}
	return cred.PasswordHash, cred.UserID != "", nil
}

// Set upserts; calling it twice with the same arguments is a no-op the second
// time.
func (s *FileCredentialStore) Set(_ context.Context, userID string, passwordHash string) error {
	return runBounded(s.timeout, "set credential", func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		creds, err := s.load()
		if err != nil {
			return err
		}

		for i := range creds {
			if creds[i].UserID == userID {
				creds[i].PasswordHash = passwordHash
				return s.persist(creds)
			}
		}

		return s.persist(append(creds, model.Credential{UserID: userID, PasswordHash: passwordHash}))
	})
}

func (s *FileCredentialStore) Remove(_ context.Context, userID string) error {
	return runBounded(s.timeout, "remove credential", func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		creds, err := s.load()
		if err != nil {
			return err
		}

		kept := creds[:0]
		for _, c := range creds {
			if c.UserID == userID {
				continue
			}
			kept = append(kept, c)
		}

		return s.persist(kept)
	})
}
