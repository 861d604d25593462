package usecases

import (
	"fmt"
	"time"

	"github.com/frigoservis/servis/internal/domain/shared"
)

// plainHasher stores "hashed:<password>" so tests can check the hash was used.
type plainHasher struct {
	HashErr error
}

func (h *plainHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "hashed:" + password, nil
}

func (h *plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

type mockTokenIssuer struct {
	IssueFunc func(p shared.Principal) (string, time.Time, error)
	Issued    []shared.Principal
}

func (m *mockTokenIssuer) Issue(p shared.Principal) (string, time.Time, error) {
	m.Issued = append(m.Issued, p)
	if m.IssueFunc != nil {
		return m.IssueFunc(p)
	}
	return "token", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), nil
}
