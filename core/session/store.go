package session

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

type claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Name         string `json:"name,omitempty"`
	Token        string `json:"token,omitempty"`
}

// FileStore keeps the session in a file, signed as an HS256 JWT.
type FileStore struct {
	path string
	key  []byte
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path, secretKey string) *FileStore {
	return &FileStore{path: path, key: []byte(secretKey)}
}

func (fs *FileStore) Save(s Session) error {
	c := &claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(s.StudentID),
			IssuedAt:  s.IssuedAt.Unix(),
			ExpiresAt: s.ExpiresAt.Unix(),
		},
		OrigIssuedAt: s.OrigIssuedAt.Unix(),
		Name:         s.Name,
		Token:        s.Token,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(fs.key)
	if err != nil {
		return errors.Wrap(err, "signing session")
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	return errors.Wrap(ioutil.WriteFile(fs.path, []byte(signed), 0o600), "writing session")
}

// Load verifies the signature; expiry is left to the Manager.
func (fs *FileStore) Load() (Session, error) {
	data, err := ioutil.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNoSession
		}
		return Session{}, errors.Wrap(err, "reading session")
	}

	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	c := new(claims)
	if _, err := parser.ParseWithClaims(string(data), c, func(*jwt.Token) (interface{}, error) {
		return fs.key, nil
	}); err != nil {
		return Session{}, errors.Wrap(ErrInvalid, err.Error())
	}

	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 {
		return Session{}, errors.Wrap(ErrInvalid, "bad subject")
	}
	return Session{
		StudentID:    id,
		Name:         c.Name,
		Token:        c.Token,
		IssuedAt:     time.Unix(c.IssuedAt, 0).UTC(),
		OrigIssuedAt: time.Unix(c.OrigIssuedAt, 0).UTC(),
		ExpiresAt:    time.Unix(c.ExpiresAt, 0).UTC(),
	}, nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session")
	}
	return nil
}

// MemoryStore keeps the session for the lifetime of the process.
type MemoryStore struct {
	mu sync.Mutex
	s  *Session
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load() (Session, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.s == nil {
		return Session{}, ErrNoSession
	}
	return *ms.s, nil
}

func (ms *MemoryStore) Save(s Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.s = &s
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.s = nil
	return nil
}
