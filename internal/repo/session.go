package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pkordes/campmatch/internal/domain"
)

var bucketSessions = []byte("quiz_sessions")

// SessionStore keeps in-progress quiz state so a parent can resume after a
// reload. The recommendation engine never reads from it.
type SessionStore interface {
	// Get returns the session for token.
	// Returns domain.ErrNotFound if there is none.
	Get(ctx context.Context, token string) (domain.QuizSession, error)

	// Save creates or replaces the session identified by s.Token.
	Save(ctx context.Context, s domain.QuizSession) error

	// Delete removes a session. Returns domain.ErrNotFound if there is none.
	Delete(ctx context.Context, token string) error

	// Prune removes sessions last updated before cutoff and returns how
	// many were removed.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// boltSessionStore is the bbolt implementation of SessionStore.
// Sessions are stored as JSON under their token.
type boltSessionStore struct {
	db *bolt.DB
}

// NewSessionStore creates the sessions bucket if needed and returns a
// SessionStore backed by db.
func NewSessionStore(db *bolt.DB) (SessionStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.NewSessionStore: create bucket: %w", err)
	}
	return &boltSessionStore{db: db}, nil
}

func (s *boltSessionStore) Get(ctx context.Context, token string) (domain.QuizSession, error) {
	var sess domain.QuizSession
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSessions).Get([]byte(token))
		if data == nil {
			return domain.ErrNotFound
		}
		return json.Unmarshal(data, &sess)
	})
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("repo.SessionStore.Get: %w", err)
	}
	return sess, nil
}

func (s *boltSessionStore) Save(ctx context.Context, sess domain.QuizSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("repo.SessionStore.Save: marshal: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(sess.Token), data)
	})
	if err != nil {
		return fmt.Errorf("repo.SessionStore.Save: %w", err)
	}
	return nil
}

func (s *boltSessionStore) Delete(ctx context.Context, token string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		if b.Get([]byte(token)) == nil {
			return domain.ErrNotFound
		}
		return b.Delete([]byte(token))
	})
	if err != nil {
		return fmt.Errorf("repo.SessionStore.Delete: %w", err)
	}
	return nil
}

// Prune scans the whole bucket; session counts are small enough that an
// updated_at index is not worth maintaining.
func (s *boltSessionStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var sess domain.QuizSession
			if err := json.Unmarshal(v, &sess); err != nil || sess.UpdatedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("repo.SessionStore.Prune: %w", err)
	}
	return removed, nil
}
