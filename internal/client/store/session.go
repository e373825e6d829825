package store

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/dbx"
)

// Session is the signed-in user as remembered locally.
type Session struct {
	UserID   string
	UserName string
	Token    string
}

// SaveSession replaces the stored session atomically.
func (s *Store) SaveSession(ctx context.Context, sess Session) error {
	if err := s.ready(); err != nil {
		return err
	}
	values := []struct{ key, value string }{
		{common.MetadataAccessToken, sess.Token},
		{common.MetadataUserName, sess.UserName},
		{common.MetadataUserID, sess.UserID},
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, v := range values {
			var err error
			if v.value == "" {
				err = repo.Delete(ctx, v.key)
			} else {
				err = repo.Set(ctx, v.key, []byte(v.value))
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageError("cannot save session", err)
	}
	return nil
}

// Session returns the stored session; ok is false when nobody is signed in.
func (s *Store) Session(ctx context.Context) (sess Session, ok bool, err error) {
	if err := s.ready(); err != nil {
		return Session{}, false, err
	}
	values, err := s.metadata.List(ctx)
	if err != nil {
		return Session{}, false, storageError("cannot read session", err)
	}
	token := values[common.MetadataAccessToken]
	if len(token) == 0 {
		return Session{}, false, nil
	}
	return Session{
		Token:    string(token),
		UserName: string(values[common.MetadataUserName]),
		UserID:   string(values[common.MetadataUserID]),
	}, true, nil
}

// ClearSession forgets the signed-in user.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.metadata.Clear(ctx); err != nil {
		return storageError("cannot clear session", err)
	}
	return nil
}
