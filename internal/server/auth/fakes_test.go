package auth

import (
	"context"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/dmitrijs2005/recordapi/internal/server/models"
)

type fakeUsers struct {
	byID   map[int64]*models.Credentials
	err    error
	lookup []string
}

func newFakeUsers(creds ...*models.Credentials) *fakeUsers {
	f := &fakeUsers{byID: map[int64]*models.Credentials{}}
	for _, c := range creds {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := c.User
	return &u, nil
}

func (f *fakeUsers) GetCredentials(_ context.Context, username string) (*models.Credentials, error) {
	f.lookup = append(f.lookup, username)
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.byID {
		if c.UserName == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}
