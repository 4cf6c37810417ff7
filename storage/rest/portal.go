package restrepo

import (
	"context"

	"github.com/sendgrid/rest"

	"github.com/trezcool/sge/core/portal"
)

type portalRepository struct {
	c *Client
}

var _ portal.Repository = (*portalRepository)(nil)

func NewPortalRepository(c *Client) portal.Repository {
	return &portalRepository{c: c}
}

func (repo *portalRepository) Login(ctx context.Context, req portal.LoginRequest) (portal.LoginResult, error) {
	var res portal.LoginResult
	err := repo.c.post(ctx, "/portal/login", req, &res)
	return res, err
}

func (repo *portalRepository) Overview(ctx context.Context, studentID int) (portal.StudentOverview, error) {
	var overview portal.StudentOverview
	err := repo.c.send(ctx, call{
		method: rest.Get,
		path:   "/portal/me",
		query:  map[string]string{"student_id": itoa(studentID)},
	}, &overview)
	return overview, err
}
