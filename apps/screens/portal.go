package screens

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/portal"
	"github.com/trezcool/sge/core/query"
	"github.com/trezcool/sge/core/session"
)

// Portal locations.
const (
	LocationLogin = "/portal/login"
	LocationHome  = "/portal/home"
)

const (
	loginFailedTitle = "Erro no login"
	loginFailedText  = "CPF não encontrado ou inválido."
)

// ErrLoginFailed hides why a portal login was refused.
var ErrLoginFailed = errors.New(loginFailedText)

// Portal is the student portal: login, home and logout.
type Portal struct {
	env      Env
	repo     portal.Repository
	sessions *session.Manager

	mu       sync.Mutex
	location string
}

func NewPortal(env Env, repo portal.Repository, sessions *session.Manager) *Portal {
	return &Portal{env: env, repo: repo, sessions: sessions, location: LocationLogin}
}

func (p *Portal) Location() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location
}

func (p *Portal) goTo(location string) {
	p.mu.Lock()
	p.location = location
	p.mu.Unlock()
}

// Login starts a session for the student owning cpf. Every refusal reads the same to the user.
func (p *Portal) Login(ctx context.Context, cpf string) (session.Session, error) {
	if strings.TrimSpace(cpf) == "" {
		return session.Session{}, core.NewValidationError(nil, core.FieldError{Field: "cpf", Error: "este campo é obrigatório"})
	}

	req := portal.LoginRequest{CPF: cpf}
	req.Clean()
	err := core.ValidateStruct(p.env.Validate, p.env.Translator, req, nil)
	var res portal.LoginResult
	if err == nil {
		res, err = p.repo.Login(ctx, req)
	}
	if err != nil {
		if core.IsNotFound(err) {
			p.env.Logger.Info("portal login refused: unknown cpf")
		} else {
			p.env.Logger.Warn("portal login refused", err)
		}
		p.env.Notifier.Notify(core.Failure(loginFailedTitle, loginFailedText))
		return session.Session{}, errors.Wrap(ErrLoginFailed, err.Error())
	}

	s, err := p.sessions.Start(res)
	if err != nil {
		p.env.Logger.Error("starting portal session", err, studentPerson(res.ID, res.Name))
		p.env.Notifier.Notify(core.Failure(loginFailedTitle, core.UserMessage(err)))
		return session.Session{}, err
	}
	p.goTo(LocationHome)
	p.env.Notifier.Notify(core.Notification{Title: "Bem-vindo!", Message: "Olá, " + res.Name, Level: core.LevelSuccess})
	return s, nil
}

// Home loads the logged in student's overview. Without a valid session, or when the
// overview cannot be loaded, the portal goes back to the login.
func (p *Portal) Home(ctx context.Context) (portal.StudentOverview, error) {
	s, err := p.sessions.Current()
	if err != nil {
		p.goTo(LocationLogin)
		return portal.StudentOverview{}, err
	}
	ctx = session.NewContext(ctx, s)

	overview, err := query.Refresh(ctx, p.env.Client, KeyOverview(s.StudentID), func(ctx context.Context) (portal.StudentOverview, error) {
		return p.repo.Overview(ctx, s.StudentID)
	})
	if err != nil {
		p.env.Logger.Warn("loading portal overview", err, studentPerson(s.StudentID, s.Name))
		p.goTo(LocationLogin)
		return portal.StudentOverview{}, err
	}
	p.goTo(LocationHome)
	return overview, nil
}

func studentPerson(id int, name string) core.Person {
	return core.Person{ID: itoa(id), Username: name}
}

func (p *Portal) Logout() error {
	p.goTo(LocationLogin)
	if err := p.sessions.End(); err != nil {
		return errors.Wrap(err, "ending portal session")
	}
	return nil
}
