package screens

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/reports"
)

var ErrUnknownExport = errors.New("exportação desconhecida")

// Educacenso downloads the census CSV exports.
type Educacenso struct {
	env  Env
	repo reports.Repository
}

func NewEducacenso(env Env, repo reports.Repository) *Educacenso {
	return &Educacenso{env: env, repo: repo}
}

// Download writes the kind export to w and returns its suggested file name.
func (e *Educacenso) Download(ctx context.Context, kind string, w io.Writer) (string, error) {
	if !reports.ValidExport(kind) {
		return "", errors.Wrapf(ErrUnknownExport, "%q", kind)
	}
	data, err := e.repo.Educacenso(ctx, kind)
	if err == nil {
		_, err = w.Write(data)
	}
	if err != nil {
		e.env.Logger.Error("Erro ao baixar arquivo", err, map[string]interface{}{"kind": kind})
		e.env.Notifier.Notify(core.Failure("Erro", "Erro ao baixar arquivo."))
		return "", errors.Wrapf(err, "downloading %s export", kind)
	}
	return reports.ExportFilename(kind), nil
}
