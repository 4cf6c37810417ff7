package screens

import (
	"context"

	"github.com/trezcool/sge/core/query"
	"github.com/trezcool/sge/core/reports"
)

// Dashboard is the secretariat home: network-wide counts.
type Dashboard struct {
	stats *query.List[reports.DashboardStats]
}

func NewDashboard(env Env, repo reports.Repository) *Dashboard {
	return &Dashboard{stats: query.NewList(env.Client, KeyDashboard, repo.DashboardStats)}
}

func (d *Dashboard) Load(ctx context.Context) (reports.Counts, error) {
	stats, err := d.stats.Load(ctx)
	return stats.Counts, err
}

func (d *Dashboard) View() query.State[reports.DashboardStats] { return d.stats.View() }

// PedagogicalDashboard adds the students at risk to the counts. It shares the dashboard's cache entry.
type PedagogicalDashboard struct {
	stats *query.List[reports.DashboardStats]
}

func NewPedagogicalDashboard(env Env, repo reports.Repository) *PedagogicalDashboard {
	return &PedagogicalDashboard{stats: query.NewList(env.Client, KeyDashboard, repo.DashboardStats)}
}

func (d *PedagogicalDashboard) Load(ctx context.Context) (reports.DashboardStats, error) {
	return d.stats.Load(ctx)
}

func (d *PedagogicalDashboard) View() query.State[reports.DashboardStats] { return d.stats.View() }

// AtRisk returns the loaded students at risk.
func (d *PedagogicalDashboard) AtRisk() []reports.AtRisk { return d.stats.View().Data.AtRisk }
