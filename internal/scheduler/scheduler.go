// Package scheduler runs periodic background maintenance: pruning idle
// rate-limiter buckets and logging store counts for operators.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dcallow/storefront/internal/middleware"
	"github.com/dcallow/storefront/internal/repo"
)

// limiterIdleCutoff is how long a per-IP bucket may sit unused before pruning.
const limiterIdleCutoff = 30 * time.Minute

type Maintenance struct {
	Users    *repo.UserRepo
	Posts    *repo.PostRepo
	Contacts *repo.ContactRepo
	Limiters []*middleware.IPRateLimiter

	cron *cron.Cron
}

func NewMaintenance(users *repo.UserRepo, posts *repo.PostRepo, contacts *repo.ContactRepo, limiters ...*middleware.IPRateLimiter) *Maintenance {
	return &Maintenance{
		Users:    users,
		Posts:    posts,
		Contacts: contacts,
		Limiters: limiters,
	}
}

// Start registers the maintenance job at the given cron spec and starts the
// scheduler in the background. A spec of "off" disables it.
func (m *Maintenance) Start(spec string) error {
	if spec == "" || spec == "off" {
		slog.Info("maintenance scheduler disabled")
		return nil
	}

	m.cron = cron.New()
	if _, err := m.cron.AddFunc(spec, m.run); err != nil {
		return err
	}
	m.cron.Start()
	slog.Info("maintenance scheduler started", "cron", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (m *Maintenance) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
}

func (m *Maintenance) run() {
	pruned := 0
	for _, l := range m.Limiters {
		pruned += l.Prune(limiterIdleCutoff)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := m.Users.Count(ctx)
	if err != nil {
		slog.Error("maintenance: count users", "error", err)
		return
	}
	posts, err := m.Posts.Count(ctx)
	if err != nil {
		slog.Error("maintenance: count posts", "error", err)
		return
	}
	contacts, err := m.Contacts.Count(ctx)
	if err != nil {
		slog.Error("maintenance: count contacts", "error", err)
		return
	}

	slog.Info("maintenance run",
		"limiters_pruned", pruned,
		"users", users,
		"posts", posts,
		"contacts", contacts)
}
