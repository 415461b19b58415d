package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/session"
)

const refreshCheckTimeout = 30 * time.Second

// RefreshJob periodically checks token expiry and refreshes tokens nearing
// it. This is the only automatic session transition not triggered by a
// direct user action.
type RefreshJob struct {
	controller *session.Controller
	interval   time.Duration
	done       chan struct{}
}

func NewRefreshJob(controller *session.Controller, interval time.Duration) *RefreshJob {
	return &RefreshJob{
		controller: controller,
		interval:   interval,
		done:       make(chan struct{}),
	}
}

func (j *RefreshJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("token refresh job started")
}

func (j *RefreshJob) Stop() {
	close(j.done)
	log.Info().Msg("token refresh job stopped")
}

func (j *RefreshJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.check()
		}
	}
}

func (j *RefreshJob) check() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshCheckTimeout)
	defer cancel()
	j.controller.CheckRefresh(ctx)
}
