package cron

import (
	"context"
	"time"

	"clinica/models"
	"clinica/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ListFunc fetches the appointment view the signed-in caller should poll:
// ListMyAppointments for a patient, ListAllAppointments for a provider.
type ListFunc func(ctx context.Context) ([]models.Appointment, error)

// Refresher periodically re-fetches the caller's appointment list. The
// client is poll/refresh driven; this is the background half of that loop.
// Fetch failures are logged and retried on the next tick, never surfaced.
type Refresher struct {
	List     ListFunc
	Spec     string
	OnUpdate func([]models.Appointment)

	scheduler *cron.Cron
}

// NewRefresher builds a refresher with a cron spec such as "@every 5m".
func NewRefresher(list ListFunc, spec string, onUpdate func([]models.Appointment)) *Refresher {
	return &Refresher{List: list, Spec: spec, OnUpdate: onUpdate}
}

// Start schedules the refresh job and runs an immediate first fetch.
func (r *Refresher) Start() error {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(r.Spec, r.refresh); err != nil {
		return err
	}
	scheduler.Start()
	r.scheduler = scheduler

	go r.refresh()
	return nil
}

// Stop halts the schedule. A refresh already in flight finishes.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	appts, err := r.List(ctx)
	if err != nil {
		utils.GetLogger().Warn("Appointment refresh failed", zap.Error(err))
		return
	}

	utils.GetLogger().Debug("Appointments refreshed", zap.Int("count", len(appts)))
	if r.OnUpdate != nil {
		r.OnUpdate(appts)
	}
}
