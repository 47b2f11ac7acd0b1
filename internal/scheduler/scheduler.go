// Package scheduler runs the background cron jobs: advancing due report
// schedules and flagging maintenance work that is due.
package scheduler

import (
	"context"
	"time"

	"assettrack-backend/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Options configures the cron specs and the report timezone.
type Options struct {
	// ReportSchedulesSpec fires the report-schedule advance job.
	ReportSchedulesSpec string
	// DueMaintenanceSpec fires the due-maintenance check.
	DueMaintenanceSpec string
	// Location is the fixed UTC-offset zone scheduled times are read in.
	Location *time.Location
}

// DefaultOptions checks report schedules every five minutes and maintenance
// once a day at 08:00 UTC.
func DefaultOptions() Options {
	return Options{
		ReportSchedulesSpec: "*/5 * * * *",
		DueMaintenanceSpec:  "0 8 * * *",
		Location:            time.UTC,
	}
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
	opts Options
}

// New builds a scheduler running in UTC and registers the jobs.
func New(db *gorm.DB, opts Options) (*Scheduler, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	s := &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		db:   db,
		opts: opts,
	}

	if _, err := s.cron.AddFunc(opts.ReportSchedulesSpec, s.runReportSchedules); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(opts.DueMaintenanceSpec, s.runDueMaintenance); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the cron runner.
func (s *Scheduler) Start() {
	log.Info().Msg("starting background scheduler")
	s.cron.Start()
}

// Stop shuts the runner down and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("background scheduler stopped")
}

func (s *Scheduler) runReportSchedules() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := s.AdvanceDueReportSchedules(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("report schedule advance failed")
		return
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("report schedules advanced")
	}
}

// AdvanceDueReportSchedules marks every schedule whose NextRunAt has passed
// as run and computes its next occurrence. Returns the number advanced.
func (s *Scheduler) AdvanceDueReportSchedules(ctx context.Context, now time.Time) (int, error) {
	var due []models.ReportSchedule
	err := s.db.WithContext(ctx).
		Where("next_run_at <= ?", now.UTC()).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	advanced := 0
	for i := range due {
		sched := &due[i]
		ranAt := now
		sched.LastRunAt = &ranAt
		sched.NextRunAt = NextRun(*sched, now, s.opts.Location)
		if err := s.db.WithContext(ctx).Save(sched).Error; err != nil {
			log.Error().Err(err).Str("schedule_id", sched.ID).Msg("report schedule save failed")
			continue
		}
		log.Info().
			Str("schedule_id", sched.ID).
			Str("report_type", sched.ReportType).
			Time("next_run_at", sched.NextRunAt).
			Msg("report schedule run")
		advanced++
	}
	return advanced, nil
}

func (s *Scheduler) runDueMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := s.DueMaintenance(ctx, time.Now()); err != nil {
		log.Error().Err(err).Msg("due maintenance check failed")
	}
}

// DueMaintenance finds scheduled maintenance due on or before the given day
// and logs each row. It does not change record state; follow-up is manual.
func (s *Scheduler) DueMaintenance(ctx context.Context, now time.Time) ([]models.MaintenanceRecord, error) {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	var due []models.MaintenanceRecord
	err := s.db.WithContext(ctx).
		Preload("Asset").
		Where("status = ? AND due_date IS NOT NULL AND due_date <= ?", models.MaintenanceScheduled, endOfDay).
		Order("due_date ASC").
		Find(&due).Error
	if err != nil {
		return nil, err
	}

	for _, m := range due {
		tag := ""
		if m.Asset != nil {
			tag = m.Asset.AssetTagID
		}
		log.Warn().
			Str("maintenance_id", m.ID).
			Str("asset_tag", tag).
			Str("title", m.Title).
			Time("due_date", *m.DueDate).
			Msg("maintenance due")
	}
	return due, nil
}
