package workers

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// RecountWorker periodically re-syncs every outfit's cached vote counter
// against the votes table. The counter is already updated transactionally on
// each vote, so this only corrects drift (crashed transactions, manual data
// surgery).
type RecountWorker struct {
	db        *gorm.DB
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewRecountWorker(db *gorm.DB, interval time.Duration) *RecountWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RecountWorker{db: db, interval: interval}
}

// Start schedules the reconciliation job and runs the scheduler in the
// background.
func (w *RecountWorker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.scheduler = sched

	if _, err := sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.Reconcile),
	); err != nil {
		return err
	}

	sched.Start()
	return nil
}

// Stop shuts the scheduler down.
func (w *RecountWorker) Stop() {
	if w.scheduler != nil {
		if err := w.scheduler.Shutdown(); err != nil {
			log.Printf("[Recount] scheduler shutdown: %v", err)
		}
	}
}

// Reconcile rewrites every cached counter from the authoritative votes table.
func (w *RecountWorker) Reconcile() {
	res := w.db.Exec(`
		UPDATE outfits
		SET votes = (
			SELECT COUNT(*) FROM votes WHERE votes.outfit_id = outfits.id
		)`)
	if res.Error != nil {
		log.Printf("[Recount] failed to reconcile vote counters: %v", res.Error)
		return
	}
	log.Printf("[Recount] vote counters reconciled (%d outfits)", res.RowsAffected)
}
