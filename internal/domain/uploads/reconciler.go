package uploads

import (
	"context"
	"errors"
	"time"

	"pet-profiles/internal/platform/logger"
)

const (
	DefaultOrphanTTL = time.Hour
	DefaultInterval  = 5 * time.Minute
	sweepBatch       = 100
)

// Reconciler barre filas staged viejas: si un perfil todavía referencia la
// imagen la commitea, si no borra el objeto y la descarta.
type Reconciler struct {
	svc  *Service
	refs ReferenceChecker
	ttl  time.Duration
	log  logger.Logger
}

func NewReconciler(svc *Service, refs ReferenceChecker, orphanTTL time.Duration, log logger.Logger) *Reconciler {
	if orphanTTL <= 0 {
		orphanTTL = DefaultOrphanTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{svc: svc, refs: refs, ttl: orphanTTL, log: log}
}

type SweepResult struct {
	Committed int
	Discarded int
	Skipped   int // tocadas o commiteadas durante el barrido
	Failed    int
}

func (r *Reconciler) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	stale, err := r.svc.repo.ListStaleStaged(ctx, r.svc.now().Add(-r.ttl), sweepBatch)
	if err != nil {
		return res, err
	}

	for _, u := range stale {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		referenced, err := r.refs.ImageReferenced(ctx, u.PublicURL)
		if err != nil {
			// Sin certeza no se borra nada.
			r.log.Warn("uploads: reference check failed", map[string]any{"upload_id": u.ID, "err": err})
			res.Failed++
			continue
		}

		if referenced {
			if err := r.svc.commitRow(ctx, u); err != nil {
				r.log.Warn("uploads: commit failed", map[string]any{"upload_id": u.ID, "err": err})
				res.Failed++
				continue
			}
			res.Committed++
			continue
		}

		// Entre el chequeo y el borrado un formulario pudo tocar la fila o un perfil commitearla.
		current, err := r.svc.repo.FindStaged(ctx, u.OwnerUserID, u.PublicURL)
		switch {
		case errors.Is(err, ErrNotFound):
			res.Skipped++
			continue
		case err != nil:
			r.log.Warn("uploads: reload failed", map[string]any{"upload_id": u.ID, "err": err})
			res.Failed++
			continue
		case current.UpdatedAt.After(u.UpdatedAt):
			res.Skipped++
			continue
		}

		if err := r.svc.discard(ctx, current); err != nil {
			r.log.Warn("uploads: discard failed", map[string]any{"upload_id": u.ID, "attempts": current.Attempts + 1, "err": err})
			res.Failed++
			continue
		}
		res.Discarded++

		if again, err := r.refs.ImageReferenced(ctx, u.PublicURL); err == nil && again {
			r.log.Error("uploads: discarded image is referenced by a profile", map[string]any{"upload_id": u.ID, "public_url": u.PublicURL})
		}
	}

	if len(stale) > 0 {
		r.log.Info("uploads: sweep", map[string]any{"committed": res.Committed, "discarded": res.Discarded, "skipped": res.Skipped, "failed": res.Failed})
	}
	return res, nil
}

// Run barre cada interval hasta que se cancele ctx.
func (r *Reconciler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
				r.log.Error("uploads: sweep failed", map[string]any{"err": err})
			}
		}
	}
}
