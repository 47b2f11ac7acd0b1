// Package lifecycle is the transactional engine behind every asset status
// transition. Each operation validates its input up front, then runs one
// atomic transaction over the whole asset batch: a precondition failure on
// any asset rolls back the entire batch. History rows are appended inside
// the same transaction; the report cache is invalidated only after commit.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/cache"
	"assettrack-backend/internal/models"
	"assettrack-backend/internal/retry"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTxTimeout bounds a single transition transaction.
const DefaultTxTimeout = 30 * time.Second

// Service orchestrates lifecycle transitions.
type Service struct {
	DB        *gorm.DB
	Cache     cache.Invalidator // optional; invalidated post-commit
	TxTimeout time.Duration     // zero means DefaultTxTimeout
	Retry     retry.Options     // zero value means retry.DefaultOptions()
}

// AssetUpdate carries optional per-asset placement overrides. Nil fields
// retain the asset's current value.
type AssetUpdate struct {
	Department *string `json:"department"`
	Site       *string `json:"site"`
	Location   *string `json:"location"`
}

func (s *Service) txTimeout() time.Duration {
	if s.TxTimeout > 0 {
		return s.TxTimeout
	}
	return DefaultTxTimeout
}

func (s *Service) retryOpts() retry.Options {
	if s.Retry.Attempts > 0 {
		return s.Retry
	}
	return retry.DefaultOptions()
}

// runTx executes fn inside one bounded transaction, retrying the whole
// invocation on transient storage failures. The transaction's own atomicity
// makes the retry safe: a failed attempt left no partial writes.
func (s *Service) runTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return retry.Do(ctx, s.retryOpts(), apperr.IsTransient, func(ctx context.Context) error {
		txCtx, cancel := context.WithTimeout(ctx, s.txTimeout())
		defer cancel()
		err := s.DB.WithContext(txCtx).Transaction(fn)
		return classify(err)
	})
}

// classify passes kinded errors through and maps raw storage errors to the
// taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *apperr.Error
	if errors.As(err, &e) {
		return err
	}
	return apperr.FromStorage(err)
}

// invalidate drops the cached read-side views affected by a committed
// transition.
func (s *Service) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, cache.TagDashboard, cache.TagActivity)
	}
}

// lockForUpdate takes a row lock so concurrent transitions on the same asset
// serialize through the storage engine. SQLite serializes writers at the
// database level, and its dialect rejects FOR UPDATE, so the clause is only
// added elsewhere.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// loadAssetForUpdate reads one live asset under a row lock.
func loadAssetForUpdate(tx *gorm.DB, id string) (*models.Asset, error) {
	var asset models.Asset
	err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", id, false).First(&asset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFoundf("Asset %s not found", id)
		}
		return nil, err
	}
	return &asset, nil
}

// resolveEmployeeName starts a best-effort name lookup and returns a channel
// delivering the display name, falling back to the raw identifier on any
// failure. The caller awaits the result before opening its transaction so
// the value feeds the history rows written inside it.
func (s *Service) resolveEmployeeName(ctx context.Context, employeeID string) <-chan string {
	ch := make(chan string, 1)
	go func() {
		var emp models.Employee
		if err := s.DB.WithContext(ctx).Where("id = ?", employeeID).First(&emp).Error; err != nil {
			log.Warn().Err(err).Str("employee_id", employeeID).Msg("employee lookup failed, logging raw id")
			ch <- employeeID
			return
		}
		ch <- emp.FullName
	}()
	return ch
}

// employeeNameTx resolves a name inside an open transaction, degrading to
// the raw identifier on lookup failure. Lookup failures never abort the
// transaction.
func employeeNameTx(tx *gorm.DB, employeeID string) string {
	var emp models.Employee
	if err := tx.Where("id = ?", employeeID).First(&emp).Error; err != nil {
		log.Warn().Err(err).Str("employee_id", employeeID).Msg("employee lookup failed, logging raw id")
		return employeeID
	}
	return emp.FullName
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
