// Package depreciation derives current book value from stored acquisition
// facts. Computation is pure: nothing here reads or writes storage, and
// figures are recomputed on every call for the requested as-of instant.
package depreciation

import (
	"time"

	"assettrack-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Depreciation methods. Straight line is the default when the asset's method
// is unset or unrecognized.
const (
	MethodStraightLine     = "Straight Line"
	MethodDecliningBalance = "Declining Balance"
)

// Elapsed time uses a fixed 30-day month. This is a deliberate simplification
// carried over from the stored model, not calendar-month arithmetic.
const daysPerMonth = 30

// Input are the acquisition facts a computation runs over.
type Input struct {
	DepreciableAsset bool
	DepreciableCost  *decimal.Decimal
	SalvageValue     *decimal.Decimal
	AssetLifeMonths  *int
	DateAcquired     *time.Time
	Method           string
}

// Result holds the derived figures, rounded to 2dp.
type Result struct {
	Monthly       decimal.Decimal `json:"monthly"`
	Annual        decimal.Decimal `json:"annual"`
	Accumulated   decimal.Decimal `json:"accumulated"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	ElapsedMonths int             `json:"elapsed_months"`
	ElapsedYears  int             `json:"elapsed_years"`
}

// FromAsset builds an Input from a stored asset.
func FromAsset(a *models.Asset) Input {
	method := ""
	if a.DepreciationMethod != nil {
		method = *a.DepreciationMethod
	}
	return Input{
		DepreciableAsset: a.DepreciableAsset,
		DepreciableCost:  a.DepreciableCost,
		SalvageValue:     a.SalvageValue,
		AssetLifeMonths:  a.AssetLifeMonths,
		DateAcquired:     a.DateAcquired,
		Method:           method,
	}
}

// Compute returns the depreciation figures as of the given instant. Assets
// not flagged depreciable, or missing cost, life, or acquisition date, yield
// all-zero figures with CurrentValue equal to the cost basis (if any).
func Compute(in Input, asOf time.Time) Result {
	if !in.DepreciableAsset || in.DepreciableCost == nil || in.AssetLifeMonths == nil || in.DateAcquired == nil {
		var res Result
		if in.DepreciableCost != nil {
			res.CurrentValue = in.DepreciableCost.Round(2)
		}
		return res
	}

	cost := *in.DepreciableCost
	salvage := decimal.Zero
	if in.SalvageValue != nil {
		salvage = *in.SalvageValue
	}
	life := *in.AssetLifeMonths

	elapsed := elapsedMonths(*in.DateAcquired, asOf, life)
	res := Result{
		ElapsedMonths: elapsed,
		ElapsedYears:  elapsed / 12,
	}

	var monthly, accumulated decimal.Decimal
	if in.Method == MethodDecliningBalance {
		accumulated = decliningAccumulated(cost, salvage, life, elapsed)
		if elapsed > 0 {
			monthly = accumulated.DivRound(decimal.NewFromInt(int64(elapsed)), 8)
		}
	} else {
		if life > 0 {
			monthly = cost.Sub(salvage).DivRound(decimal.NewFromInt(int64(life)), 8)
		}
		accumulated = monthly.Mul(decimal.NewFromInt(int64(elapsed)))
	}

	res.Monthly = monthly.Round(2)
	res.Annual = monthly.Mul(decimal.NewFromInt(12)).Round(2)
	res.Accumulated = accumulated.Round(2)
	res.CurrentValue = cost.Sub(accumulated).Round(2)
	return res
}

// elapsedMonths is floor((asOf - acquired) / 30d), clamped to [0, life].
func elapsedMonths(acquired, asOf time.Time, life int) int {
	days := int(asOf.Sub(acquired).Hours() / 24)
	months := days / daysPerMonth
	if months < 0 {
		return 0
	}
	if months > life {
		return life
	}
	return months
}

// decliningAccumulated iterates the 200%-declining schedule month by month.
// The accumulated total never exceeds cost - salvage: the final step is
// clamped before rounding, so a boundary month cannot report book value
// below salvage.
func decliningAccumulated(cost, salvage decimal.Decimal, life, elapsed int) decimal.Decimal {
	if life <= 0 || elapsed <= 0 {
		return decimal.Zero
	}
	ceiling := cost.Sub(salvage)
	if ceiling.Sign() <= 0 {
		return decimal.Zero
	}

	rate := decimal.NewFromInt(2).DivRound(decimal.NewFromInt(int64(life)), 12)
	remaining := cost
	accumulated := decimal.Zero
	for m := 0; m < elapsed && m < life; m++ {
		step := remaining.Mul(rate)
		accumulated = accumulated.Add(step)
		remaining = remaining.Sub(step)
		if remaining.LessThan(salvage) {
			accumulated = ceiling
			break
		}
	}
	if accumulated.GreaterThan(ceiling) {
		accumulated = ceiling
	}
	return accumulated
}
