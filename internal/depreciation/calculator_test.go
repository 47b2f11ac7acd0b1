package depreciation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(i int) *int { return &i }

func timep(t time.Time) *time.Time { return &t }

func TestStraightLine_HalfLife(t *testing.T) {
	acquired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("12000"),
		SalvageValue:     dec("0"),
		AssetLifeMonths:  intp(24),
		DateAcquired:     timep(acquired),
	}
	// 360 days = exactly 12 thirty-day months
	res := Compute(in, acquired.Add(360*24*time.Hour))

	assert.Equal(t, 12, res.ElapsedMonths)
	assert.Equal(t, 1, res.ElapsedYears)
	assert.True(t, res.Monthly.Equal(decimal.NewFromInt(500)), "monthly = %s", res.Monthly)
	assert.True(t, res.Annual.Equal(decimal.NewFromInt(6000)), "annual = %s", res.Annual)
	assert.True(t, res.Accumulated.Equal(decimal.NewFromInt(6000)), "accumulated = %s", res.Accumulated)
	assert.True(t, res.CurrentValue.Equal(decimal.NewFromInt(6000)), "current = %s", res.CurrentValue)
}

func TestStraightLine_WithSalvage(t *testing.T) {
	acquired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("10000"),
		SalvageValue:     dec("1000"),
		AssetLifeMonths:  intp(36),
		DateAcquired:     timep(acquired),
	}
	res := Compute(in, acquired.Add(90*24*time.Hour)) // 3 months

	assert.Equal(t, 3, res.ElapsedMonths)
	assert.True(t, res.Monthly.Equal(decimal.NewFromInt(250)), "monthly = %s", res.Monthly)
	assert.True(t, res.Accumulated.Equal(decimal.NewFromInt(750)), "accumulated = %s", res.Accumulated)
	assert.True(t, res.CurrentValue.Equal(decimal.NewFromInt(9250)), "current = %s", res.CurrentValue)
}

func TestStraightLine_ElapsedClampedToLife(t *testing.T) {
	acquired := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("12000"),
		AssetLifeMonths:  intp(24),
		DateAcquired:     timep(acquired),
	}
	// far past end of life: fully depreciated, never negative
	res := Compute(in, acquired.AddDate(10, 0, 0))
	assert.Equal(t, 24, res.ElapsedMonths)
	assert.True(t, res.Accumulated.Equal(decimal.NewFromInt(12000)))
	assert.True(t, res.CurrentValue.IsZero(), "current = %s", res.CurrentValue)
}

func TestAsOfBeforeAcquisition(t *testing.T) {
	acquired := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("5000"),
		AssetLifeMonths:  intp(12),
		DateAcquired:     timep(acquired),
	}
	res := Compute(in, acquired.AddDate(0, 0, -30))
	assert.Equal(t, 0, res.ElapsedMonths)
	assert.True(t, res.Accumulated.IsZero())
	assert.True(t, res.CurrentValue.Equal(decimal.NewFromInt(5000)))
}

func TestNonDepreciable_AllZero(t *testing.T) {
	res := Compute(Input{DepreciableAsset: false, DepreciableCost: dec("9000")}, time.Now())
	assert.True(t, res.Monthly.IsZero())
	assert.True(t, res.Annual.IsZero())
	assert.True(t, res.Accumulated.IsZero())
	assert.True(t, res.CurrentValue.Equal(decimal.NewFromInt(9000)))

	// missing life months
	acquired := time.Now().AddDate(-1, 0, 0)
	res = Compute(Input{DepreciableAsset: true, DepreciableCost: dec("9000"), DateAcquired: timep(acquired)}, time.Now())
	assert.True(t, res.Accumulated.IsZero())
}

func TestZeroLife_NoDivision(t *testing.T) {
	acquired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("1000"),
		AssetLifeMonths:  intp(0),
		DateAcquired:     timep(acquired),
	}
	res := Compute(in, acquired.AddDate(1, 0, 0))
	assert.True(t, res.Monthly.IsZero())
	assert.True(t, res.Accumulated.IsZero())
}

func TestDecliningBalance_NeverBelowSalvage(t *testing.T) {
	acquired := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("10000"),
		SalvageValue:     dec("2000"),
		AssetLifeMonths:  intp(24),
		DateAcquired:     timep(acquired),
		Method:           MethodDecliningBalance,
	}
	for months := 0; months <= 36; months++ {
		res := Compute(in, acquired.Add(time.Duration(months)*30*24*time.Hour))
		assert.True(t, res.CurrentValue.GreaterThanOrEqual(decimal.NewFromInt(2000)),
			"month %d: current %s below salvage", months, res.CurrentValue)
	}
}

func TestDecliningBalance_AccumulatedMonotonic(t *testing.T) {
	acquired := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("8000"),
		SalvageValue:     dec("500"),
		AssetLifeMonths:  intp(18),
		DateAcquired:     timep(acquired),
		Method:           MethodDecliningBalance,
	}
	prev := decimal.Zero
	for months := 0; months <= 24; months++ {
		res := Compute(in, acquired.Add(time.Duration(months)*30*24*time.Hour))
		assert.True(t, res.Accumulated.GreaterThanOrEqual(prev),
			"month %d: accumulated %s dropped below %s", months, res.Accumulated, prev)
		prev = res.Accumulated
	}
}

func TestDecliningBalance_FirstMonth(t *testing.T) {
	acquired := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("12000"),
		SalvageValue:     dec("0"),
		AssetLifeMonths:  intp(24),
		DateAcquired:     timep(acquired),
		Method:           MethodDecliningBalance,
	}
	// one month at rate 2/24: 12000 * 0.0833... = 1000
	res := Compute(in, acquired.Add(30*24*time.Hour))
	require.Equal(t, 1, res.ElapsedMonths)
	assert.True(t, res.Accumulated.Equal(decimal.NewFromInt(1000)), "accumulated = %s", res.Accumulated)
	assert.True(t, res.CurrentValue.Equal(decimal.NewFromInt(11000)), "current = %s", res.CurrentValue)
}

func TestDecliningBalance_ZeroElapsed(t *testing.T) {
	acquired := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		DepreciableAsset: true,
		DepreciableCost:  dec("12000"),
		AssetLifeMonths:  intp(24),
		DateAcquired:     timep(acquired),
		Method:           MethodDecliningBalance,
	}
	res := Compute(in, acquired.Add(10*24*time.Hour))
	assert.Equal(t, 0, res.ElapsedMonths)
	assert.True(t, res.Monthly.IsZero())
	assert.True(t, res.Accumulated.IsZero())
	assert.True(t, res.CurrentValue.Equal(decimal.NewFromInt(12000)))
}
