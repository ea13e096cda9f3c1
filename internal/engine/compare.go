package engine

import (
	"fmt"

	"github.com/piwi3910/BlockPack/internal/model"
	"github.com/piwi3910/BlockPack/internal/order"
)

// ComparisonScenario defines a named set of settings to compare. The
// scenario's SortKey orders a private copy of the blocks before packing.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackResult
	BinsUsed      int
	Placed        int
	Efficiency    float64
	WastePercent  float64
	UnplacedCount int
	Err           error
}

// CompareScenarios packs blocks once per scenario and returns the results
// in scenario order. A scenario that fails records its error and does not
// stop the others.
func CompareScenarios(scenarios []ComparisonScenario, blocks []model.Block, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cr := ComparisonResult{Scenario: scenario}

		key, err := order.ParseKey(scenario.Settings.SortKey)
		if err != nil {
			cr.Err = err
			results = append(results, cr)
			continue
		}

		result, err := New(scenario.Settings, opts...).Pack(order.Sorted(blocks, key))
		if err != nil {
			cr.Err = err
			results = append(results, cr)
			continue
		}

		cr.Result = result
		cr.BinsUsed = result.BinCount()
		cr.Placed = result.PlacedCount()
		cr.Efficiency = result.TotalEfficiency()
		cr.WastePercent = 100.0 - cr.Efficiency
		cr.UnplacedCount = len(result.Unplaced)
		results = append(results, cr)
	}

	return results
}

// Best returns the index of the strongest successful result: fewest
// unplaced blocks, then fewest bins, then highest efficiency. It returns -1
// when every scenario failed.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || better(r, results[best]) {
			best = i
		}
	}
	return best
}

func better(a, b ComparisonResult) bool {
	if a.UnplacedCount != b.UnplacedCount {
		return a.UnplacedCount < b.UnplacedCount
	}
	if a.BinsUsed != b.BinsUsed {
		return a.BinsUsed < b.BinsUsed
	}
	return a.Efficiency > b.Efficiency
}

// BuildDefaultScenarios generates comparison scenarios around the base
// settings: the base itself, every other sort key, and the other packing
// mode when a fixed bin size is known.
func BuildDefaultScenarios(base model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, key := range order.Keys() {
		if string(key) == base.SortKey {
			continue
		}
		alt := base
		alt.SortKey = string(key)
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Sort by %s", key),
			Settings: alt,
		})
	}

	altMode := base
	switch base.Mode {
	case model.ModeMultiBin:
		altMode.Mode = model.ModeGrowing
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Growing Bin",
			Settings: altMode,
		})
	default:
		if base.BinWidth > 0 && base.BinHeight > 0 {
			altMode.Mode = model.ModeMultiBin
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("Fixed Bins %dx%d", base.BinWidth, base.BinHeight),
				Settings: altMode,
			})
		}
	}

	return scenarios
}
