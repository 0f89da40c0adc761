package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

func txt(s string) models.CellValue { return models.Text(s) }

// headerGrid is a two-row header over one data row:
//
//	Region | (merged) | Total
//	North  | South    | (merged)
//	1      | 2        | 3
func headerGrid() models.Grid {
	return models.Grid{
		{txt("Region"), models.Empty(), txt("Total")},
		{txt("North"), txt("South"), models.Empty()},
		{models.Integer(1), models.Integer(2), models.Integer(3)},
	}
}

var headerRanges = []models.MergedRange{
	{StartRow: 0, EndRow: 0, StartCol: 0, EndCol: 1},
	{StartRow: 0, EndRow: 1, StartCol: 2, EndCol: 2},
}

func TestResolveStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		want     models.Grid
	}{
		{
			name:     "expand value",
			strategy: ExpandValue,
			want: models.Grid{
				{txt("Region"), txt("Region"), txt("Total")},
				{txt("North"), txt("South"), txt("Total")},
				{models.Integer(1), models.Integer(2), models.Integer(3)},
			},
		},
		{
			name:     "keep top left",
			strategy: KeepTopLeft,
			want: models.Grid{
				{txt("Region"), models.Empty(), txt("Total")},
				{txt("North"), txt("South"), models.Empty()},
				{models.Integer(1), models.Integer(2), models.Integer(3)},
			},
		},
		{
			name:     "flatten to string",
			strategy: FlattenToString,
			want: models.Grid{
				{txt("Region"), txt("Region"), txt("Total")},
				{txt("North"), txt("South"), txt("Total")},
				{models.Integer(1), models.Integer(2), models.Integer(3)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Strategy = tt.strategy
			res := Resolve(headerGrid(), headerRanges, opts)
			assertGrid(t, tt.want, res.Grid)
			assert.Empty(t, res.Warnings)
			assert.Equal(t, models.ComplexityComplex, res.Complexity.Level)
		})
	}
}

func TestResolveFlattenJoins(t *testing.T) {
	grid := models.Grid{
		{txt("Sales"), txt("2024")},
		{models.Empty(), models.Integer(7)},
	}
	ranges := []models.MergedRange{{StartRow: 0, EndRow: 1, StartCol: 0, EndCol: 1}}

	opts := DefaultOptions()
	opts.Strategy = FlattenToString
	opts.Separator = " / "
	res := Resolve(grid, ranges, opts)
	for _, row := range res.Grid {
		for _, v := range row {
			assert.True(t, txt("Sales / 2024 / 7").Equal(v), "got %v", v)
		}
	}
}

func TestResolveTreatAsHeader(t *testing.T) {
	grid := models.Grid{
		{txt("Q1"), txt("Jan")},
		{models.Integer(10), models.Empty()},
	}
	ranges := []models.MergedRange{
		{StartRow: 0, EndRow: 0, StartCol: 0, EndCol: 1},
		{StartRow: 1, EndRow: 1, StartCol: 0, EndCol: 1},
	}

	opts := DefaultOptions()
	opts.Strategy = TreatAsHeader
	opts.HeaderRows = 1
	res := Resolve(grid, ranges, opts)

	want := models.Grid{
		{txt("Q1 Jan"), txt("Q1 Jan")},
		{models.Integer(10), models.Integer(10)},
	}
	assertGrid(t, want, res.Grid)
	assert.Equal(t, models.ComplexitySimple, res.Complexity.Level)
}

func TestResolveLeavesInputUntouched(t *testing.T) {
	grid := headerGrid()
	before := grid.Clone()

	res := Resolve(grid, headerRanges, DefaultOptions())
	assertGrid(t, before, grid)
	assert.False(t, res.Grid[0][1].Equal(grid[0][1]))
}

func TestResolveGrowsRaggedGrid(t *testing.T) {
	grid := models.Grid{{txt("Title")}}
	ranges := []models.MergedRange{{StartRow: 0, EndRow: 1, StartCol: 0, EndCol: 2}}

	res := Resolve(grid, ranges, DefaultOptions())
	require.Len(t, res.Grid, 2)
	for _, row := range res.Grid {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.True(t, txt("Title").Equal(v))
		}
	}
	assert.Len(t, grid, 1)
	assert.Len(t, grid[0], 1)
}

func TestResolveLaterRangeWins(t *testing.T) {
	grid := models.Grid{{txt("a"), txt("b"), txt("c")}}
	ranges := []models.MergedRange{
		{StartRow: 0, EndRow: 0, StartCol: 0, EndCol: 1},
		{StartRow: 0, EndRow: 0, StartCol: 1, EndCol: 2},
	}
	res := Resolve(grid, ranges, DefaultOptions())
	assertGrid(t, models.Grid{{txt("a"), txt("a"), txt("a")}}, res.Grid)
}

func TestResolveChaosWarning(t *testing.T) {
	grid := make(models.Grid, 10)
	for i := range grid {
		grid[i] = make([]models.CellValue, 10)
	}
	res := Resolve(grid, rangesCovering(21), DefaultOptions())
	assert.Equal(t, models.ComplexityChaos, res.Complexity.Level)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, models.ComplexityChaos, res.Warnings[0].Complexity.Level)
	assert.Len(t, res.Grid, 10)
}

func TestResolvePanics(t *testing.T) {
	inverted := []models.MergedRange{{StartRow: 2, EndRow: 1, StartCol: 0, EndCol: 0}}
	assert.Panics(t, func() { Resolve(headerGrid(), inverted, DefaultOptions()) })

	opts := DefaultOptions()
	opts.Strategy = "sideways"
	assert.Panics(t, func() { Resolve(headerGrid(), nil, opts) })
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]Strategy{
		"expand_value":      ExpandValue,
		"keep_top_left":     KeepTopLeft,
		"FLATTEN_TO_STRING": FlattenToString,
		" treat_as_header ": TreatAsHeader,
		"":                  ExpandValue,
	} {
		got, err := ParseStrategy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}
	_, err := ParseStrategy("merge_all")
	assert.Error(t, err)
}

func assertGrid(t *testing.T, want, got models.Grid) {
	t.Helper()
	require.Len(t, got, len(want))
	for r := range want {
		require.Len(t, got[r], len(want[r]), "row %d", r)
		for c := range want[r] {
			assert.True(t, want[r][c].Equal(got[r][c]), "cell (%d,%d): want %v got %v", r, c, want[r][c], got[r][c])
		}
	}
}
