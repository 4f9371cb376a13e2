package producer

import (
	"errors"
	"testing"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHarvests(t *testing.T) {
	t.Run("deduplicates crops within a year", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{
			{Year: 2024, Crops: []string{"Soja", "Soja", "Milho"}},
		})
		require.NoError(t, err)

		assert.Equal(t, []int{2024}, plan.Years())
		assert.Equal(t, []string{"Soja", "Milho"}, plan.Crops(2024))
	})

	t.Run("groups repeated years into one entry", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{
			{Year: 2023, Crops: []string{"Café"}},
			{Year: 2024, Crops: []string{"Soja"}},
			{Year: 2023, Crops: []string{"Milho", "Café"}},
		})
		require.NoError(t, err)

		assert.Equal(t, []int{2023, 2024}, plan.Years())
		assert.Equal(t, []string{"Café", "Milho"}, plan.Crops(2023))
		assert.Equal(t, []string{"Soja"}, plan.Crops(2024))
	})

	t.Run("crop comparison is case sensitive", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{
			{Year: 2024, Crops: []string{"soja", "Soja"}},
		})
		require.NoError(t, err)
		assert.Len(t, plan.Crops(2024), 2)
	})

	t.Run("surrounding whitespace makes a distinct crop", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{
			{Year: 2024, Crops: []string{"Soja", "Soja ", "Soja"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Soja", "Soja "}, plan.Crops(2024))
	})

	t.Run("merge keeps whitespace variants apart", func(t *testing.T) {
		existing, err := NormalizeHarvests([]HarvestReport{{Year: 2024, Crops: []string{"Soja"}}})
		require.NoError(t, err)
		incoming, err := NormalizeHarvests([]HarvestReport{{Year: 2024, Crops: []string{" Soja", "Soja"}}})
		require.NoError(t, err)

		merged := MergeHarvests(existing, incoming)
		assert.Equal(t, []string{"Soja", " Soja"}, merged.Crops(2024))
	})

	t.Run("keeps a year without crops", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{{Year: 2022}})
		require.NoError(t, err)
		assert.Equal(t, 1, plan.Len())
		assert.Empty(t, plan.Crops(2022))
	})

	t.Run("empty input yields empty plan", func(t *testing.T) {
		plan, err := NormalizeHarvests(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, plan.Len())
	})

	t.Run("rejects blank crop name", func(t *testing.T) {
		_, err := NormalizeHarvests([]HarvestReport{{Year: 2024, Crops: []string{"  "}}})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects non positive year", func(t *testing.T) {
		for _, year := range []int{0, -2024} {
			_, err := NormalizeHarvests([]HarvestReport{{Year: year, Crops: []string{"Soja"}}})
			assert.True(t, errors.Is(err, shared.ErrInvalidInput), "year %d", year)
		}
	})

	t.Run("accepts historical years", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{{Year: 1850, Crops: []string{"Café"}}})
		require.NoError(t, err)
		assert.Equal(t, []int{1850}, plan.Years())
	})
}

func TestMergeHarvests(t *testing.T) {
	existing, err := NormalizeHarvests([]HarvestReport{
		{Year: 2023, Crops: []string{"Café"}},
		{Year: 2024, Crops: []string{"Soja"}},
	})
	require.NoError(t, err)
	incoming, err := NormalizeHarvests([]HarvestReport{
		{Year: 2024, Crops: []string{"Milho", "Soja"}},
		{Year: 2025, Crops: []string{"Algodão"}},
	})
	require.NoError(t, err)

	merged := MergeHarvests(existing, incoming)

	assert.Equal(t, []int{2023, 2024, 2025}, merged.Years())
	assert.Equal(t, []string{"Café"}, merged.Crops(2023), "years absent from incoming are untouched")
	assert.Equal(t, []string{"Soja", "Milho"}, merged.Crops(2024))
	assert.Equal(t, []string{"Algodão"}, merged.Crops(2025))

	// inputs are not modified
	assert.Equal(t, []string{"Soja"}, existing.Crops(2024))
	assert.Equal(t, 2, incoming.Len())
}

func TestMergeHarvests_EmptyIncoming(t *testing.T) {
	existing, err := NormalizeHarvests([]HarvestReport{{Year: 2024, Crops: []string{"Soja"}}})
	require.NoError(t, err)

	merged := MergeHarvests(existing, NewHarvestPlan())
	assert.Equal(t, existing.ToMap(), merged.ToMap())
}

func TestMaterialize(t *testing.T) {
	producerID := uuid.New()

	t.Run("one harvest per year and one crop per name", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{
			{Year: 2023, Crops: []string{"Café"}},
			{Year: 2024, Crops: []string{"Soja", "Milho"}},
		})
		require.NoError(t, err)

		harvests := materialize(producerID, plan, nil)
		require.Len(t, harvests, 2)
		assert.Equal(t, 2024, harvests[0].Year, "most recent year first")
		assert.Equal(t, 2023, harvests[1].Year)
		for _, h := range harvests {
			assert.Equal(t, producerID, h.ProducerID)
			assert.NotEqual(t, uuid.Nil, h.ID)
			for _, c := range h.Crops {
				assert.Equal(t, h.ID, c.HarvestID)
			}
		}
		assert.Equal(t, []string{"Soja", "Milho"}, harvests[0].CropNames())
	})

	t.Run("reuses identity of existing rows", func(t *testing.T) {
		plan, err := NormalizeHarvests([]HarvestReport{{Year: 2024, Crops: []string{"Soja"}}})
		require.NoError(t, err)
		first := materialize(producerID, plan, nil)

		incoming, err := NormalizeHarvests([]HarvestReport{{Year: 2024, Crops: []string{"Milho"}}})
		require.NoError(t, err)
		second := materialize(producerID, MergeHarvests(PlanOf(first), incoming), first)

		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
		require.Len(t, second[0].Crops, 2)
		assert.Equal(t, first[0].Crops[0].ID, second[0].Crops[0].ID)
		assert.Equal(t, "Milho", second[0].Crops[1].CropName)
	})
}

func TestPlanOf(t *testing.T) {
	h := Harvest{Year: 2024, Crops: []HarvestCrop{{CropName: "Soja"}, {CropName: "Milho"}}}
	plan := PlanOf([]Harvest{h})
	assert.True(t, plan.Has(2024, "Soja"))
	assert.True(t, plan.Has(2024, "Milho"))
	assert.False(t, plan.Has(2023, "Soja"))
}
