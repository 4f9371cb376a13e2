package report

import (
	"testing"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProducer(t *testing.T, document, state string, total, arable, vegetation int64, harvests ...producer.HarvestReport) producer.Producer {
	t.Helper()
	p, err := producer.NewProducer(producer.ProducerInput{
		Name:           "Produtor",
		Document:       document,
		FarmName:       "Fazenda",
		City:           "Cidade",
		State:          state,
		TotalArea:      decimal.NewFromInt(total),
		ArableArea:     decimal.NewFromInt(arable),
		VegetationArea: decimal.NewFromInt(vegetation),
		Harvests:       harvests,
	})
	require.NoError(t, err)
	return *p
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TotalFarms)
	assert.True(t, s.TotalArea.IsZero())
	assert.NotNil(t, s.StateCount)
	assert.Empty(t, s.StateCount)
	assert.NotNil(t, s.CropCount)
	assert.Empty(t, s.CropCount)
	assert.NotNil(t, s.HarvestsByYear)
	assert.Empty(t, s.HarvestsByYear)
	assert.True(t, s.SoilUse.TotalArea.IsZero())
	assert.True(t, s.SoilUse.ArableArea.IsZero())
	assert.True(t, s.SoilUse.VegetationArea.IsZero())
}

func TestSummarize_DistinctProducerCounts(t *testing.T) {
	a := newProducer(t, "52998224725", "MT", 100, 60, 30,
		producer.HarvestReport{Year: 2023, Crops: []string{"Soja"}},
		producer.HarvestReport{Year: 2024, Crops: []string{"Soja"}},
	)
	b := newProducer(t, "11222333000181", "GO", 50, 20, 10,
		producer.HarvestReport{Year: 2024, Crops: []string{"Soja", "Milho"}},
	)

	s := Summarize([]producer.Producer{a, b})

	assert.Equal(t, 2, s.TotalFarms)
	assert.Equal(t, 2, s.CropCount["Soja"])
	assert.Equal(t, 1, s.CropCount["Milho"])
	assert.Equal(t, 2, s.HarvestsByYear[2024]["Soja"])
	assert.Equal(t, 1, s.HarvestsByYear[2023]["Soja"])
	assert.Equal(t, 1, s.HarvestsByYear[2024]["Milho"])
	assert.Equal(t, map[string]int{"MT": 1, "GO": 1}, s.StateCount)
}

func TestSummarize_SoilUse(t *testing.T) {
	a := newProducer(t, "52998224725", "SP", 100, 60, 30)
	b := newProducer(t, "11144477735", "SP", 40, 10, 5)

	s := Summarize([]producer.Producer{a, b})

	assert.True(t, s.TotalArea.Equal(decimal.NewFromInt(140)))
	assert.True(t, s.SoilUse.TotalArea.Equal(decimal.NewFromInt(140)))
	assert.True(t, s.SoilUse.ArableArea.Equal(decimal.NewFromInt(70)))
	assert.True(t, s.SoilUse.VegetationArea.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, 2, s.StateCount["SP"])
}

func TestSummarize_OrderIndependent(t *testing.T) {
	a := newProducer(t, "52998224725", "MT", 100, 60, 30,
		producer.HarvestReport{Year: 2024, Crops: []string{"Soja", "Milho"}},
	)
	b := newProducer(t, "11222333000181", "PR", 80, 40, 20,
		producer.HarvestReport{Year: 2022, Crops: []string{"Trigo"}},
	)

	forward := Summarize([]producer.Producer{a, b})
	backward := Summarize([]producer.Producer{b, a})

	assert.Equal(t, forward.TotalFarms, backward.TotalFarms)
	assert.True(t, forward.TotalArea.Equal(backward.TotalArea))
	assert.Equal(t, forward.StateCount, backward.StateCount)
	assert.Equal(t, forward.CropCount, backward.CropCount)
	assert.Equal(t, forward.HarvestsByYear, backward.HarvestsByYear)
}

func TestSummarize_HarvestYearWithoutCrops(t *testing.T) {
	a := newProducer(t, "52998224725", "MT", 100, 60, 30,
		producer.HarvestReport{Year: 2022},
		producer.HarvestReport{Year: 2024, Crops: []string{"Soja"}},
	)

	s := Summarize([]producer.Producer{a})

	require.Contains(t, s.HarvestsByYear, 2022)
	assert.Empty(t, s.HarvestsByYear[2022])
	assert.Equal(t, 1, s.HarvestsByYear[2024]["Soja"])
	assert.NotContains(t, s.CropCount, "")
}
