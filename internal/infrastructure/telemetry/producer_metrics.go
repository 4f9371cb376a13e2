package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when an instrument set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// ProducerMetrics counts registry activity and tracks the latest dashboard totals.
// It satisfies the metrics ports of the producer and report services.
type ProducerMetrics struct {
	producerCreated *Counter
	producerUpdated *Counter
	producerDeleted *Counter
	harvestRecorded *Counter

	dashboardFarms *Gauge
	dashboardArea  *FloatGauge
}

// NewProducerMetrics registers the agro_* instruments on meter.
func NewProducerMetrics(meter metric.Meter) (*ProducerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	pm := &ProducerMetrics{}
	var err error

	if pm.producerCreated, err = NewCounter(meter, "agro_producer_created_total",
		"Producers registered", "{producers}"); err != nil {
		return nil, err
	}
	if pm.producerUpdated, err = NewCounter(meter, "agro_producer_updated_total",
		"Producer updates", "{producers}"); err != nil {
		return nil, err
	}
	if pm.producerDeleted, err = NewCounter(meter, "agro_producer_deleted_total",
		"Producers removed", "{producers}"); err != nil {
		return nil, err
	}
	if pm.harvestRecorded, err = NewCounter(meter, "agro_harvest_recorded_total",
		"Harvest reports recorded", "{harvests}"); err != nil {
		return nil, err
	}
	if pm.dashboardFarms, err = NewGauge(meter, "agro_dashboard_farms",
		"Farms counted by the last dashboard computation", "{farms}"); err != nil {
		return nil, err
	}
	if pm.dashboardArea, err = NewFloatGauge(meter, "agro_dashboard_total_area",
		"Total hectares counted by the last dashboard computation", "ha"); err != nil {
		return nil, err
	}

	return pm, nil
}

// RecordProducerCreated counts a registration by document kind (CPF or CNPJ).
func (pm *ProducerMetrics) RecordProducerCreated(ctx context.Context, documentKind string) {
	pm.producerCreated.Inc(ctx, AttrDocumentKind.String(documentKind))
}

func (pm *ProducerMetrics) RecordProducerUpdated(ctx context.Context) {
	pm.producerUpdated.Inc(ctx)
}

func (pm *ProducerMetrics) RecordProducerDeleted(ctx context.Context) {
	pm.producerDeleted.Inc(ctx)
}

// RecordHarvestRecorded counts a harvest report by its year.
func (pm *ProducerMetrics) RecordHarvestRecorded(ctx context.Context, year int) {
	pm.harvestRecorded.Inc(ctx, AttrHarvestYear.Int(year))
}

// RecordDashboardSnapshot publishes the totals of a freshly computed dashboard.
func (pm *ProducerMetrics) RecordDashboardSnapshot(ctx context.Context, totalFarms int, totalArea float64) {
	pm.dashboardFarms.Record(ctx, int64(totalFarms))
	pm.dashboardArea.Record(ctx, totalArea)
}
