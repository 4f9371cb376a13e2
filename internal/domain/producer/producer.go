package producer

import (
	"fmt"
	"strings"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Producer is a rural producer and its farm. It is the aggregate root owning
// the harvests reported for the farm.
type Producer struct {
	shared.BaseAggregateRoot
	Name           string
	Document       string // digits only
	FarmName       string
	City           string
	State          string // federative unit code, upper case
	TotalArea      decimal.Decimal
	ArableArea     decimal.Decimal
	VegetationArea decimal.Decimal
	Harvests       []Harvest
}

// ProducerInput carries the fields needed to register a producer
type ProducerInput struct {
	Name           string
	Document       string
	FarmName       string
	City           string
	State          string
	TotalArea      decimal.Decimal
	ArableArea     decimal.Decimal
	VegetationArea decimal.Decimal
	Harvests       []HarvestReport
}

// ProducerPatch is a partial update. Nil fields are left as they are and
// harvest reports are merged into the existing ones.
type ProducerPatch struct {
	Name           *string
	Document       *string
	FarmName       *string
	City           *string
	State          *string
	TotalArea      *decimal.Decimal
	ArableArea     *decimal.Decimal
	VegetationArea *decimal.Decimal
	Harvests       []HarvestReport
}

var upper = cases.Upper(language.Und)

// NewProducer validates input and builds a new Producer aggregate
func NewProducer(input ProducerInput) (*Producer, error) {
	if !ValidateDocument(input.Document) {
		return nil, invalidDocument(input.Document)
	}
	total, arable, vegetation := RoundArea(input.TotalArea), RoundArea(input.ArableArea), RoundArea(input.VegetationArea)
	if err := validateAreas(total, arable, vegetation); err != nil {
		return nil, err
	}

	p := &Producer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(input.Name),
		Document:          NormalizeDocument(input.Document),
		FarmName:          strings.TrimSpace(input.FarmName),
		City:              strings.TrimSpace(input.City),
		State:             normalizeState(input.State),
		TotalArea:         total,
		ArableArea:        arable,
		VegetationArea:    vegetation,
	}
	if err := p.validateScalars(); err != nil {
		return nil, err
	}

	plan, err := NormalizeHarvests(input.Harvests)
	if err != nil {
		return nil, err
	}
	p.Harvests = materialize(p.ID, plan, nil)

	p.AddDomainEvent(NewProducerCreatedEvent(p))
	return p, nil
}

// Apply returns a new Producer with patch applied. The receiver is never modified,
// so a failed patch leaves the loaded aggregate exactly as it was.
func (p *Producer) Apply(patch ProducerPatch) (*Producer, error) {
	next := p.clone()

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Document != nil {
		if !ValidateDocument(*patch.Document) {
			return nil, invalidDocument(*patch.Document)
		}
		next.Document = NormalizeDocument(*patch.Document)
	}
	if patch.FarmName != nil {
		next.FarmName = strings.TrimSpace(*patch.FarmName)
	}
	if patch.City != nil {
		next.City = strings.TrimSpace(*patch.City)
	}
	if patch.State != nil {
		next.State = normalizeState(*patch.State)
	}
	if patch.TotalArea != nil {
		next.TotalArea = RoundArea(*patch.TotalArea)
	}
	if patch.ArableArea != nil {
		next.ArableArea = RoundArea(*patch.ArableArea)
	}
	if patch.VegetationArea != nil {
		next.VegetationArea = RoundArea(*patch.VegetationArea)
	}

	if err := validateAreas(next.TotalArea, next.ArableArea, next.VegetationArea); err != nil {
		return nil, err
	}
	if err := next.validateScalars(); err != nil {
		return nil, err
	}

	if patch.Harvests != nil {
		incoming, err := NormalizeHarvests(patch.Harvests)
		if err != nil {
			return nil, err
		}
		merged := MergeHarvests(PlanOf(next.Harvests), incoming)
		next.Harvests = materialize(next.ID, merged, next.Harvests)
	}

	next.Touch()
	next.AddDomainEvent(NewProducerUpdatedEvent(next))
	return next, nil
}

// WithHarvest returns a new Producer with report merged into its harvests
func (p *Producer) WithHarvest(report HarvestReport) (*Producer, *Harvest, error) {
	incoming, err := NormalizeHarvests([]HarvestReport{report})
	if err != nil {
		return nil, nil, err
	}

	next := p.clone()
	merged := MergeHarvests(PlanOf(next.Harvests), incoming)
	next.Harvests = materialize(next.ID, merged, next.Harvests)
	next.Touch()

	h := next.HarvestForYear(report.Year)
	next.AddDomainEvent(NewHarvestRecordedEvent(next, h))
	return next, h, nil
}

// WithoutHarvest returns a new Producer lacking the harvest identified by harvestID
func (p *Producer) WithoutHarvest(harvestID uuid.UUID) (*Producer, error) {
	idx := -1
	for i, h := range p.Harvests {
		if h.ID == harvestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "Harvest not found")
	}

	next := p.clone()
	removed := next.Harvests[idx]
	next.Harvests = append(next.Harvests[:idx], next.Harvests[idx+1:]...)
	next.Touch()
	next.AddDomainEvent(NewHarvestRemovedEvent(next, removed))
	return next, nil
}

// MarkDeleted records the deletion event on the aggregate
func (p *Producer) MarkDeleted() {
	p.AddDomainEvent(NewProducerDeletedEvent(p))
}

// HarvestForYear returns the harvest for year, or nil when there is none
func (p *Producer) HarvestForYear(year int) *Harvest {
	for i := range p.Harvests {
		if p.Harvests[i].Year == year {
			return &p.Harvests[i]
		}
	}
	return nil
}

// HarvestPlan returns the producer's harvests as a plan
func (p *Producer) HarvestPlan() HarvestPlan {
	return PlanOf(p.Harvests)
}

// DocumentKind returns whether the producer is registered by CPF or CNPJ
func (p *Producer) DocumentKind() DocumentKind {
	return KindOf(p.Document)
}

func (p *Producer) clone() *Producer {
	next := *p
	next.ClearDomainEvents()
	next.Harvests = cloneHarvests(p.Harvests)
	return &next
}

func (p *Producer) validateScalars() error {
	required := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"farm_name", p.FarmName},
		{"city", p.City},
		{"state", p.State},
	}
	for _, r := range required {
		if r.value == "" {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Field %s cannot be empty", r.field))
		}
	}
	if len(p.Name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Producer name cannot exceed 200 characters")
	}
	if len(p.FarmName) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Farm name cannot exceed 200 characters")
	}
	if !IsFederativeUnit(p.State) {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("State %q is not a Brazilian federative unit", p.State))
	}
	return nil
}

func normalizeState(s string) string {
	return upper.String(strings.TrimSpace(s))
}

func invalidDocument(raw string) error {
	return shared.NewDomainError("INVALID_DOCUMENT", fmt.Sprintf("Document %q is not a valid CPF or CNPJ", raw))
}
