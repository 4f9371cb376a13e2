package producer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// HarvestReport is a producer's crop report for one year as submitted by a client
type HarvestReport struct {
	Year  int
	Crops []string
}

// Harvest is the crops a producer grew in a single year.
// A producer owns at most one Harvest per year.
type Harvest struct {
	shared.BaseEntity
	ProducerID uuid.UUID
	Year       int
	Crops      []HarvestCrop
}

// HarvestCrop is one crop inside a Harvest. Names are unique per Harvest.
type HarvestCrop struct {
	shared.BaseEntity
	HarvestID uuid.UUID
	CropName  string
}

// CropNames returns the crop labels of the harvest in stored order
func (h Harvest) CropNames() []string {
	names := make([]string, len(h.Crops))
	for i, c := range h.Crops {
		names[i] = c.CropName
	}
	return names
}

// HarvestPlan maps a year to its set of crop names.
// Years and crops keep first-seen order so that output is deterministic.
type HarvestPlan struct {
	years []int
	crops map[int][]string
}

// NewHarvestPlan returns an empty plan
func NewHarvestPlan() HarvestPlan {
	return HarvestPlan{crops: make(map[int][]string)}
}

// Years returns the planned years in first-seen order
func (p HarvestPlan) Years() []int {
	out := make([]int, len(p.years))
	copy(out, p.years)
	return out
}

// Crops returns the crop names planned for year
func (p HarvestPlan) Crops(year int) []string {
	names := p.crops[year]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Has reports whether crop is planned for year
func (p HarvestPlan) Has(year int, crop string) bool {
	for _, c := range p.crops[year] {
		if c == crop {
			return true
		}
	}
	return false
}

// Len returns the number of distinct years
func (p HarvestPlan) Len() int {
	return len(p.years)
}

// ToMap flattens the plan into a plain map
func (p HarvestPlan) ToMap() map[int][]string {
	out := make(map[int][]string, len(p.years))
	for _, y := range p.years {
		out[y] = p.Crops(y)
	}
	return out
}

func (p *HarvestPlan) add(year int, crop string) {
	p.addYear(year)
	if p.Has(year, crop) {
		return
	}
	p.crops[year] = append(p.crops[year], crop)
}

func (p *HarvestPlan) addYear(year int) {
	if p.crops == nil {
		p.crops = make(map[int][]string)
	}
	if _, ok := p.crops[year]; !ok {
		p.years = append(p.years, year)
		p.crops[year] = []string{}
	}
}

// NormalizeHarvests groups reports by year and drops repeated crop names inside a year.
// Crop names are compared by exact string equality, whitespace included.
func NormalizeHarvests(reports []HarvestReport) (HarvestPlan, error) {
	plan := NewHarvestPlan()
	for _, r := range reports {
		if r.Year <= 0 {
			return HarvestPlan{}, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Harvest year %d must be a positive number", r.Year))
		}
		plan.addYear(r.Year)
		for _, crop := range r.Crops {
			if strings.TrimSpace(crop) == "" {
				return HarvestPlan{}, shared.NewDomainError("INVALID_INPUT",
					fmt.Sprintf("Crop name for harvest %d cannot be empty", r.Year))
			}
			plan.add(r.Year, crop)
		}
	}
	return plan, nil
}

// MergeHarvests unions incoming into existing per year.
// Years only present in existing are kept as they are; neither argument is modified.
func MergeHarvests(existing, incoming HarvestPlan) HarvestPlan {
	merged := NewHarvestPlan()
	for _, y := range existing.years {
		merged.addYear(y)
		for _, c := range existing.crops[y] {
			merged.add(y, c)
		}
	}
	for _, y := range incoming.years {
		merged.addYear(y)
		for _, c := range incoming.crops[y] {
			merged.add(y, c)
		}
	}
	return merged
}

// PlanOf rebuilds the plan represented by stored harvests
func PlanOf(harvests []Harvest) HarvestPlan {
	plan := NewHarvestPlan()
	for _, h := range harvests {
		plan.addYear(h.Year)
		for _, c := range h.Crops {
			plan.add(h.Year, c.CropName)
		}
	}
	return plan
}

// materialize turns a plan into Harvest entities for producerID, reusing the
// identity of harvests and crops already present in existing.
// The result is ordered by year, most recent first.
func materialize(producerID uuid.UUID, plan HarvestPlan, existing []Harvest) []Harvest {
	byYear := make(map[int]Harvest, len(existing))
	for _, h := range existing {
		byYear[h.Year] = h
	}

	now := time.Now()
	harvests := make([]Harvest, 0, plan.Len())
	for _, year := range plan.years {
		prev, found := byYear[year]
		h := Harvest{ProducerID: producerID, Year: year}
		if found {
			h.BaseEntity = prev.BaseEntity
		} else {
			h.BaseEntity = shared.NewBaseEntity()
		}

		prevCrops := make(map[string]HarvestCrop, len(prev.Crops))
		for _, c := range prev.Crops {
			prevCrops[c.CropName] = c
		}

		changed := !found
		h.Crops = make([]HarvestCrop, 0, len(plan.crops[year]))
		for _, name := range plan.crops[year] {
			if c, ok := prevCrops[name]; ok {
				c.HarvestID = h.ID
				h.Crops = append(h.Crops, c)
				continue
			}
			changed = true
			h.Crops = append(h.Crops, HarvestCrop{
				BaseEntity: shared.NewBaseEntity(),
				HarvestID:  h.ID,
				CropName:   name,
			})
		}
		if changed {
			h.UpdatedAt = now
		}
		harvests = append(harvests, h)
	}

	sortHarvests(harvests)
	return harvests
}

func sortHarvests(harvests []Harvest) {
	sort.SliceStable(harvests, func(i, j int) bool {
		return harvests[i].Year > harvests[j].Year
	})
}

func cloneHarvests(harvests []Harvest) []Harvest {
	if harvests == nil {
		return nil
	}
	out := make([]Harvest, len(harvests))
	for i, h := range harvests {
		h.Crops = append([]HarvestCrop(nil), h.Crops...)
		out[i] = h
	}
	return out
}
