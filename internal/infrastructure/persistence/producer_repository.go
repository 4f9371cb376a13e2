package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProducerRepository implements ProducerRepository using GORM
type GormProducerRepository struct {
	db *gorm.DB
}

// NewGormProducerRepository creates a new GormProducerRepository
func NewGormProducerRepository(db *gorm.DB) *GormProducerRepository {
	return &GormProducerRepository{db: db}
}

var errDuplicateDocument = shared.NewDomainError("ALREADY_EXISTS", "A producer with this document already exists")

// FindByID finds a producer by its ID with harvests and crops loaded
func (r *GormProducerRepository) FindByID(ctx context.Context, id uuid.UUID) (*producer.Producer, error) {
	var model models.ProducerModel
	if err := r.withHarvests(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all producers matching the filter
func (r *GormProducerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]producer.Producer, error) {
	var rows []models.ProducerModel
	query := r.applyFilter(r.withHarvests(r.db.WithContext(ctx).Model(&models.ProducerModel{})), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducers(rows), nil
}

// FindAllForSummary returns every producer with its harvests, oldest first
func (r *GormProducerRepository) FindAllForSummary(ctx context.Context) ([]producer.Producer, error) {
	var rows []models.ProducerModel
	if err := r.withHarvests(r.db.WithContext(ctx)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducers(rows), nil
}

// Count counts producers matching the filter
func (r *GormProducerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProducerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByDocument checks if another producer is registered with the document
func (r *GormProducerRepository) ExistsByDocument(ctx context.Context, document string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProducerModel{}).Where("document = ?", document)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates the producer. Harvests and crops missing from the
// aggregate are deleted and the remaining ones are upserted.
func (r *GormProducerRepository) Save(ctx context.Context, p *producer.Producer) error {
	model := models.ProducerModelFromDomain(p)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}

		harvestIDs := make([]uuid.UUID, len(model.Harvests))
		for i := range model.Harvests {
			harvestIDs[i] = model.Harvests[i].ID
		}
		if err := r.deleteStaleHarvests(tx, model.ID, harvestIDs); err != nil {
			return err
		}

		for i := range model.Harvests {
			harvest := &model.Harvests[i]
			harvest.ProducerID = model.ID
			if err := tx.Omit(clause.Associations).Save(harvest).Error; err != nil {
				return err
			}

			cropIDs := make([]uuid.UUID, len(harvest.Crops))
			for j := range harvest.Crops {
				cropIDs[j] = harvest.Crops[j].ID
			}
			if err := deleteStaleCrops(tx, harvest.ID, cropIDs); err != nil {
				return err
			}
			for j := range harvest.Crops {
				harvest.Crops[j].HarvestID = harvest.ID
				if err := tx.Save(&harvest.Crops[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errDuplicateDocument
	}
	return err
}

// Delete deletes a producer together with its harvests and crops
func (r *GormProducerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.deleteStaleHarvests(tx, id, nil); err != nil {
			return err
		}
		result := tx.Delete(&models.ProducerModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// deleteStaleHarvests removes the producer's harvests whose IDs are not in keep.
// Crops are removed first so that the result does not depend on FK cascades.
func (r *GormProducerRepository) deleteStaleHarvests(tx *gorm.DB, producerID uuid.UUID, keep []uuid.UUID) error {
	stale := tx.Model(&models.HarvestModel{}).Select("id").Where("producer_id = ?", producerID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := tx.Where("harvest_id IN (?)", stale).Delete(&models.HarvestCropModel{}).Error; err != nil {
		return err
	}

	query := tx.Where("producer_id = ?", producerID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&models.HarvestModel{}).Error
}

func deleteStaleCrops(tx *gorm.DB, harvestID uuid.UUID, keep []uuid.UUID) error {
	query := tx.Where("harvest_id = ?", harvestID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&models.HarvestCropModel{}).Error
}

func (r *GormProducerRepository) withHarvests(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Harvests", func(db *gorm.DB) *gorm.DB {
			return db.Order("year DESC")
		}).
		Preload("Harvests.Crops", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// applyFilter applies filter options, ordering and pagination
func (r *GormProducerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query.Clauses(producerOrder(filter.OrderBy, filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProducerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(farm_name) LIKE ? OR LOWER(city) LIKE ? OR document LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	return query
}

func toDomainProducers(rows []models.ProducerModel) []producer.Producer {
	producers := make([]producer.Producer, len(rows))
	for i := range rows {
		producers[i] = *rows[i].ToDomain()
	}
	return producers
}
