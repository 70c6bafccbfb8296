package repositories

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEventRepository etkinlik veritabanı işlemleri için arayüz.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindAllByOrganizerPaginated(ctx context.Context, organizerID uint, params queryparams.ListParams) ([]models.Event, int64, error)
	FindAllByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error
	CountByOrganizer(ctx context.Context, organizerID uint) (int64, error)
}

// EventRepository IEventRepository arayüzünü uygular.
type EventRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Event]
}

// NewEventRepository yeni bir EventRepository örneği oluşturur.
func NewEventRepository() IEventRepository {
	return NewEventRepositoryTx(configsdatabase.GetDB())
}

// NewEventRepositoryTx verilen DB/transaction ile çalışan repository döndürür.
func NewEventRepositoryTx(db *gorm.DB) IEventRepository {
	base := NewBaseRepository[models.Event](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "title", "starts_at", "ends_at", "capacity"})
	return &EventRepository{db: db, base: base}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni etkinlik ekler.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.OrganizerID == 0 {
		return errors.New("geçersiz veya organizatörü eksik etkinlik oluşturulamaz")
	}
	return r.base.Create(ctx, event)
}

// FindByID etkinliği ID ile bulur.
func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := r.base.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return event, nil
}

// FindAllByOrganizerPaginated organizatörün etkinliklerini sayfalayarak bulur.
func (r *EventRepository) FindAllByOrganizerPaginated(ctx context.Context, organizerID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	if organizerID == 0 {
		return nil, 0, errors.New("geçersiz organizatör ID")
	}
	var events []models.Event
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Event{}).Where("organizer_id = ?", organizerID)
	if params.Name != "" {
		query = query.Where("title ILIKE ?", "%"+params.Name+"%")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository.Count: DB error", zap.Uint("organizerID", organizerID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	err := query.Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.Find (Paginated): DB error", zap.Uint("organizerID", organizerID), zap.Error(err))
		return nil, totalCount, err
	}
	return events, totalCount, nil
}

// FindAllByOrganizer organizatörün tüm etkinliklerini döndürür (istatistik için).
func (r *EventRepository) FindAllByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	if organizerID == 0 {
		return nil, errors.New("geçersiz organizatör ID")
	}
	var events []models.Event
	err := r.getDB(ctx).Where("organizer_id = ?", organizerID).Order("starts_at asc").Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindAllByOrganizer: DB error", zap.Uint("organizerID", organizerID), zap.Error(err))
		return nil, err
	}
	return events, nil
}

// Update etkinliği günceller.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return errors.New("güncellenecek etkinlik geçerli değil")
	}
	return r.base.Update(ctx, event)
}

// Delete etkinliği siler (soft delete, DeletedBy ile birlikte).
func (r *EventRepository) Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return errors.New("silinecek etkinlik geçerli değil")
	}
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(event).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID})
	if result.Error != nil {
		configslog.Log.Error("EventRepository.Delete: DB error", zap.Uint("id", event.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByOrganizer organizatörün etkinlik sayısını döndürür.
func (r *EventRepository) CountByOrganizer(ctx context.Context, organizerID uint) (int64, error) {
	if organizerID == 0 {
		return 0, errors.New("geçersiz organizatör ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Event{}).Where("organizer_id = ?", organizerID).Count(&count).Error
	return count, err
}

var _ IEventRepository = (*EventRepository)(nil)
