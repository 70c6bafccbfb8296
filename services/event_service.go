package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"etkinlik.link/configs/configscache"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/viewcache"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// EventServiceError özel servis hataları
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound        EventServiceError = "etkinlik bulunamadı"
	ErrEventForbidden       EventServiceError = "bu işlem için yetkiniz yok"
	ErrEventInvalidInput    EventServiceError = "geçersiz etkinlik verisi"
	ErrEventTitleTooShort   EventServiceError = "etkinlik başlığı en az 3 karakter olmalıdır"
	ErrEventCapacityInvalid EventServiceError = "kapasite 1 ile 10000 arasında olmalıdır"
	ErrEventDatesInvalid    EventServiceError = "bitiş zamanı başlangıçtan sonra olmalıdır"
	ErrEventStartInPast     EventServiceError = "başlangıç zamanı gelecekte olmalıdır"
	ErrEventNotEditable     EventServiceError = "yalnızca yaklaşan etkinlikler düzenlenebilir"
	ErrEventNotDeletable    EventServiceError = "yalnızca yaklaşan etkinlikler silinebilir"
)

const (
	eventTitleMinLen = 3
	eventCapacityMax = 10000
)

// EventInput oluşturma/güncelleme girdisi.
type EventInput struct {
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Location    string
	Capacity    int
}

// IEventService etkinlik işlemleri için arayüz.
type IEventService interface {
	CreateEvent(ctx context.Context, actorID uint, input EventInput) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint) (*models.Event, error)
	GetEventsByOrganizer(ctx context.Context, organizerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateEvent(ctx context.Context, actorID, id uint, input EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, actorID, id uint) error
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	repo     repositories.IEventRepository
	userRepo repositories.IUserRepository
	cache    viewcache.IStore
	now      func() time.Time
}

// NewEventService varsayılan bağımlılıklarla servis oluşturur.
func NewEventService() IEventService {
	return NewEventServiceWith(
		repositories.NewEventRepository(),
		repositories.NewUserRepository(),
		viewcache.NewRedisStore(configscache.GetClient()),
	)
}

// NewEventServiceWith bağımlılıkları dışarıdan alır (test ve DI için).
func NewEventServiceWith(repo repositories.IEventRepository, userRepo repositories.IUserRepository, cache viewcache.IStore) IEventService {
	return &EventService{repo: repo, userRepo: userRepo, cache: cache, now: time.Now}
}

// ValidateEventInput temel validasyonları yapar. Başlangıç < bitiş kuralı
// yalnızca oluşturma/düzenleme anında uygulanır, okumada asla.
// requireFutureStart oluşturmada true'dur; düzenlemede geçmişe kaymış ama
// henüz başlamamış bir kaydı kilitlememek için false geçilir.
func ValidateEventInput(input EventInput, now time.Time, requireFutureStart bool) error {
	if len(strings.TrimSpace(input.Title)) < eventTitleMinLen {
		return ErrEventTitleTooShort
	}
	if input.Capacity <= 0 || input.Capacity > eventCapacityMax {
		return ErrEventCapacityInvalid
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return fmt.Errorf("%w: başlangıç ve bitiş zamanı zorunludur", ErrEventInvalidInput)
	}
	if !input.EndsAt.After(input.StartsAt) {
		return ErrEventDatesInvalid
	}
	if requireFutureStart && input.StartsAt.Before(now) {
		return ErrEventStartInPast
	}
	return nil
}

// CreateEvent yeni etkinlik oluşturur. Yalnızca organizatör rolündeki
// kullanıcılar (ve yöneticiler) etkinlik açabilir.
func (s *EventService) CreateEvent(ctx context.Context, actorID uint, input EventInput) (*models.Event, error) {
	if actorID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrEventInvalidInput)
	}
	now := s.now().UTC()
	if err := ValidateEventInput(input, now, true); err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, ErrEventForbidden
	}
	if !actor.IsOrganizer() && !actor.IsAdmin() {
		return nil, ErrEventForbidden
	}

	event := &models.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Location:    input.Location,
		Capacity:    input.Capacity,
		OrganizerID: actorID,
	}

	ctxWithUser := models.ContextWithUserID(ctx, actorID)
	if err := s.repo.Create(ctxWithUser, event); err != nil {
		configslog.Log.Error("Etkinlik oluşturulurken repository hatası", zap.Uint("actorID", actorID), zap.Error(err))
		return nil, err
	}

	s.invalidateOrganizerViews(ctx, event.OrganizerID)
	configslog.SLog.Infof("Etkinlik oluşturuldu: ID %d, Başlık: %s (Organizatör: %d)", event.ID, event.Title, actorID)
	return event, nil
}

// GetEventByID etkinliği getirir. Etkinlik detayları herkese açıktır.
func (s *EventService) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetEventsByOrganizer organizatörün etkinliklerini sayfalayarak getirir.
func (s *EventService) GetEventsByOrganizer(ctx context.Context, organizerID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if organizerID == 0 {
		return nil, fmt.Errorf("%w: geçersiz organizatör ID", ErrEventInvalidInput)
	}
	params.Validate()

	events, totalCount, err := s.repo.FindAllByOrganizerPaginated(ctx, organizerID, params)
	if err != nil {
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateEvent etkinliği günceller. Yalnızca sahibi (veya yönetici) ve
// yalnızca etkinlik henüz başlamamışken.
func (s *EventService) UpdateEvent(ctx context.Context, actorID, id uint, input EventInput) (*models.Event, error) {
	if actorID == 0 || id == 0 {
		return nil, fmt.Errorf("%w: eksik ID", ErrEventInvalidInput)
	}
	now := s.now().UTC()
	if err := ValidateEventInput(input, now, false); err != nil {
		return nil, err
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := s.authorizeOwner(ctx, actorID, event); err != nil {
		return nil, err
	}
	if !event.CanEdit(now) {
		return nil, ErrEventNotEditable
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Description = input.Description
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	event.Location = input.Location
	event.Capacity = input.Capacity

	ctxWithUser := models.ContextWithUserID(ctx, actorID)
	if err := s.repo.Update(ctxWithUser, event); err != nil {
		configslog.Log.Error("Etkinlik güncellenirken repository hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateOrganizerViews(ctx, event.OrganizerID)
	configslog.SLog.Infof("Etkinlik güncellendi: ID %d (Güncelleyen: %d)", id, actorID)
	return event, nil
}

// DeleteEvent etkinliği siler (soft delete). Yalnızca sahibi (veya yönetici)
// ve yalnızca etkinlik henüz başlamamışken.
func (s *EventService) DeleteEvent(ctx context.Context, actorID, id uint) error {
	if actorID == 0 || id == 0 {
		return fmt.Errorf("%w: eksik ID", ErrEventInvalidInput)
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.authorizeOwner(ctx, actorID, event); err != nil {
		return err
	}
	if !event.CanDelete(s.now().UTC()) {
		return ErrEventNotDeletable
	}

	ctxWithUser := models.ContextWithUserID(ctx, actorID)
	if err := s.repo.Delete(ctxWithUser, event, actorID); err != nil {
		configslog.Log.Error("Etkinlik silinirken repository hatası", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.invalidateOrganizerViews(ctx, event.OrganizerID)
	configslog.SLog.Infof("Etkinlik silindi: ID %d (Silen: %d)", id, actorID)
	return nil
}

// authorizeOwner aktörün etkinliğin sahibi ya da yönetici olduğunu doğrular.
func (s *EventService) authorizeOwner(ctx context.Context, actorID uint, event *models.Event) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return ErrEventForbidden
	}
	if !actor.IsAdmin() && event.OrganizerID != actorID {
		return ErrEventForbidden
	}
	return nil
}

func (s *EventService) invalidateOrganizerViews(ctx context.Context, organizerID uint) {
	key := viewcache.OrganizerStatsKey(organizerID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		configslog.Log.Warn("Organizatör görünümleri invalidate edilemedi", zap.String("key", key), zap.Error(err))
	}
}

var _ IEventService = (*EventService)(nil)
