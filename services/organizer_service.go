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
	"etkinlik.link/pkg/viewcache"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrganizerServiceError özel servis hataları
type OrganizerServiceError string

func (e OrganizerServiceError) Error() string { return string(e) }

const (
	ErrOrganizerNotFound      OrganizerServiceError = "organizatör profili bulunamadı"
	ErrOrganizerAlreadyExists OrganizerServiceError = "bu kullanıcı için zaten bir organizatör profili var"
	ErrOrganizerInvalidInput  OrganizerServiceError = "geçersiz profil verisi"
	ErrOrganizerForbidden     OrganizerServiceError = "bu işlem için yetkiniz yok"
)

// organizerStatsTTL istatistik cache süresi.
const organizerStatsTTL = 10 * time.Minute

// OrganizerInput profil oluşturma girdisi.
type OrganizerInput struct {
	CompanyName     string
	Description     string
	Phone           string
	Address         string
	PricePerEvent   float64
	YearsExperience int
	Specialty       string
}

// OrganizerStats organizatörün türetilmiş istatistikleri.
// Etkinlik durumları hesaplama anındaki zamana göre türetilir.
type OrganizerStats struct {
	TotalEvents        int   `json:"totalEvents"`
	UpcomingEvents     int   `json:"upcomingEvents"`
	InProgressEvents   int   `json:"inProgressEvents"`
	CompletedEvents    int   `json:"completedEvents"`
	ConfirmedAttendees int64 `json:"confirmedAttendees"`
}

// IOrganizerService organizatör profili işlemleri için arayüz.
type IOrganizerService interface {
	// CreateProfile kullanıcı için profil açar ve rolünü organizatöre yükseltir.
	CreateProfile(ctx context.Context, actorID uint, input OrganizerInput) (*models.OrganizerProfile, error)
	GetProfileByID(ctx context.Context, id uint) (*models.OrganizerProfile, error)
	GetProfileByUserID(ctx context.Context, userID uint) (*models.OrganizerProfile, error)
	GetAllProfiles(ctx context.Context) ([]models.OrganizerProfile, error)
	GetStats(ctx context.Context, profileID uint) (*OrganizerStats, error)
}

// OrganizerService IOrganizerService arayüzünü uygular.
type OrganizerService struct {
	repo           repositories.IOrganizerRepository
	userRepo       repositories.IUserRepository
	eventRepo      repositories.IEventRepository
	invitationRepo repositories.IInvitationRepository
	cache          viewcache.IStore
	now            func() time.Time
}

// NewOrganizerService varsayılan bağımlılıklarla servis oluşturur.
func NewOrganizerService() IOrganizerService {
	return NewOrganizerServiceWith(
		repositories.NewOrganizerRepository(),
		repositories.NewUserRepository(),
		repositories.NewEventRepository(),
		repositories.NewInvitationRepository(),
		viewcache.NewRedisStore(configscache.GetClient()),
	)
}

// NewOrganizerServiceWith bağımlılıkları dışarıdan alır (test ve DI için).
func NewOrganizerServiceWith(
	repo repositories.IOrganizerRepository,
	userRepo repositories.IUserRepository,
	eventRepo repositories.IEventRepository,
	invitationRepo repositories.IInvitationRepository,
	cache viewcache.IStore,
) IOrganizerService {
	return &OrganizerService{
		repo:           repo,
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// CreateProfile kullanıcı için organizatör profili oluşturur.
// Başarıda kullanıcının rolü (yönetici değilse) organizatöre yükseltilir.
func (s *OrganizerService) CreateProfile(ctx context.Context, actorID uint, input OrganizerInput) (*models.OrganizerProfile, error) {
	if actorID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrOrganizerInvalidInput)
	}
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.CompanyName == "" {
		return nil, fmt.Errorf("%w: firma adı zorunludur", ErrOrganizerInvalidInput)
	}
	if input.Phone == "" {
		return nil, fmt.Errorf("%w: telefon zorunludur", ErrOrganizerInvalidInput)
	}
	if input.PricePerEvent < 0 || input.YearsExperience < 0 {
		return nil, fmt.Errorf("%w: fiyat ve deneyim negatif olamaz", ErrOrganizerInvalidInput)
	}

	user, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: kullanıcı yok", ErrOrganizerInvalidInput)
		}
		return nil, err
	}

	if _, err := s.repo.FindByUserID(ctx, actorID); err == nil {
		return nil, ErrOrganizerAlreadyExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	profile := &models.OrganizerProfile{
		UserID:          actorID,
		CompanyName:     input.CompanyName,
		Description:     input.Description,
		Phone:           input.Phone,
		Address:         input.Address,
		PricePerEvent:   input.PricePerEvent,
		YearsExperience: input.YearsExperience,
		Specialty:       input.Specialty,
	}

	ctxWithUser := models.ContextWithUserID(ctx, actorID)
	if err := s.repo.Create(ctxWithUser, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrganizerAlreadyExists
		}
		configslog.Log.Error("Profil oluşturulurken repository hatası", zap.Uint("userID", actorID), zap.Error(err))
		return nil, err
	}

	if user.Role == models.RoleClient {
		user.Role = models.RoleOrganizer
		if err := s.userRepo.Update(ctxWithUser, user); err != nil {
			// Profil oluştu ama rol yükseltilemedi; kritik değil, loglanır.
			configslog.Log.Error("Kullanıcı rolü organizatöre yükseltilemedi", zap.Uint("userID", actorID), zap.Error(err))
		}
	}

	configslog.SLog.Infof("Organizatör profili oluşturuldu: ID %d, Firma: %s (Kullanıcı: %d)",
		profile.ID, profile.CompanyName, actorID)
	return profile, nil
}

// GetProfileByID profili ID ile getirir.
func (s *OrganizerService) GetProfileByID(ctx context.Context, id uint) (*models.OrganizerProfile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetProfileByUserID profili sahibinin kullanıcı ID'siyle getirir.
func (s *OrganizerService) GetProfileByUserID(ctx context.Context, userID uint) (*models.OrganizerProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetAllProfiles tüm profilleri getirir (herkese açık liste).
func (s *OrganizerService) GetAllProfiles(ctx context.Context) ([]models.OrganizerProfile, error) {
	return s.repo.FindAll(ctx)
}

// GetStats organizatörün etkinlik ve katılımcı istatistiklerini türetir.
// Sonuç cache'lenir; etkinlik/davet mutasyonları ilgili anahtarı düşürür.
func (s *OrganizerService) GetStats(ctx context.Context, profileID uint) (*OrganizerStats, error) {
	profile, err := s.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	key := viewcache.OrganizerStatsKey(profile.UserID)
	var cached OrganizerStats
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, viewcache.ErrCacheMiss) {
		configslog.Log.Warn("İstatistik cache okunamadı", zap.String("key", key), zap.Error(err))
	}

	events, err := s.eventRepo.FindAllByOrganizer(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	stats := OrganizerStats{TotalEvents: len(events)}
	for i := range events {
		switch events[i].Status(now) {
		case models.StatusUpcoming:
			stats.UpcomingEvents++
		case models.StatusInProgress:
			stats.InProgressEvents++
		case models.StatusCompleted:
			stats.CompletedEvents++
		}
		confirmed, err := s.invitationRepo.CountByEventIDAndState(ctx, events[i].ID, models.StateConfirmed)
		if err != nil {
			return nil, err
		}
		stats.ConfirmedAttendees += confirmed
	}

	if err := s.cache.Set(ctx, key, stats, organizerStatsTTL); err != nil {
		configslog.Log.Warn("İstatistik cache yazılamadı", zap.String("key", key), zap.Error(err))
	}
	return &stats, nil
}

var _ IOrganizerService = (*OrganizerService)(nil)
