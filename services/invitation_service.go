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
	"etkinlik.link/pkg/inflight"
	"etkinlik.link/pkg/viewcache"
	"etkinlik.link/repositories"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InvitationServiceError özel servis hataları
type InvitationServiceError string

func (e InvitationServiceError) Error() string { return string(e) }

const (
	ErrInvitationNotFound      InvitationServiceError = "davet bulunamadı"
	ErrInvitationStateInvalid  InvitationServiceError = "davet bu durumda bu işleme izin vermiyor"
	ErrInvitationForbidden     InvitationServiceError = "bu işlem için yetkiniz yok"
	ErrInvitationAlreadyExists InvitationServiceError = "bu kullanıcı için zaten bir davet kaydı var"
	ErrInvitationEventClosed   InvitationServiceError = "tamamlanmış veya iptal edilmiş etkinliğe davet işlemi yapılamaz"
	ErrInvitationSelfInvite    InvitationServiceError = "organizatör kendi etkinliğine davetli olamaz"
	ErrEventCapacityFull       InvitationServiceError = "etkinlik kapasitesi dolu"
	ErrInvInvalidInput         InvitationServiceError = "geçersiz girdi verisi"
)

// invitationMessageMaxLen davet mesajı üst sınırı (varchar(500) ile uyumlu).
const invitationMessageMaxLen = 500

// invitationListTTL liste görünümü cache süresi.
const invitationListTTL = 5 * time.Minute

// InvitationGroups bir etkinliğin davet listesinin pano görünümü için
// gruplanmış hali. Saf bir gruplamadır, yan etkisi yoktur.
type InvitationGroups struct {
	PendingApproval []models.EventInvitation `json:"pendingApproval"`
	Confirmed       []models.EventInvitation `json:"confirmed"`
	Other           []models.EventInvitation `json:"other"`
}

// IInvitationService davet yaşam döngüsü işlemleri için arayüz.
type IInvitationService interface {
	// InviteUser organizatörün davet göndermesi. Kayıt PendingResponse ile doğar.
	InviteUser(ctx context.Context, actorID, eventID, inviteeID uint, message string) (*models.EventInvitation, error)
	// SelfApply kullanıcının kendi başvurusu. Kayıt PendingApproval ile doğar.
	SelfApply(ctx context.Context, actorID, eventID uint, message string) (*models.EventInvitation, error)

	// Geçiş operasyonları. Başarıda durum + RespondedAt güncellenir ve
	// bağımlı liste cache'leri invalidate edilir.
	Accept(ctx context.Context, actorID, invitationID uint) error
	Reject(ctx context.Context, actorID, invitationID uint) error
	Approve(ctx context.Context, actorID, invitationID uint) error
	RejectByOrganizer(ctx context.Context, actorID, invitationID uint) error

	GetInvitationsForEvent(ctx context.Context, actorID, eventID uint) ([]models.EventInvitation, error)
	GetInvitationsForInvitee(ctx context.Context, actorID, inviteeID uint) ([]models.EventInvitation, error)

	// IsTransitionInFlight bu davet için bir geçiş isteği halen sürüyor mu?
	// Arayüz tarafı çifte gönderimi engellemek için kullanır.
	IsTransitionInFlight(invitationID uint) bool
}

// InvitationService IInvitationService arayüzünü uygular.
type InvitationService struct {
	repo      repositories.IInvitationRepository
	eventRepo repositories.IEventRepository
	userRepo  repositories.IUserRepository
	cache     viewcache.IStore
	inflight  *inflight.Tracker
	now       func() time.Time
}

// NewInvitationService varsayılan bağımlılıklarla servis oluşturur.
func NewInvitationService() IInvitationService {
	return NewInvitationServiceWith(
		repositories.NewInvitationRepository(),
		repositories.NewEventRepository(),
		repositories.NewUserRepository(),
		viewcache.NewRedisStore(configscache.GetClient()),
		inflight.NewTracker(),
	)
}

// NewInvitationServiceWith bağımlılıkları dışarıdan alır (test ve DI için).
func NewInvitationServiceWith(
	repo repositories.IInvitationRepository,
	eventRepo repositories.IEventRepository,
	userRepo repositories.IUserRepository,
	cache viewcache.IStore,
	tracker *inflight.Tracker,
) IInvitationService {
	return &InvitationService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		cache:     cache,
		inflight:  tracker,
		now:       time.Now,
	}
}

// --- Oluşturma ---

// InviteUser organizatörün bir kullanıcıyı etkinliğe davet etmesi.
func (s *InvitationService) InviteUser(ctx context.Context, actorID, eventID, inviteeID uint, message string) (*models.EventInvitation, error) {
	if actorID == 0 || eventID == 0 || inviteeID == 0 {
		return nil, fmt.Errorf("%w: eksik ID", ErrInvInvalidInput)
	}
	event, actor, err := s.loadEventAndActor(ctx, eventID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && event.OrganizerID != actorID {
		return nil, ErrInvitationForbidden
	}
	if _, err := s.userRepo.FindByID(ctx, inviteeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: davet edilecek kullanıcı yok", ErrInvInvalidInput)
		}
		return nil, err
	}
	return s.createInvitation(ctx, actorID, event, inviteeID, message, false)
}

// SelfApply kullanıcının bir etkinliğe katılım başvurusu yapması.
// Davetli kimliği çağıranın kendisidir.
func (s *InvitationService) SelfApply(ctx context.Context, actorID, eventID uint, message string) (*models.EventInvitation, error) {
	if actorID == 0 || eventID == 0 {
		return nil, fmt.Errorf("%w: eksik ID", ErrInvInvalidInput)
	}
	event, _, err := s.loadEventAndActor(ctx, eventID, actorID)
	if err != nil {
		return nil, err
	}
	return s.createInvitation(ctx, actorID, event, actorID, message, true)
}

func (s *InvitationService) loadEventAndActor(ctx context.Context, eventID, actorID uint) (*models.Event, *models.User, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvitationNotFound
		}
		return nil, nil, err
	}
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvitationForbidden
		}
		return nil, nil, err
	}
	return event, actor, nil
}

func (s *InvitationService) createInvitation(ctx context.Context, actorID uint, event *models.Event, inviteeID uint, message string, selfApplication bool) (*models.EventInvitation, error) {
	message = strings.TrimSpace(message)
	if len(message) > invitationMessageMaxLen {
		return nil, fmt.Errorf("%w: mesaj %d karakteri aşamaz", ErrInvInvalidInput, invitationMessageMaxLen)
	}
	if inviteeID == event.OrganizerID {
		return nil, ErrInvitationSelfInvite
	}

	now := s.now().UTC()
	switch event.Status(now) {
	case models.StatusCompleted, models.StatusCancelled:
		return nil, ErrInvitationEventClosed
	}

	exists, err := s.repo.ExistsForEventAndInvitee(ctx, event.ID, inviteeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrInvitationAlreadyExists
	}

	initialState := models.StatePendingResponse
	if selfApplication {
		initialState = models.StatePendingApproval
	}
	invitation := &models.EventInvitation{
		EventID:           event.ID,
		InviteeID:         inviteeID,
		State:             initialState,
		IsSelfApplication: selfApplication,
		InvitedAt:         now,
		Message:           message,
	}

	ctxWithUser := models.ContextWithUserID(ctx, actorID)
	if err := s.repo.Create(ctxWithUser, invitation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrInvitationAlreadyExists
		}
		configslog.Log.Error("Davet oluşturulurken repository hatası",
			zap.Uint("eventID", event.ID), zap.Uint("inviteeID", inviteeID), zap.Error(err))
		return nil, err
	}

	s.invalidateInvitationViews(ctx, event.ID, inviteeID, event.OrganizerID)
	configslog.SLog.Infof("Davet oluşturuldu: ID %d, Etkinlik %d, Davetli %d, Durum: %s",
		invitation.ID, event.ID, inviteeID, invitation.State)
	return invitation, nil
}

// --- Geçişler ---

// Accept davetlinin organizatör davetini kabul etmesi.
func (s *InvitationService) Accept(ctx context.Context, actorID, invitationID uint) error {
	return s.applyTransition(ctx, actorID, invitationID, models.ActionAccept)
}

// Reject davetlinin organizatör davetini reddetmesi.
func (s *InvitationService) Reject(ctx context.Context, actorID, invitationID uint) error {
	return s.applyTransition(ctx, actorID, invitationID, models.ActionReject)
}

// Approve organizatörün başvuruyu onaylaması.
func (s *InvitationService) Approve(ctx context.Context, actorID, invitationID uint) error {
	return s.applyTransition(ctx, actorID, invitationID, models.ActionApprove)
}

// RejectByOrganizer organizatörün başvuruyu reddetmesi.
func (s *InvitationService) RejectByOrganizer(ctx context.Context, actorID, invitationID uint) error {
	return s.applyTransition(ctx, actorID, invitationID, models.ActionRejectByOrganizer)
}

// applyTransition dört geçiş operasyonunun ortak gövdesi.
// Sıra: in-flight kilidi -> kayıt/aktör yükleme -> yetki -> durum kontrolü ->
// kapasite (onaylayan geçişler) -> optimistik güncelleme -> cache invalidation.
// Hata dahil her çıkışta in-flight işareti kaldırılır.
func (s *InvitationService) applyTransition(ctx context.Context, actorID, invitationID uint, action models.InvitationAction) error {
	if actorID == 0 || invitationID == 0 {
		return fmt.Errorf("%w: eksik ID", ErrInvInvalidInput)
	}
	rule, err := models.TransitionFor(action)
	if err != nil {
		return err
	}

	// Aynı davet için ikinci istek çifte gönderimdir; durum çakışması
	// sınıfında reddedilir. Farklı davetler birbirini bloklamaz.
	if !s.inflight.Begin(invitationID) {
		return ErrInvitationStateInvalid
	}
	defer s.inflight.End(invitationID)

	invitation, err := s.repo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return ErrInvitationForbidden
	}
	event, err := s.eventRepo.FindByID(ctx, invitation.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Error("applyTransition: Tutarsız veri (davet var, etkinlik yok)",
				zap.Uint("invitationID", invitationID), zap.Uint("eventID", invitation.EventID))
			return ErrInvitationNotFound
		}
		return err
	}

	// Yetki: davetli geçişlerini davetlinin kendisi, organizatör geçişlerini
	// etkinliğin sahibi yapar. Yönetici her ikisini de yapabilir.
	if !actor.IsAdmin() {
		if rule.ByOrganizer {
			if event.OrganizerID != actorID {
				return ErrInvitationForbidden
			}
		} else if invitation.InviteeID != actorID {
			return ErrInvitationForbidden
		}
	}

	if invitation.State != rule.From {
		return ErrInvitationStateInvalid
	}

	if rule.To == models.StateConfirmed {
		confirmed, err := s.repo.CountByEventIDAndState(ctx, event.ID, models.StateConfirmed)
		if err != nil {
			return err
		}
		if confirmed >= int64(event.Capacity) {
			return ErrEventCapacityFull
		}
	}

	respondedAt := s.now().UTC()
	ctxWithUser := models.ContextWithUserID(ctx, actorID)
	applied, err := s.repo.UpdateStateIf(ctxWithUser, invitationID, rule.From, rule.To, respondedAt)
	if err != nil {
		return err
	}
	if !applied {
		// Araya giren başka bir geçiş kaydı değiştirdi. Tekrar denenmez,
		// çakışma çağırana durum hatası olarak döner.
		return ErrInvitationStateInvalid
	}

	s.invalidateInvitationViews(ctx, event.ID, invitation.InviteeID, event.OrganizerID)
	configslog.SLog.Infof("Davet geçişi uygulandı: ID %d, %s -> %s (İşlemi yapan: %d)",
		invitationID, rule.From, rule.To, actorID)
	return nil
}

// invalidateInvitationViews mutasyon sonrası bağımlı görünümleri düşürür.
// Cache hatası mutasyonu geri almaz, yalnızca loglanır.
func (s *InvitationService) invalidateInvitationViews(ctx context.Context, eventID, inviteeID, organizerID uint) {
	keys := []string{
		viewcache.EventInvitationsKey(eventID),
		viewcache.UserInvitationsKey(inviteeID),
		viewcache.OrganizerStatsKey(organizerID),
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		configslog.Log.Warn("Davet görünümleri invalidate edilemedi", zap.Strings("keys", keys), zap.Error(err))
	}
}

// --- Okuma ---

// GetInvitationsForEvent etkinliğin davet listesini döndürür.
// Listeyi yalnızca etkinliğin organizatörü (veya yönetici) görebilir.
func (s *InvitationService) GetInvitationsForEvent(ctx context.Context, actorID, eventID uint) ([]models.EventInvitation, error) {
	event, actor, err := s.loadEventAndActor(ctx, eventID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && event.OrganizerID != actorID {
		return nil, ErrInvitationForbidden
	}

	key := viewcache.EventInvitationsKey(eventID)
	var invitations []models.EventInvitation
	if err := s.cache.Get(ctx, key, &invitations); err == nil {
		return invitations, nil
	} else if !errors.Is(err, viewcache.ErrCacheMiss) {
		configslog.Log.Warn("Davet listesi cache okunamadı", zap.String("key", key), zap.Error(err))
	}

	invitations, err = s.repo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, invitations, invitationListTTL); err != nil {
		configslog.Log.Warn("Davet listesi cache yazılamadı", zap.String("key", key), zap.Error(err))
	}
	return invitations, nil
}

// GetInvitationsForInvitee kullanıcının kendi davet listesini döndürür.
func (s *InvitationService) GetInvitationsForInvitee(ctx context.Context, actorID, inviteeID uint) ([]models.EventInvitation, error) {
	if actorID == 0 || inviteeID == 0 {
		return nil, fmt.Errorf("%w: eksik ID", ErrInvInvalidInput)
	}
	if actorID != inviteeID {
		actor, err := s.userRepo.FindByID(ctx, actorID)
		if err != nil || !actor.IsAdmin() {
			return nil, ErrInvitationForbidden
		}
	}

	key := viewcache.UserInvitationsKey(inviteeID)
	var invitations []models.EventInvitation
	if err := s.cache.Get(ctx, key, &invitations); err == nil {
		return invitations, nil
	} else if !errors.Is(err, viewcache.ErrCacheMiss) {
		configslog.Log.Warn("Kullanıcı davetleri cache okunamadı", zap.String("key", key), zap.Error(err))
	}

	invitations, err := s.repo.FindAllByInviteeID(ctx, inviteeID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, invitations, invitationListTTL); err != nil {
		configslog.Log.Warn("Kullanıcı davetleri cache yazılamadı", zap.String("key", key), zap.Error(err))
	}
	return invitations, nil
}

// IsTransitionInFlight bu davet için geçiş isteği sürüyor mu?
func (s *InvitationService) IsTransitionInFlight(invitationID uint) bool {
	return s.inflight.Active(invitationID)
}

// GroupInvitations davet listesini pano görünümü için üç gruba ayırır:
// onay bekleyenler, onaylananlar ve diğerleri.
func GroupInvitations(invitations []models.EventInvitation) InvitationGroups {
	return InvitationGroups{
		PendingApproval: lo.Filter(invitations, func(inv models.EventInvitation, _ int) bool {
			return inv.State == models.StatePendingApproval
		}),
		Confirmed: lo.Filter(invitations, func(inv models.EventInvitation, _ int) bool {
			return inv.State == models.StateConfirmed
		}),
		Other: lo.Filter(invitations, func(inv models.EventInvitation, _ int) bool {
			return inv.State != models.StatePendingApproval && inv.State != models.StateConfirmed
		}),
	}
}

var _ IInvitationService = (*InvitationService)(nil)
