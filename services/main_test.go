package services

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/viewcache"
	"etkinlik.link/repositories"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// --- Test fake'leri ---
// Servisler arayüz üzerinden konuştuğu için testler gerçek veritabanı yerine
// bellek içi fake repository'lerle çalışır.

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uint(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeEventRepo struct {
	events map[uint]*models.Event
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[uint]*models.Event)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	event.ID = uint(len(r.events) + 1)
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (*models.Event, error) {
	if event, ok := r.events[id]; ok {
		return event, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEventRepo) FindAllByOrganizerPaginated(_ context.Context, organizerID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	all := r.byOrganizer(organizerID)
	total := int64(len(all))
	offset := params.CalculateOffset()
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + params.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeEventRepo) FindAllByOrganizer(_ context.Context, organizerID uint) ([]models.Event, error) {
	return r.byOrganizer(organizerID), nil
}

func (r *fakeEventRepo) byOrganizer(organizerID uint) []models.Event {
	var events []models.Event
	for id := uint(1); id <= uint(len(r.events)); id++ {
		if event, ok := r.events[id]; ok && event.OrganizerID == organizerID {
			events = append(events, *event)
		}
	}
	return events
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, event *models.Event, _ uint) error {
	delete(r.events, event.ID)
	return nil
}

func (r *fakeEventRepo) CountByOrganizer(_ context.Context, organizerID uint) (int64, error) {
	return int64(len(r.byOrganizer(organizerID))), nil
}

type fakeInvitationRepo struct {
	invitations map[uint]*models.EventInvitation
	nextID      uint
}

func newFakeInvitationRepo(invitations ...*models.EventInvitation) *fakeInvitationRepo {
	repo := &fakeInvitationRepo{invitations: make(map[uint]*models.EventInvitation)}
	for _, inv := range invitations {
		repo.invitations[inv.ID] = inv
		if inv.ID > repo.nextID {
			repo.nextID = inv.ID
		}
	}
	return repo
}

func (r *fakeInvitationRepo) Create(_ context.Context, invitation *models.EventInvitation) error {
	r.nextID++
	invitation.ID = r.nextID
	r.invitations[invitation.ID] = invitation
	return nil
}

func (r *fakeInvitationRepo) FindByID(_ context.Context, id uint) (*models.EventInvitation, error) {
	if inv, ok := r.invitations[id]; ok {
		return inv, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeInvitationRepo) FindAllByEventID(_ context.Context, eventID uint) ([]models.EventInvitation, error) {
	var result []models.EventInvitation
	for id := uint(1); id <= r.nextID; id++ {
		if inv, ok := r.invitations[id]; ok && inv.EventID == eventID {
			result = append(result, *inv)
		}
	}
	return result, nil
}

func (r *fakeInvitationRepo) FindAllByInviteeID(_ context.Context, inviteeID uint) ([]models.EventInvitation, error) {
	var result []models.EventInvitation
	for id := uint(1); id <= r.nextID; id++ {
		if inv, ok := r.invitations[id]; ok && inv.InviteeID == inviteeID {
			result = append(result, *inv)
		}
	}
	return result, nil
}

func (r *fakeInvitationRepo) ExistsForEventAndInvitee(_ context.Context, eventID, inviteeID uint) (bool, error) {
	for _, inv := range r.invitations {
		if inv.EventID == eventID && inv.InviteeID == inviteeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInvitationRepo) UpdateStateIf(_ context.Context, id uint, from, to models.InvitationState, respondedAt time.Time) (bool, error) {
	inv, ok := r.invitations[id]
	if !ok || inv.State != from {
		return false, nil
	}
	inv.State = to
	at := respondedAt
	inv.RespondedAt = &at
	return true, nil
}

func (r *fakeInvitationRepo) CountByEventIDAndState(_ context.Context, eventID uint, state models.InvitationState) (int64, error) {
	var count int64
	for _, inv := range r.invitations {
		if inv.EventID == eventID && inv.State == state {
			count++
		}
	}
	return count, nil
}

// fakeCacheStore viewcache.IStore'un bellek içi hali. Düşürülen anahtarları
// kaydeder ki testler invalidation davranışını doğrulayabilsin.
type fakeCacheStore struct {
	entries     map[string][]byte
	invalidated []string
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{entries: make(map[string][]byte)}
}

func (c *fakeCacheStore) Get(_ context.Context, key string, dest any) error {
	data, ok := c.entries[key]
	if !ok {
		return viewcache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCacheStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCacheStore) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
		c.invalidated = append(c.invalidated, key)
	}
	return nil
}
