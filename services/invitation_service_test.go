package services

import (
	"context"
	"testing"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/inflight"
	"etkinlik.link/pkg/viewcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow sabitlenmiş "şu an". Token doğrulaması gerçek saate göre
// yapıldığından geçmiş bir tarihe değil, çalışma anına sabitlenir.
var testNow = time.Now().UTC().Truncate(time.Second)

type invitationFixture struct {
	service *InvitationService
	repo    *fakeInvitationRepo
	events  *fakeEventRepo
	users   *fakeUserRepo
	cache   *fakeCacheStore
	tracker *inflight.Tracker
}

// newInvitationFixture organizatör (ID 1), davetli (ID 2), ikinci davetli (ID 3)
// ve yönetici (ID 9) ile yaklaşan bir etkinlik (ID 1, kapasite 2) kurar.
func newInvitationFixture(t *testing.T) *invitationFixture {
	t.Helper()
	organizer := &models.User{BaseModel: models.BaseModel{ID: 1}, Name: "Organizatör", Email: "org@test.local", Role: models.RoleOrganizer}
	invitee := &models.User{BaseModel: models.BaseModel{ID: 2}, Name: "Davetli", Email: "davetli@test.local", Role: models.RoleClient}
	second := &models.User{BaseModel: models.BaseModel{ID: 3}, Name: "İkinci", Email: "ikinci@test.local", Role: models.RoleClient}
	admin := &models.User{BaseModel: models.BaseModel{ID: 9}, Name: "Yönetici", Email: "admin@test.local", Role: models.RoleAdmin}

	event := &models.Event{
		BaseModel:   models.BaseModel{ID: 1},
		Title:       "Go Meetup",
		StartsAt:    testNow.Add(24 * time.Hour),
		EndsAt:      testNow.Add(26 * time.Hour),
		Capacity:    2,
		OrganizerID: organizer.ID,
	}

	repo := newFakeInvitationRepo()
	events := newFakeEventRepo(event)
	users := newFakeUserRepo(organizer, invitee, second, admin)
	cache := newFakeCacheStore()
	tracker := inflight.NewTracker()

	svc := NewInvitationServiceWith(repo, events, users, cache, tracker).(*InvitationService)
	svc.now = func() time.Time { return testNow }

	return &invitationFixture{service: svc, repo: repo, events: events, users: users, cache: cache, tracker: tracker}
}

func TestInviteUser_CreatesPendingResponse(t *testing.T) {
	f := newInvitationFixture(t)

	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "Bekleriz!")
	require.NoError(t, err)

	assert.Equal(t, models.StatePendingResponse, inv.State)
	assert.False(t, inv.IsSelfApplication)
	assert.Equal(t, testNow, inv.InvitedAt)
	assert.Nil(t, inv.RespondedAt)
	assert.Equal(t, "Bekleriz!", inv.Message)
}

func TestSelfApply_CreatesPendingApproval(t *testing.T) {
	f := newInvitationFixture(t)

	inv, err := f.service.SelfApply(context.Background(), 2, 1, "Katılmak isterim")
	require.NoError(t, err)

	assert.Equal(t, models.StatePendingApproval, inv.State)
	assert.True(t, inv.IsSelfApplication)
	assert.Equal(t, uint(2), inv.InviteeID)
	assert.Nil(t, inv.RespondedAt)
}

func TestInviteUser_OnlyOrganizerMay(t *testing.T) {
	f := newInvitationFixture(t)

	_, err := f.service.InviteUser(context.Background(), 2, 1, 3, "")
	assert.ErrorIs(t, err, ErrInvitationForbidden)

	// Yönetici organizatör olmasa da davet gönderebilir.
	_, err = f.service.InviteUser(context.Background(), 9, 1, 3, "")
	assert.NoError(t, err)
}

func TestInviteUser_OrganizerCannotBeInvitee(t *testing.T) {
	f := newInvitationFixture(t)

	_, err := f.service.InviteUser(context.Background(), 1, 1, 1, "")
	assert.ErrorIs(t, err, ErrInvitationSelfInvite)

	_, err = f.service.SelfApply(context.Background(), 1, 1, "")
	assert.ErrorIs(t, err, ErrInvitationSelfInvite)
}

func TestCreateInvitation_ClosedEventRefused(t *testing.T) {
	f := newInvitationFixture(t)
	event := f.events.events[1]
	event.StartsAt = testNow.Add(-4 * time.Hour)
	event.EndsAt = testNow.Add(-2 * time.Hour)

	_, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	assert.ErrorIs(t, err, ErrInvitationEventClosed)

	// İptal edilmiş etkinlik de kapalıdır.
	event.StartsAt = testNow.Add(24 * time.Hour)
	event.EndsAt = testNow.Add(26 * time.Hour)
	cancelledAt := testNow.Add(-time.Hour)
	event.CancelledAt = &cancelledAt

	_, err = f.service.SelfApply(context.Background(), 2, 1, "")
	assert.ErrorIs(t, err, ErrInvitationEventClosed)
}

func TestCreateInvitation_DuplicateRefused(t *testing.T) {
	f := newInvitationFixture(t)

	_, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	// Aynı çift için ikinci kayıt, başvuru yönünden de gelse reddedilir.
	_, err = f.service.SelfApply(context.Background(), 2, 1, "")
	assert.ErrorIs(t, err, ErrInvitationAlreadyExists)
}

func TestAccept_TransitionsToConfirmed(t *testing.T) {
	f := newInvitationFixture(t)
	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)
	f.cache.invalidated = nil

	require.NoError(t, f.service.Accept(context.Background(), 2, inv.ID))

	stored := f.repo.invitations[inv.ID]
	assert.Equal(t, models.StateConfirmed, stored.State)
	require.NotNil(t, stored.RespondedAt)
	assert.Equal(t, testNow, *stored.RespondedAt)

	// Mutasyon üç bağımlı görünümü düşürür.
	assert.ElementsMatch(t, []string{
		viewcache.EventInvitationsKey(1),
		viewcache.UserInvitationsKey(2),
		viewcache.OrganizerStatsKey(1),
	}, f.cache.invalidated)
}

func TestAccept_TerminalStateRefused(t *testing.T) {
	f := newInvitationFixture(t)
	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	require.NoError(t, f.service.Accept(context.Background(), 2, inv.ID))
	err = f.service.Accept(context.Background(), 2, inv.ID)
	assert.ErrorIs(t, err, ErrInvitationStateInvalid)

	err = f.service.Reject(context.Background(), 2, inv.ID)
	assert.ErrorIs(t, err, ErrInvitationStateInvalid)
}

func TestApprove_WrongSourceStateRefused(t *testing.T) {
	f := newInvitationFixture(t)
	// Organizatör daveti PendingResponse doğar; approve PendingApproval bekler.
	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	err = f.service.Approve(context.Background(), 1, inv.ID)
	assert.ErrorIs(t, err, ErrInvitationStateInvalid)
	assert.Equal(t, models.StatePendingResponse, f.repo.invitations[inv.ID].State)
}

func TestTransition_Authorization(t *testing.T) {
	f := newInvitationFixture(t)
	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	// Davetli geçişini başka bir kullanıcı veya organizatör yapamaz.
	assert.ErrorIs(t, f.service.Accept(context.Background(), 3, inv.ID), ErrInvitationForbidden)
	assert.ErrorIs(t, f.service.Accept(context.Background(), 1, inv.ID), ErrInvitationForbidden)

	application, err := f.service.SelfApply(context.Background(), 3, 1, "")
	require.NoError(t, err)

	// Organizatör geçişini davetli yapamaz.
	assert.ErrorIs(t, f.service.Approve(context.Background(), 3, application.ID), ErrInvitationForbidden)

	// Yönetici her iki taraf adına geçiş yapabilir.
	assert.NoError(t, f.service.Approve(context.Background(), 9, application.ID))
}

func TestTransition_CapacityFull(t *testing.T) {
	f := newInvitationFixture(t)
	f.events.events[1].Capacity = 1

	first, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)
	require.NoError(t, f.service.Accept(context.Background(), 2, first.ID))

	second, err := f.service.SelfApply(context.Background(), 3, 1, "")
	require.NoError(t, err)

	err = f.service.Approve(context.Background(), 1, second.ID)
	assert.ErrorIs(t, err, ErrEventCapacityFull)
	assert.Equal(t, models.StatePendingApproval, f.repo.invitations[second.ID].State)

	// Reddetme kapasiteden bağımsızdır.
	assert.NoError(t, f.service.RejectByOrganizer(context.Background(), 1, second.ID))
}

func TestTransition_InFlightDuplicateRefused(t *testing.T) {
	f := newInvitationFixture(t)
	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	// İlk istek halen işlemdeyken gelen ikinci istek durum çakışması alır.
	require.True(t, f.tracker.Begin(inv.ID))
	assert.True(t, f.service.IsTransitionInFlight(inv.ID))
	assert.ErrorIs(t, f.service.Accept(context.Background(), 2, inv.ID), ErrInvitationStateInvalid)
	f.tracker.End(inv.ID)

	// İşaret kalkınca geçiş normal işler.
	assert.NoError(t, f.service.Accept(context.Background(), 2, inv.ID))
}

func TestTransition_InFlightReleasedAfterError(t *testing.T) {
	f := newInvitationFixture(t)
	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	// Hatalı bir geçiş denemesi in-flight işaretini asılı bırakmamalı.
	assert.ErrorIs(t, f.service.Accept(context.Background(), 3, inv.ID), ErrInvitationForbidden)
	assert.False(t, f.service.IsTransitionInFlight(inv.ID))
}

func TestReject_TransitionsToRejectedByInvitee(t *testing.T) {
	f := newInvitationFixture(t)
	inv, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	require.NoError(t, f.service.Reject(context.Background(), 2, inv.ID))
	stored := f.repo.invitations[inv.ID]
	assert.Equal(t, models.StateRejectedByInvitee, stored.State)
	assert.NotNil(t, stored.RespondedAt)
}

func TestRejectByOrganizer_TransitionsToRejectedByOrganizer(t *testing.T) {
	f := newInvitationFixture(t)
	application, err := f.service.SelfApply(context.Background(), 2, 1, "")
	require.NoError(t, err)

	require.NoError(t, f.service.RejectByOrganizer(context.Background(), 1, application.ID))
	assert.Equal(t, models.StateRejectedByOrganizer, f.repo.invitations[application.ID].State)
}

func TestGetInvitationsForEvent_AuthorizationAndCache(t *testing.T) {
	f := newInvitationFixture(t)
	_, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)
	f.cache.invalidated = nil

	// Listeyi yalnızca organizatör (veya yönetici) görebilir.
	_, err = f.service.GetInvitationsForEvent(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrInvitationForbidden)

	list, err := f.service.GetInvitationsForEvent(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// İlk okuma cache'i doldurur; repo boşaltılsa bile ikinci okuma cache'ten döner.
	f.repo.invitations = map[uint]*models.EventInvitation{}
	cached, err := f.service.GetInvitationsForEvent(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestGetInvitationsForInvitee_OnlySelfOrAdmin(t *testing.T) {
	f := newInvitationFixture(t)
	_, err := f.service.InviteUser(context.Background(), 1, 1, 2, "")
	require.NoError(t, err)

	_, err = f.service.GetInvitationsForInvitee(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrInvitationForbidden)

	own, err := f.service.GetInvitationsForInvitee(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	asAdmin, err := f.service.GetInvitationsForInvitee(context.Background(), 9, 2)
	require.NoError(t, err)
	assert.Len(t, asAdmin, 1)
}

func TestGroupInvitations_Partition(t *testing.T) {
	invitations := []models.EventInvitation{
		{BaseModel: models.BaseModel{ID: 1}, State: models.StatePendingApproval},
		{BaseModel: models.BaseModel{ID: 2}, State: models.StateConfirmed},
		{BaseModel: models.BaseModel{ID: 3}, State: models.StateConfirmed},
		{BaseModel: models.BaseModel{ID: 4}, State: models.StateRejectedByInvitee},
		{BaseModel: models.BaseModel{ID: 5}, State: models.StatePendingResponse},
	}

	groups := GroupInvitations(invitations)
	assert.Len(t, groups.PendingApproval, 1)
	assert.Len(t, groups.Confirmed, 2)
	assert.Len(t, groups.Other, 2)
}

func TestCreateInvitation_MessageTooLong(t *testing.T) {
	f := newInvitationFixture(t)

	long := make([]byte, invitationMessageMaxLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := f.service.InviteUser(context.Background(), 1, 1, 2, string(long))
	assert.ErrorIs(t, err, ErrInvInvalidInput)
}
