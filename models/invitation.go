package models

import "time"

// EventInvitation bir etkinlik ile bir davetli arasındaki davet kaydını
// temsil eder. Kayıt ya organizatörün davetiyle (PendingResponse) ya da
// kullanıcının kendi başvurusuyla (PendingApproval) doğar; sonrasında
// yalnızca geçiş tablosundaki operasyonlarla değişir.
type EventInvitation struct {
	BaseModel
	EventID           uint            `gorm:"not null;index:idx_invitation_event_invitee,unique"`
	InviteeID         uint            `gorm:"not null;index:idx_invitation_event_invitee,unique"` // users.id FK
	State             InvitationState `gorm:"type:varchar(30);not null;index"`
	IsSelfApplication bool            `gorm:"not null;default:false"` // Oluşturulurken atanır, değişmez
	InvitedAt         time.Time       `gorm:"type:timestamptz;not null"`
	RespondedAt       *time.Time      `gorm:"type:timestamptz"` // Pending durumlarda boş, diğerlerinde dolu
	Message           string          `gorm:"type:varchar(500)"`

	Event   Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Invitee User  `gorm:"foreignKey:InviteeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IsPending davet hâlâ bir yanıt/onay bekliyor mu?
func (i *EventInvitation) IsPending() bool {
	return !i.State.IsTerminal()
}
