package models

import "time"

// Event bir organizatörün düzenlediği etkinliği temsil eder.
// Durum (EventStatus) kolon olarak tutulmaz; StartsAt/EndsAt ve o anki
// zamandan türetilir. Tek istisna iptal: CancelledAt doluysa durum Cancelled'dır.
type Event struct {
	BaseModel
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	StartsAt    time.Time  `gorm:"index;type:timestamptz;not null"`
	EndsAt      time.Time  `gorm:"index;type:timestamptz;not null"`
	Location    string     `gorm:"type:varchar(255)"`
	Capacity    int        `gorm:"type:integer;not null"`
	OrganizerID uint       `gorm:"index;not null"` // users.id FK
	CancelledAt *time.Time `gorm:"type:timestamptz"`

	Organizer   User              `gorm:"foreignKey:OrganizerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Invitations []EventInvitation `gorm:"foreignKey:EventID"`
}

// Status verilen ana göre etkinliğin durumunu döndürür.
// Kayıtlı bir iptal varsa türetme yapılmaz, Cancelled korunur.
func (e *Event) Status(now time.Time) EventStatus {
	if e.CancelledAt != nil {
		return StatusCancelled
	}
	return DeriveStatus(e.StartsAt, e.EndsAt, now)
}

// CanEdit etkinlik şu an düzenlenebilir mi?
func (e *Event) CanEdit(now time.Time) bool {
	return CanEditStatus(e.Status(now))
}

// CanDelete etkinlik şu an silinebilir mi?
func (e *Event) CanDelete(now time.Time) bool {
	return CanDeleteStatus(e.Status(now))
}
