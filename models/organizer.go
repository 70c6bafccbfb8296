package models

// OrganizerProfile bir organizatörün herkese açık profil kaydıdır.
// Her kullanıcı için en fazla bir profil bulunur.
type OrganizerProfile struct {
	BaseModel
	UserID          uint    `gorm:"uniqueIndex;not null"` // users.id FK
	CompanyName     string  `gorm:"type:varchar(150);not null"`
	Description     string  `gorm:"type:text"`
	Phone           string  `gorm:"type:varchar(30);not null"`
	Address         string  `gorm:"type:varchar(255)"`
	PricePerEvent   float64 `gorm:"type:numeric(10,2);default:0"`
	YearsExperience int     `gorm:"type:integer;default:0"`
	Specialty       string  `gorm:"type:varchar(100)"`
	Verified        bool    `gorm:"default:false"`
	Rating          float64 `gorm:"type:numeric(3,2);default:0"`
	ReviewCount     int     `gorm:"type:integer;default:0"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
