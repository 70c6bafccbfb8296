package models

// UserRole kullanıcının sistemdeki rolünü tanımlar.
type UserRole int

const (
	RoleClient    UserRole = 0 // Etkinliklere katılan normal kullanıcı
	RoleOrganizer UserRole = 1 // Etkinlik oluşturup yöneten kullanıcı
	RoleAdmin     UserRole = 2 // Tüm kayıtlara erişebilen sistem yöneticisi
)

// roleLabels kapalı rol kümesi için görünen isimler.
var roleLabels = map[UserRole]string{
	RoleClient:    "Kullanıcı",
	RoleOrganizer: "Organizatör",
	RoleAdmin:     "Yönetici",
}

// Label rolün görünen adını döndürür.
func (r UserRole) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return "Bilinmiyor"
}

// User sistemdeki bir kullanıcıyı temsil eder.
type User struct {
	BaseModel
	Name         string   `gorm:"type:varchar(150);not null"`
	Email        string   `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string   `gorm:"type:varchar(255);not null"`
	Role         UserRole `gorm:"type:smallint;not null;default:0;index"`
}

// IsAdmin yönetici mi? Yöneticiler sahiplik kontrollerini bypass eder.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsOrganizer organizatör rolüne sahip mi?
func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}
