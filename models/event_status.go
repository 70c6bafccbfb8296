package models

import "time"

// EventStatus etkinliğin zamansal durumunu tanımlar.
type EventStatus string

const (
	StatusUpcoming   EventStatus = "upcoming"
	StatusInProgress EventStatus = "in_progress"
	StatusCompleted  EventStatus = "completed"
	// StatusCancelled hiçbir zaman türetilmez; yalnızca kayıtlı bir iptal
	// (Event.CancelledAt) üzerinden okunur. Şu an bir iptal operasyonu yok,
	// değer rezerve edilmiştir.
	StatusCancelled EventStatus = "cancelled"
)

// AllEventStatuses kapalı durum kümesi. Tablo testlerinde ve lookup
// tablolarının eksiksizlik kontrolünde kullanılır.
var AllEventStatuses = []EventStatus{
	StatusUpcoming, StatusInProgress, StatusCompleted, StatusCancelled,
}

// DeriveStatus başlangıç/bitiş anları ve şu andan durumu türetir.
// [startsAt, endsAt] kapalı aralıktır: iki sınır da InProgress'e dahildir.
// Anlar mutlak olarak karşılaştırılır, timezone normalizasyonu yapılmaz.
func DeriveStatus(startsAt, endsAt, now time.Time) EventStatus {
	if endsAt.Before(now) {
		return StatusCompleted
	}
	if !startsAt.After(now) {
		return StatusInProgress
	}
	return StatusUpcoming
}

// CanEditStatus yalnızca henüz başlamamış etkinlikler düzenlenebilir.
func CanEditStatus(status EventStatus) bool {
	return status == StatusUpcoming
}

// CanDeleteStatus yalnızca henüz başlamamış etkinlikler silinebilir.
func CanDeleteStatus(status EventStatus) bool {
	return status == StatusUpcoming
}

var eventStatusLabels = map[EventStatus]string{
	StatusUpcoming:   "Yaklaşan",
	StatusInProgress: "Devam Ediyor",
	StatusCompleted:  "Tamamlandı",
	StatusCancelled:  "İptal Edildi",
}

var eventStatusColors = map[EventStatus]string{
	StatusUpcoming:   "bg-info text-white",
	StatusInProgress: "bg-warning text-white",
	StatusCompleted:  "bg-success text-white",
	StatusCancelled:  "bg-error text-white",
}

// Label durumun görünen adını döndürür.
func (s EventStatus) Label() string {
	if label, ok := eventStatusLabels[s]; ok {
		return label
	}
	return "Bilinmiyor"
}

// ColorClass durum rozetinin CSS sınıfını döndürür.
func (s EventStatus) ColorClass() string {
	if color, ok := eventStatusColors[s]; ok {
		return color
	}
	return "bg-gray-500 text-white"
}
