// Package inflight devam etmekte olan davet geçişlerini kayıt ID'si bazında
// izler. Amaç aynı davet için çifte gönderimi engellemektir; farklı davetler
// üzerindeki eşzamanlı işlemler birbirini bloklamaz (global kilit yoktur).
package inflight

import "sync"

// Tracker işlemi süren kayıt ID'lerinin kümesi.
type Tracker struct {
	mu  sync.Mutex
	ids map[uint]struct{}
}

// NewTracker boş bir Tracker oluşturur.
func NewTracker() *Tracker {
	return &Tracker{ids: make(map[uint]struct{})}
}

// Begin ID'yi kümeye ekler. ID zaten işlemdeyse false döner ve
// çağıran işlemi reddetmelidir.
func (t *Tracker) Begin(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.ids[id]; exists {
		return false
	}
	t.ids[id] = struct{}{}
	return true
}

// End ID'yi kümeden çıkarır. Başarılı Begin sonrası her çıkış yolunda
// (hata dahil) çağrılmalıdır; defer ile kullanın.
func (t *Tracker) End(id uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ids, id)
}

// Active ID şu an işlemde mi?
func (t *Tracker) Active(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, exists := t.ids[id]
	return exists
}

// ActiveIDs işlemdeki ID'lerin anlık listesini döndürür.
func (t *Tracker) ActiveIDs() []uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]uint, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	return ids
}
