package repositories

import (
	"context"
	"errors"

	"etkinlik.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ErrNotFound aranan kayıt bulunamadı. Servis katmanı bunu kendi
// tipli hatalarına çevirir.
var ErrNotFound = errors.New("kayıt bulunamadı")

type txContextKey struct{}

// ContextWithTx aktif transaction'ı context'e ekler. Servislerin
// transaction bloğu içindeki repository çağrıları bu tx'i kullanır.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// txFromContext context'teki transaction'ı döndürür (varsa).
func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// IBaseRepository ortak CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	OrderClause(params queryparams.ListParams) string
}

// BaseRepository IBaseRepository'nin GORM implementasyonu.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns map[string]struct{}
	defaultSort string
}

// NewBaseRepository yeni bir BaseRepository örneği oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:          db,
		sortColumns: make(map[string]struct{}),
		defaultSort: "created_at",
	}
}

// getDB context'te transaction varsa onu, yoksa bağlı DB'yi döndürür.
func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları belirler.
// Whitelist dışı istekler varsayılan sütuna düşer (SQL injection önlemi).
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.sortColumns = make(map[string]struct{}, len(columns))
	for _, c := range columns {
		r.sortColumns[c] = struct{}{}
	}
}

// OrderClause parametrelerden güvenli bir ORDER BY ifadesi üretir.
func (r *BaseRepository[T]) OrderClause(params queryparams.ListParams) string {
	column := r.defaultSort
	if _, ok := r.sortColumns[params.SortBy]; ok {
		column = params.SortBy
	}
	orderBy := params.OrderBy
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	return column + " " + orderBy
}

// Create yeni kayıt ekler. BeforeCreate hook'u CreatedBy'ı doldurur.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("oluşturulacak kayıt boş olamaz")
	}
	return r.getDB(ctx).Create(entity).Error
}

// FindByID kaydı ID ile bulur.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Update kaydı Save ile günceller. BeforeUpdate hook'u UpdatedBy'ı doldurur.
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("güncellenecek kayıt boş olamaz")
	}
	return r.getDB(ctx).Save(entity).Error
}

// Count tablodaki (soft delete hariç) kayıt sayısını döndürür.
func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var entity T
	var count int64
	err := r.getDB(ctx).Model(&entity).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
