package agent

import (
	"context"
	"strings"

	"makini-agent-backend/dao"
	"makini-agent-backend/model"

	"gorm.io/gorm"
)

// GormStorage implementa Storage sobre a ligação gorm partilhada.
type GormStorage struct {
	DB *gorm.DB
}

var _ Storage = &GormStorage{}

func NewGormStorage() *GormStorage {
	return &GormStorage{DB: dao.DB}
}

func (s *GormStorage) SearchListings(ctx context.Context, f ListingFilter) ([]model.Listing, error) {
	db := s.DB.WithContext(ctx).Model(&model.Listing{}).Preload("Fornecedor")

	if f.Location != "" {
		db = db.Where("LOWER(localizacao) LIKE ?", like(f.Location))
	}
	if f.EquipmentType != "" {
		pattern := like(f.EquipmentType)
		db = db.Where(
			s.DB.Where("LOWER(titulo) LIKE ?", pattern).
				Or("LOWER(capacidade_especificacao) LIKE ?", pattern).
				Or("LOWER(descricao) LIKE ?", pattern),
		)
	}
	if f.Category != "" {
		db = db.Where("categoria = ?", f.Category)
	}
	if f.MaxPrice > 0 {
		db = db.Where("preco <= ?", f.MaxPrice)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	var listings []model.Listing
	if err := db.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *GormStorage) CountConflictingReservas(ctx context.Context, listingID, fromDate string) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&model.Reserva{}).
		Where("anuncio_id = ?", listingID).
		Where("data_inicio >= ?", fromDate).
		Where("status IN ?", []string{model.ReservaStatusPendente, model.ReservaStatusConfirmada}).
		Count(&count).Error
	return count, err
}

func (s *GormStorage) GetListingWithOwner(ctx context.Context, listingID string) (*model.Listing, error) {
	var listing model.Listing
	if err := s.DB.WithContext(ctx).Preload("Fornecedor").
		Where("id = ?", listingID).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func like(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
