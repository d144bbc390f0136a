package dao

import (
	"strings"

	"makini-agent-backend/model"
)

type ListingQuery struct {
	Categoria   string
	Localizacao string
	Tipo        string
}

func GetListings(q ListingQuery) ([]model.Listing, error) {
	db := DB.Model(&model.Listing{})
	if q.Categoria != "" {
		db = db.Where("categoria = ?", q.Categoria)
	}
	if q.Localizacao != "" {
		db = db.Where("LOWER(localizacao) LIKE ?", "%"+strings.ToLower(q.Localizacao)+"%")
	}
	if q.Tipo != "" {
		db = db.Where("tipo = ?", q.Tipo)
	}

	var listings []model.Listing
	if err := db.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func GetListingByID(id string) (*model.Listing, error) {
	var listing model.Listing
	if err := DB.Preload("Fornecedor").
		Where("id = ?", id).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func GetListingsByFornecedor(fornecedorID string) ([]model.Listing, error) {
	var listings []model.Listing
	if err := DB.Where("fornecedor_id = ?", fornecedorID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func CreateListing(listing *model.Listing) error {
	return DB.Create(listing).Error
}

func DeleteListing(fornecedorID, id string) error {
	return DB.Where("fornecedor_id = ? AND id = ?", fornecedorID, id).
		Delete(&model.Listing{}).Error
}
