package dao

import (
	"makini-agent-backend/model"
)

func CreateReserva(reserva *model.Reserva) error {
	return DB.Create(reserva).Error
}

func GetReservaByID(id uint) (*model.Reserva, error) {
	var reserva model.Reserva
	if err := DB.Where("id = ?", id).First(&reserva).Error; err != nil {
		return nil, err
	}
	return &reserva, nil
}

func GetReservasByAgricultor(agricultorID string) ([]model.Reserva, error) {
	var reservas []model.Reserva
	if err := DB.Where("agricultor_id = ?", agricultorID).
		Order("created_at DESC").
		Find(&reservas).Error; err != nil {
		return nil, err
	}
	return reservas, nil
}

func GetReservasByFornecedor(fornecedorID string) ([]model.Reserva, error) {
	var reservas []model.Reserva
	if err := DB.Where("fornecedor_id = ?", fornecedorID).
		Order("created_at DESC").
		Find(&reservas).Error; err != nil {
		return nil, err
	}
	return reservas, nil
}

// UpdateReservaStatus limita a transição ao fornecedor dono da reserva.
func UpdateReservaStatus(fornecedorID string, id uint, status string) error {
	return DB.Model(&model.Reserva{}).
		Where("fornecedor_id = ? AND id = ?", fornecedorID, id).
		Update("status", status).Error
}
