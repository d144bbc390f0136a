package dao

import (
	"errors"

	"makini-agent-backend/model"

	"gorm.io/gorm"
)

func CreateProfile(profile *model.Profile) error {
	return DB.Create(profile).Error
}

func GetProfileByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	if err := DB.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func GetProfileByID(id string) (*model.Profile, error) {
	var profile model.Profile
	if err := DB.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
