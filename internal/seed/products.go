package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"go-admin-portal/internal/model"
)

// DefaultProducts is the catalog provisioned at bootstrap.
var DefaultProducts = []model.Product{
	{Code: "CORE", Name: "Core Platform"},
	{Code: "MONITOR", Name: "Monitoring Suite"},
	{Code: "GATEWAY", Name: "API Gateway"},
}

const productSeedName = "products_init"

// InitProducts seeds the product catalog behind its own hash marker.
func InitProducts(db *gorm.DB) error {
	payload, err := json.Marshal(DefaultProducts)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(payload)
	currentHash := hex.EncodeToString(sum[:])

	var marker model.HashValidation
	err = db.Where("name = ?", productSeedName).First(&marker).Error
	if err == nil && marker.Hash == currentHash {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Seeding product catalog")
	for _, p := range DefaultProducts {
		var existing model.Product
		err := db.Where("code = ?", p.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&model.Product{Code: p.Code, Name: p.Name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	if marker.ID != 0 {
		marker.Hash = currentHash
		return db.Save(&marker).Error
	}
	return db.Create(&model.HashValidation{
		Name: productSeedName,
		Type: "seed",
		Hash: currentHash,
	}).Error
}
