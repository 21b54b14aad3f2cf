package seed

import (
	"mealvote/config"
	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	staff, err := seedUsers(db, log)
	if err != nil {
		return err
	}

	if err := seedDishes(db, staff, log); err != nil {
		return err
	}

	return nil
}

func seedUsers(db *gorm.DB, log logger.Logger) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash seed password", err)
	}

	users := []User{
		{
			Name:         "Canteen Staff",
			Email:        "staff@example.com",
			PasswordHash: stringPtr(string(hash)),
			Provider:     ProviderLocal,
			Role:         RoleStaff,
		},
		{
			Name:         "Sokha Chan",
			Email:        "sokha@example.com",
			PasswordHash: stringPtr(string(hash)),
			Provider:     ProviderLocal,
			Role:         RoleVoter,
		},
		{
			Name:         "Dara Kim",
			Email:        "dara@example.com",
			PasswordHash: stringPtr(string(hash)),
			Provider:     ProviderLocal,
			Role:         RoleVoter,
		},
	}

	var staff *User
	for i := range users {
		user := &users[i]

		var existing User
		if err := db.First(&existing, "email = ?", user.Email).Error; err == nil {
			log.Info("User already exists", "email", user.Email)
			if existing.Role == RoleStaff {
				staff = &existing
			}
			continue
		}

		log.Info("Seeding user", "email", user.Email, "role", user.Role)
		if err := db.Create(user).Error; err != nil {
			return nil, log.Err("failed to create user", err, "email", user.Email)
		}
		if user.Role == RoleStaff {
			staff = user
		}
	}

	if staff == nil {
		return nil, log.ErrMsg("no staff user available for seeding dishes")
	}

	return staff, nil
}

func seedDishes(db *gorm.DB, staff *User, log logger.Logger) error {
	dishes := []Dish{
		{
			NameEN:        "Beef Lok Lak",
			NameKM:        "ឡុកឡាក់សាច់គោ",
			DescriptionEN: "Stir-fried beef over rice with pepper-lime sauce",
			Price:         decimal.NewFromFloat(2.50),
			CreatedByID:   staff.ID,
		},
		{
			NameEN:        "Fish Amok",
			NameKM:        "អាម៉ុកត្រី",
			DescriptionEN: "Steamed fish curry in banana leaf",
			Price:         decimal.NewFromFloat(2.75),
			CreatedByID:   staff.ID,
		},
		{
			NameEN:        "Chicken Rice Soup",
			NameKM:        "បបរមាន់",
			DescriptionEN: "Rice porridge with shredded chicken",
			Price:         decimal.NewFromFloat(1.75),
			CreatedByID:   staff.ID,
		},
		{
			NameEN:        "Fried Noodles",
			NameKM:        "មីឆា",
			DescriptionEN: "Stir-fried noodles with vegetables",
			Price:         decimal.NewFromFloat(2.00),
			CreatedByID:   staff.ID,
		},
	}

	for _, dish := range dishes {
		var existing Dish
		if err := db.First(&existing, "name_en = ?", dish.NameEN).Error; err == nil {
			log.Info("Dish already exists", "name", dish.NameEN)
			continue
		}

		log.Info("Seeding dish", "name", dish.NameEN)
		if err := db.Create(&dish).Error; err != nil {
			return log.Err("failed to create dish", err, "name", dish.NameEN)
		}
	}

	return nil
}
