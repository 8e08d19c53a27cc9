package main

import (
	"fmt"
	"time"

	"github.com/dealat-next/internal/config"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/logger"
	"github.com/dealat-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("failed to init default admin: %v", err)
	}

	categories := []models.Category{
		{NameAr: "مطاعم", NameEn: "Restaurants"},
		{NameAr: "مقاهي", NameEn: "Cafes"},
		{NameAr: "صالات رياضية", NameEn: "Fitness"},
		{NameAr: "تسوق", NameEn: "Shopping"},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name_en = ?", cat.NameEn).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.NameEn, err)
			} else {
				stdLog.Printf("created category: %s", cat.NameEn)
			}
		} else {
			stdLog.Printf("category already exists: %s", cat.NameEn)
		}
	}

	governorates := []models.Governorate{
		{NameAr: "دمشق", NameEn: "Damascus"},
		{NameAr: "حلب", NameEn: "Aleppo"},
		{NameAr: "حمص", NameEn: "Homs"},
		{NameAr: "اللاذقية", NameEn: "Latakia"},
	}
	for _, gov := range governorates {
		var existing models.Governorate
		if err := models.DB.Where("name_en = ?", gov.NameEn).First(&existing).Error; err != nil {
			if err := models.DB.Create(&gov).Error; err != nil {
				stdLog.Printf("failed to create governorate %s: %v", gov.NameEn, err)
			} else {
				stdLog.Printf("created governorate: %s", gov.NameEn)
			}
		} else {
			stdLog.Printf("governorate already exists: %s", gov.NameEn)
		}
	}

	offerTypes := []models.OfferType{
		{NameAr: "خصم بالنسبة", NameEn: "Percentage Discount"},
		{NameAr: "اشترِ واحدا واحصل على آخر", NameEn: "Buy One Get One"},
		{NameAr: "مبلغ ثابت", NameEn: "Fixed Amount"},
	}
	for _, ot := range offerTypes {
		var existing models.OfferType
		if err := models.DB.Where("name_en = ?", ot.NameEn).First(&existing).Error; err != nil {
			if err := models.DB.Create(&ot).Error; err != nil {
				stdLog.Printf("failed to create offer type %s: %v", ot.NameEn, err)
			} else {
				stdLog.Printf("created offer type: %s", ot.NameEn)
			}
		} else {
			stdLog.Printf("offer type already exists: %s", ot.NameEn)
		}
	}

	// Demo merchant with an owner staff account
	var provider models.Provider
	if err := models.DB.Where("name_en = ?", "Demo Diner").First(&provider).Error; err != nil {
		provider = models.Provider{NameAr: "مطعم تجريبي", NameEn: "Demo Diner", IsActive: true}
		if err := models.DB.Create(&provider).Error; err != nil {
			stdLog.Fatalf("failed to create demo provider: %v", err)
		}
		stdLog.Printf("created provider: %s", provider.NameEn)
	}

	var owner models.User
	if err := models.DB.Where("email = ?", "owner@demo-diner.local").First(&owner).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("Owner1234"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("failed to hash owner password: %v", err)
		}
		owner = models.User{
			Email:        "owner@demo-diner.local",
			PasswordHash: string(hash),
			DisplayName:  "Demo Diner Owner",
			Role:         constants.RoleProvider,
			ProviderID:   &provider.ID,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&owner).Error; err != nil {
			stdLog.Fatalf("failed to create owner account: %v", err)
		}
		stdLog.Printf("created provider owner: %s", owner.Email)
	}

	var category models.Category
	var offerType models.OfferType
	if err := models.DB.Where("name_en = ?", "Restaurants").First(&category).Error; err != nil {
		stdLog.Fatalf("restaurants category missing: %v", err)
	}
	if err := models.DB.Where("name_en = ?", "Percentage Discount").First(&offerType).Error; err != nil {
		stdLog.Fatalf("percentage offer type missing: %v", err)
	}

	now := time.Now()
	endsAt := now.AddDate(0, 1, 0)
	offers := []models.Offer{
		{
			ProviderID:     provider.ID,
			CategoryID:     category.ID,
			OfferTypeID:    offerType.ID,
			TitleAr:        "خصم ٢٠٪ على كامل الفاتورة",
			TitleEn:        "20% off the full bill",
			DetailsEn:      "Dine-in only, valid once per visit.",
			Value1:         models.NewAmountFromInt(20),
			MaxUsage:       100,
			SilverMaxUsage: 30,
			BronzeMaxUsage: 20,
			Status:         constants.OfferStatusLive,
			IsPublic:       true,
			EndsAt:         &endsAt,
		},
		{
			ProviderID:  provider.ID,
			CategoryID:  category.ID,
			OfferTypeID: offerType.ID,
			IsLimited:   true,
			TitleAr:     "عرض محدود قيد المراجعة",
			TitleEn:     "Limited offer pending review",
			Value1:      models.NewAmountFromInt(35),
			MaxUsage:    10,
			Status:      constants.OfferStatusPendingApproval,
		},
	}
	for _, offer := range offers {
		var existing models.Offer
		if err := models.DB.Where("provider_id = ? AND title_en = ?", offer.ProviderID, offer.TitleEn).First(&existing).Error; err != nil {
			if err := models.DB.Create(&offer).Error; err != nil {
				stdLog.Printf("failed to create offer %s: %v", offer.TitleEn, err)
			} else {
				stdLog.Printf("created offer: %s", offer.TitleEn)
			}
		} else {
			stdLog.Printf("offer already exists: %s", offer.TitleEn)
		}
	}

	fmt.Println("\nseed data ready:")
	fmt.Println("- 4 categories, 4 governorates, 3 offer types")
	fmt.Println("- demo provider with owner account owner@demo-diner.local")
	fmt.Println("- 1 live offer, 1 pending offer")
}
