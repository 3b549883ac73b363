package migration

import (
	"github.com/evigdia/evigdia-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables and seeds default data if empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.BlogPost{},
		&domain.PostRevision{},
		&domain.Category{},
		&domain.Tag{},
		&domain.Comment{},
		&domain.Like{},
		&domain.PostReaction{},
		&domain.CommentReaction{},
		&domain.Favorite{},
		&domain.Notification{},
		&domain.AdminNotification{},
		&domain.ActivityLog{},
		&domain.PostView{},
		&domain.SearchQuery{},
		&domain.SocialPlatform{},
		&domain.ShareTracking{},
		&domain.ShareableLink{},
		&domain.ContentSyndication{},
		&domain.Subscription{},
		&domain.ContactSubmission{},
		&domain.Service{},
		&domain.AppManager{},
		&domain.GlobalAppControl{},
		&domain.SubscriptionPrice{},
	); err != nil {
		return err
	}

	if err := seedPlatforms(db); err != nil {
		return err
	}
	if err := seedAppManagers(db); err != nil {
		return err
	}
	return seedPricing(db)
}

func seedPlatforms(db *gorm.DB) error {
	var count int64
	db.Model(&domain.SocialPlatform{}).Count(&count)
	if count > 0 {
		return nil
	}

	platforms := []domain.SocialPlatform{
		{Name: "twitter", BaseShareURL: "https://twitter.com/intent/tweet?url=", IconClass: "fa-twitter", IsActive: true, OrderNum: 1},
		{Name: "facebook", BaseShareURL: "https://www.facebook.com/sharer/sharer.php?u=", IconClass: "fa-facebook", IsActive: true, OrderNum: 2},
		{Name: "linkedin", BaseShareURL: "https://www.linkedin.com/sharing/share-offsite/?url=", IconClass: "fa-linkedin", IsActive: true, OrderNum: 3},
		{Name: "reddit", BaseShareURL: "https://www.reddit.com/submit?url=", IconClass: "fa-reddit", IsActive: true, OrderNum: 4},
		{Name: "whatsapp", BaseShareURL: "https://wa.me/?text=", IconClass: "fa-whatsapp", IsActive: true, OrderNum: 5},
		{Name: "telegram", BaseShareURL: "https://t.me/share/url?url=", IconClass: "fa-telegram", IsActive: true, OrderNum: 6},
	}
	return db.Create(&platforms).Error
}

func seedAppManagers(db *gorm.DB) error {
	var count int64
	db.Model(&domain.AppManager{}).Count(&count)
	if count == 0 {
		managers := []domain.AppManager{
			{AppType: domain.AppGeneral, IsActive: true},
			{AppType: domain.AppIndividual, IsActive: true},
			{AppType: domain.AppPayment, IsActive: true},
			{AppType: domain.AppUser, IsActive: true},
			{AppType: domain.AppProfile, IsActive: true},
			{AppType: domain.AppMorphpix, IsActive: true},
		}
		if err := db.Create(&managers).Error; err != nil {
			return err
		}
	}

	db.Model(&domain.GlobalAppControl{}).Count(&count)
	if count == 0 {
		return db.Create(&domain.GlobalAppControl{}).Error
	}
	return nil
}

func seedPricing(db *gorm.DB) error {
	var count int64
	db.Model(&domain.SubscriptionPrice{}).Count(&count)
	if count > 0 {
		return nil
	}

	prices := []domain.SubscriptionPrice{
		{PlanType: domain.PlanMonthly, PriceUSD: 9.99, Description: "Billed monthly", IsActive: true},
		{PlanType: domain.PlanYearly, PriceUSD: 99.99, Description: "Billed yearly", IsActive: true},
	}
	return db.Create(&prices).Error
}
