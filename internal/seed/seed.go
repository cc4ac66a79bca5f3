// Package seed loads the global catalogs (hosting plans, site
// templates) and a few demo alerts on first start. Idempotent: each
// catalog is seeded only when its table is empty.
package seed

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nexus/internal/models"
)

func Run(ctx context.Context, db *gorm.DB) error {
	if err := plans(ctx, db); err != nil {
		return err
	}
	if err := templates(ctx, db); err != nil {
		return err
	}
	return alerts(ctx, db)
}

func plans(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&models.HostingPlan{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rows := []models.HostingPlan{
		{Name: "Starter", Price: 4.99, CPUVCores: 1, RAMGB: 2, StorageGB: 25, BandwidthTB: 1,
			Features: datatypes.JSON(`["1 website","Free SSL","Daily backups"]`)},
		{Name: "Pro", Price: 12.99, CPUVCores: 2, RAMGB: 4, StorageGB: 100, BandwidthTB: 3, IsPopular: true,
			Features: datatypes.JSON(`["10 websites","Free SSL","Daily backups","Staging environment"]`)},
		{Name: "Enterprise", Price: 39.99, CPUVCores: 8, RAMGB: 16, StorageGB: 500, BandwidthTB: 10,
			Features: datatypes.JSON(`["Unlimited websites","Free SSL","Hourly backups","Dedicated support"]`)},
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func templates(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&models.SiteTemplate{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rows := []models.SiteTemplate{
		{Name: "Minimal Folio", Category: "Portfolio", Description: "Clean single-page portfolio",
			PreviewImage: "/templates/minimal-folio.png", Tags: datatypes.JSON(`["dark","one-page"]`)},
		{Name: "Shopline", Category: "E-commerce", Description: "Storefront with cart and checkout pages",
			PreviewImage: "/templates/shopline.png", IsPremium: true, Tags: datatypes.JSON(`["store","stripe-ready"]`)},
		{Name: "Launchpad", Category: "SaaS", Description: "Product landing with pricing table",
			PreviewImage: "/templates/launchpad.png", Tags: datatypes.JSON(`["landing","pricing"]`)},
		{Name: "Inkwell", Category: "Blog", Description: "Typography-first blog theme",
			PreviewImage: "/templates/inkwell.png", Tags: datatypes.JSON(`["writing","rss"]`)},
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func alerts(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Alert{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rows := []models.Alert{
		{Title: "High CPU usage", Description: "CPU above 90% for 10 minutes on web-01",
			Severity: models.AlertSeverityCritical, Status: models.AlertStatusActive},
		{Title: "Certificate expiring", Description: "TLS certificate expires in 14 days",
			Severity: models.AlertSeverityWarning, Status: models.AlertStatusActive},
		{Title: "Backup completed", Description: "Nightly backup finished successfully",
			Severity: models.AlertSeverityInfo, Status: models.AlertStatusResolved},
	}
	return db.WithContext(ctx).Create(&rows).Error
}
