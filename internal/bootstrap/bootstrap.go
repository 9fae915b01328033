// Package bootstrap seeds reference data and provisions external
// resources at startup.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/eduflow/eduflow-server/internal/features/category"
	"github.com/eduflow/eduflow-server/pkg/storage"
)

// SeedCategories inserts the default category list, skipping names
// already present so restarts are safe.
func SeedCategories(db *gorm.DB, logger *slog.Logger) error {
	if err := category.Seed(db); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	logger.Info("category reference data seeded")
	return nil
}

// ProvisionBuckets creates the object storage buckets the upload
// endpoints write to.
func ProvisionBuckets(storageClient *storage.Client, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := storageClient.EnsureBuckets(ctx); err != nil {
		return fmt.Errorf("provision buckets: %w", err)
	}

	logger.Info("storage buckets provisioned")
	return nil
}
