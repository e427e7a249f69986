package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
	"github.com/bric-ux/akwa-pricing/internal/snapshot/domain"
	"github.com/bric-ux/akwa-pricing/pkg/db/option"
	"github.com/bric-ux/akwa-pricing/pkg/repository"
)

type SnapshotRepository struct {
	db    *gorm.DB
	store repository.Repository[domain.CalculationSnapshot]
}

func NewSnapshotRepository(db *gorm.DB) domain.Repository {
	return &SnapshotRepository{
		db:    db,
		store: repository.ProvideStore[domain.CalculationSnapshot](db),
	}
}

func (r *SnapshotRepository) Upsert(ctx context.Context, snapshot *domain.CalculationSnapshot) error {
	// id and created_at survive the conflict update so reruns stay stable.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "booking_id"}, {Name: "booking_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status",
			"unit_price", "hourly_rate", "units", "hours",
			"discount_applied", "discount_amount", "discount_type",
			"base_price", "price_after_discount", "cleaning_fee", "taxes",
			"service_fee_ht", "service_fee_vat", "service_fee", "total_fees",
			"host_commission_ht", "host_commission_vat", "host_commission",
			"host_net_amount", "customer_total",
			"calculation", "updated_at",
		}),
	}).Create(snapshot).Error
}

func (r *SnapshotRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID, bookingType pricingdomain.ServiceCategory) (*domain.CalculationSnapshot, error) {
	return r.store.FindOne(ctx,
		&domain.CalculationSnapshot{},
		option.WithWhere("booking_id = ? AND booking_type = ?", bookingID, bookingType),
	)
}
