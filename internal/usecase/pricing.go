package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/domain/model"
)

// priceItems resolves each raw item against the catalog. Items with an unknown
// product or a non-positive quantity are skipped, not rejected; only a hard
// catalog failure aborts pricing.
func (u *CheckoutUseCase) priceItems(ctx context.Context, userID string, items []model.OrderItem) ([]model.PricedItem, error) {
	priced := make([]model.PricedItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			u.logger.Warn("skipping item with invalid quantity",
				slog.String("user_id", userID),
				slog.String("product_id", item.ProductID),
				slog.Int64("quantity", item.Quantity),
			)
			continue
		}

		price, err := u.catalog.UnitPrice(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				u.logger.Warn("skipping unknown product",
					slog.String("user_id", userID),
					slog.String("product_id", item.ProductID),
				)
				continue
			}
			return nil, fmt.Errorf("price of %s: %w", item.ProductID, err)
		}

		priced = append(priced, model.PricedItem{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: price})
	}
	return priced, nil
}

func baseAmount(priced []model.PricedItem) int64 {
	var base int64
	for _, p := range priced {
		base += p.UnitPrice * p.Quantity
	}
	return base
}
