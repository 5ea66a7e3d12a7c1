package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/policy"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const salesPageSize = 10

type SalesPage struct {
	Sales []model.Sale `json:"sales"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
	Total int64        `json:"total"`
}

// SalesService keeps Product.Quantity consistent with the sales ledger:
// recording a sale decrements stock, deleting a sale restores it.
type SalesService interface {
	RecordSale(productID uuid.UUID, quantitySold int, actor *model.User) (*model.Sale, error)
	DeleteSale(saleID uuid.UUID, actor *model.User) error
	GetSalesPage(keyword string, page int) (*SalesPage, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
	GetSalesByDateRange(start, end time.Time) ([]model.Sale, error)
}

type salesService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	log         zerolog.Logger
}

func NewSalesService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub, log zerolog.Logger) SalesService {
	return &salesService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		db:          db,
		wsHub:       hub,
		log:         log,
	}
}

// RecordSale snapshots the product's name and price, decrements stock and
// persists the sale as one atomic operation. The decrement carries a
// quantity >= sold guard, so concurrent sales against the same product cannot
// oversell it.
func (s *salesService) RecordSale(productID uuid.UUID, quantitySold int, actor *model.User) (*model.Sale, error) {
	if !policy.Allows(actor.Role, policy.ResourceSale, policy.ActionCreate) {
		return nil, apperr.Forbidden("not allowed to record sales")
	}
	if productID == uuid.Nil || quantitySold < 1 {
		return nil, apperr.Validation("Please add product and quantity")
	}

	var sale *model.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product not found")
			}
			return err
		}

		if quantitySold > product.Quantity {
			return apperr.InsufficientStock(product.Quantity)
		}

		ok, err := s.productRepo.DecrementStock(tx, product.ID, quantitySold)
		if err != nil {
			return err
		}
		if !ok {
			// Lost a race with a concurrent sale; re-read for the message.
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				return err
			}
			return apperr.InsufficientStock(product.Quantity)
		}

		pricePerUnit := product.Price
		sale = &model.Sale{
			ProductID:    product.ID,
			ProductName:  product.Name,
			QuantitySold: quantitySold,
			PricePerUnit: pricePerUnit,
			TotalPrice:   pricePerUnit.Mul(decimal.NewFromInt(int64(quantitySold))),
			SoldByID:     actor.ID,
		}
		return tx.Create(sale).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", productID.String()).
		Int("quantity_sold", quantitySold).
		Str("sold_by", actor.Email).
		Msg("sale recorded")

	s.broadcast(map[string]interface{}{
		"type":    "stock_update",
		"action":  "sale_recorded",
		"sale_id": sale.ID,
		"product": map[string]interface{}{
			"id":   sale.ProductID,
			"name": sale.ProductName,
		},
		"quantity_sold": quantitySold,
		"message":       fmt.Sprintf("%s sold %d units of '%s'", actor.Name, quantitySold, sale.ProductName),
	})

	return s.saleRepo.FindByID(sale.ID)
}

// DeleteSale removes a sale and restores the product's stock as if the sale
// never occurred. If the product has since been deleted there is nothing to
// restore to; only the sale is removed.
func (s *salesService) DeleteSale(saleID uuid.UUID, actor *model.User) error {
	if !policy.Allows(actor.Role, policy.ResourceSale, policy.ActionDelete) {
		return apperr.Forbidden("not allowed to delete sales")
	}

	var restored bool
	var sale model.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Sale not found")
			}
			return err
		}

		var product model.Product
		err := tx.First(&product, "id = ?", sale.ProductID).Error
		switch {
		case err == nil:
			if err := s.productRepo.RestoreStock(tx, product.ID, sale.QuantitySold); err != nil {
				return err
			}
			restored = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Product gone; skip restore.
		default:
			return err
		}

		return tx.Delete(&sale).Error
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("sale_id", saleID.String()).
		Bool("stock_restored", restored).
		Str("deleted_by", actor.Email).
		Msg("sale deleted")

	s.broadcast(map[string]interface{}{
		"type":    "stock_update",
		"action":  "sale_deleted",
		"sale_id": saleID,
		"product": map[string]interface{}{
			"id":   sale.ProductID,
			"name": sale.ProductName,
		},
		"stock_restored": restored,
		"message":        fmt.Sprintf("%s deleted a sale of '%s'", actor.Name, sale.ProductName),
	})

	return nil
}

func (s *salesService) GetSalesPage(keyword string, page int) (*SalesPage, error) {
	if page < 1 {
		page = 1
	}
	sales, total, err := s.saleRepo.FindPage(keyword, page, salesPageSize)
	if err != nil {
		return nil, err
	}
	pages := int((total + salesPageSize - 1) / salesPageSize)
	return &SalesPage{Sales: sales, Page: page, Pages: pages, Total: total}, nil
}

func (s *salesService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sale not found")
		}
		return nil, err
	}
	return sale, nil
}

func (s *salesService) GetSalesByDateRange(start, end time.Time) ([]model.Sale, error) {
	return s.saleRepo.FindByDateRange(start, end)
}

func (s *salesService) broadcast(payload map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
