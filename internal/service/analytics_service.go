package service

import (
	"fmt"
	"sort"

	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	lowStockThreshold = 10
	lowStockLimit     = 5
	monthlyWindow     = 12
	topProductsLimit  = 10
	recentSalesLimit  = 10
)

type Summary struct {
	TotalProducts    int64           `json:"total_products"`
	TotalCategories  int64           `json:"total_categories"`
	TotalSuppliers   int64           `json:"total_suppliers"`
	TotalSales       int64           `json:"total_sales"`
	TotalStockValue  decimal.Decimal `json:"total_stock_value"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	LowStockProducts []model.Product `json:"low_stock_products"`
}

type MonthlySales struct {
	Month      string          `json:"month"` // YYYY-MM
	TotalSales decimal.Decimal `json:"total_sales"`
	Count      int             `json:"count"`
}

type CategoryDistribution struct {
	CategoryName string          `json:"category_name"`
	ProductCount int             `json:"product_count"`
	TotalStock   int             `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// TopProductRef carries the product's current name/sku/price: a live join,
// not a snapshot, so renamed products show their new name. Nil when the
// product has been deleted.
type TopProductRef struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

type TopProduct struct {
	Product           *TopProductRef  `json:"product"`
	TotalQuantitySold int             `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	SalesCount        int             `json:"sales_count"`
}

// AnalyticsService derives read-only views over products and the sales
// ledger. No mutation anywhere.
type AnalyticsService interface {
	GetSummary() (*Summary, error)
	GetMonthlySales() ([]MonthlySales, error)
	GetCategoryDistribution() ([]CategoryDistribution, error)
	GetRecentSales(limit int) ([]model.Sale, error)
	GetTopProducts() ([]TopProduct, error)
}

type analyticsService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
}

func NewAnalyticsService(
	pRepo repository.ProductRepository,
	cRepo repository.CategoryRepository,
	supRepo repository.SupplierRepository,
	sRepo repository.SaleRepository,
) AnalyticsService {
	return &analyticsService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		supplierRepo: supRepo,
		saleRepo:     sRepo,
	}
}

func (s *analyticsService) GetSummary() (*Summary, error) {
	summary := &Summary{}

	var err error
	if summary.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if summary.TotalCategories, err = s.categoryRepo.Count(); err != nil {
		return nil, err
	}
	if summary.TotalSuppliers, err = s.supplierRepo.Count(); err != nil {
		return nil, err
	}
	if summary.TotalSales, err = s.saleRepo.Count(); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	stockValue := decimal.Zero
	for _, p := range products {
		stockValue = stockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	summary.TotalStockValue = stockValue

	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(sale.TotalPrice)
	}
	summary.TotalRevenue = revenue

	lowStock, err := s.productRepo.FindLowStock(lowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, err
	}
	summary.LowStockProducts = lowStock
	if summary.LowStockProducts == nil {
		summary.LowStockProducts = []model.Product{}
	}

	return summary, nil
}

// GetMonthlySales buckets all sales by calendar month of CreatedAt, keeps the
// most recent 12 buckets and returns them chronologically ascending.
func (s *analyticsService) GetMonthlySales() ([]MonthlySales, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*MonthlySales)
	for _, sale := range sales {
		month := fmt.Sprintf("%04d-%02d", sale.CreatedAt.Year(), int(sale.CreatedAt.Month()))
		b, ok := buckets[month]
		if !ok {
			b = &MonthlySales{Month: month, TotalSales: decimal.Zero}
			buckets[month] = b
		}
		b.TotalSales = b.TotalSales.Add(sale.TotalPrice)
		b.Count++
	}

	result := make([]MonthlySales, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	// YYYY-MM sorts lexicographically in chronological order.
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })

	if len(result) > monthlyWindow {
		result = result[len(result)-monthlyWindow:]
	}
	return result, nil
}

// GetCategoryDistribution reports stock per category. Categories with zero
// products appear with zeroed totals, in category enumeration order.
func (s *analyticsService) GetCategoryDistribution() ([]CategoryDistribution, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]model.Product)
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	distribution := make([]CategoryDistribution, 0, len(categories))
	for _, c := range categories {
		entry := CategoryDistribution{
			CategoryName: c.Name,
			TotalValue:   decimal.Zero,
		}
		for _, p := range byCategory[c.ID] {
			entry.ProductCount++
			entry.TotalStock += p.Quantity
			entry.TotalValue = entry.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		}
		distribution = append(distribution, entry)
	}
	return distribution, nil
}

func (s *analyticsService) GetRecentSales(limit int) ([]model.Sale, error) {
	if limit <= 0 {
		limit = recentSalesLimit
	}
	return s.saleRepo.FindRecent(limit)
}

// GetTopProducts ranks products by total quantity sold across all sales,
// descending, capped to 10.
func (s *analyticsService) GetTopProducts() ([]TopProduct, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID]*TopProduct)
	order := make([]uuid.UUID, 0)
	for _, sale := range sales {
		g, ok := grouped[sale.ProductID]
		if !ok {
			g = &TopProduct{TotalRevenue: decimal.Zero}
			grouped[sale.ProductID] = g
			order = append(order, sale.ProductID)
		}
		g.TotalQuantitySold += sale.QuantitySold
		g.TotalRevenue = g.TotalRevenue.Add(sale.TotalPrice)
		g.SalesCount++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return grouped[order[i]].TotalQuantitySold > grouped[order[j]].TotalQuantitySold
	})
	if len(order) > topProductsLimit {
		order = order[:topProductsLimit]
	}

	products, err := s.productRepo.FindByIDs(order)
	if err != nil {
		return nil, err
	}
	refs := make(map[uuid.UUID]*TopProductRef, len(products))
	for _, p := range products {
		refs[p.ID] = &TopProductRef{ID: p.ID, Name: p.Name, SKU: p.SKU, Price: p.Price}
	}

	top := make([]TopProduct, 0, len(order))
	for _, id := range order {
		entry := *grouped[id]
		entry.Product = refs[id]
		top = append(top, entry)
	}
	return top, nil
}
