package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/pkg/email"
)

// StockAlertService emails shop owners a daily digest of products that have
// dropped to their alert threshold
type StockAlertService struct {
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	emailService *email.EmailService
	scheduler    *gocron.Scheduler
}

// NewStockAlertService creates a new stock alert service
func NewStockAlertService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	emailService *email.EmailService,
) *StockAlertService {
	return &StockAlertService{
		productRepo:  productRepo,
		userRepo:     userRepo,
		emailService: emailService,
		scheduler:    gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the daily alert run in the background
func (s *StockAlertService) Start() {
	if _, err := s.scheduler.Every(1).Day().At("07:00").Do(s.RunOnce); err != nil {
		logrus.WithError(err).Error("Failed to schedule stock alert job")
		return
	}
	s.scheduler.StartAsync()
	logrus.Info("Stock alert scheduler started")
}

// Stop stops the scheduler
func (s *StockAlertService) Stop() {
	s.scheduler.Stop()
}

// RunOnce checks every shop for low stock and mails the owners. Failures for
// one shop do not block the others.
func (s *StockAlertService) RunOnce() {
	ctx := context.Background()

	products, err := s.productRepo.GetLowStockAllShops(ctx)
	if err != nil {
		logrus.WithError(err).Error("Stock alert query failed")
		return
	}
	if len(products) == 0 {
		return
	}

	byShop := make(map[uuid.UUID][]entity.Product)
	for _, p := range products {
		byShop[p.ShopID] = append(byShop[p.ShopID], p)
	}

	for shopID, shopProducts := range byShop {
		shop := shopProducts[0].Shop
		owner := shop.Owner
		if owner.Email == "" {
			// Shop or owner not preloaded, look the owner up directly
			user, err := s.userRepo.GetByID(ctx, shop.OwnerID)
			if err != nil || user == nil {
				logrus.WithField("shop_id", shopID).Warn("Stock alert skipped, owner not found")
				continue
			}
			owner = *user
		}

		items := make([]email.LowStockProduct, 0, len(shopProducts))
		for _, p := range shopProducts {
			items = append(items, email.LowStockProduct{
				Name:     p.Name,
				Quantity: p.Quantity,
			})
		}

		if err := s.emailService.SendLowStockAlert(owner.Email, shop.Name, items); err != nil {
			logrus.WithError(err).WithField("shop_id", shopID).Error("Stock alert email failed")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"shop_id":  shopID,
			"products": len(items),
		}).Info("Stock alert sent")
	}
}
