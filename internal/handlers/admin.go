package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/livemarket/internal/middleware"
	"github.com/example/livemarket/internal/models"
	"github.com/example/livemarket/internal/services"
	"github.com/example/livemarket/internal/utils"
)

// AdminHandler manages admin-only endpoints for reviewing and approving
// merchant registrations.
type AdminHandler struct {
	db       *gorm.DB
	mailer   *services.Mailer
	telegram *services.TelegramService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, mailer *services.Mailer, telegram *services.TelegramService) *AdminHandler {
	return &AdminHandler{db: db, mailer: mailer, telegram: telegram}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var pendingRegistrations int64
	if err := h.db.Model(&models.PendingRegistration{}).Count(&pendingRegistrations).Error; err != nil {
		return err
	}

	var pendingBusinesses int64
	if err := h.db.Model(&models.Business{}).Where("is_active = ?", false).Count(&pendingBusinesses).Error; err != nil {
		return err
	}

	var activeBusinesses int64
	if err := h.db.Model(&models.Business{}).Where("is_active = ?", true).Count(&activeBusinesses).Error; err != nil {
		return err
	}

	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalShops int64
	if err := h.db.Model(&models.Shop{}).Count(&totalShops).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"pending_registrations": pendingRegistrations,
			"pending_businesses":    pendingBusinesses,
			"active_businesses":     activeBusinesses,
			"total_users":           totalUsers,
			"total_shops":           totalShops,
		},
	})
}

// ListRegistrations returns in-flight pending registrations with pagination.
func (h *AdminHandler) ListRegistrations(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.PendingRegistration{})

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"email ILIKE ? OR business_name ILIKE ?",
			"%"+search+"%", "%"+search+"%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var registrations []models.PendingRegistration
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&registrations).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    registrations,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListBusinesses returns businesses with their shops and warehouses,
// filterable by approval status.
func (h *AdminHandler) ListBusinesses(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Business{})

	if status := c.Query("status"); status == "pending" {
		query = query.Where("is_active = ?", false)
	} else if status == "active" {
		query = query.Where("is_active = ?", true)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"name ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var businesses []models.Business
	if err := query.Preload("Shops").Preload("Warehouses").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&businesses).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    businesses,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ApproveBusiness activates a business together with its users, shops and
// warehouses, then notifies the owner.
func (h *AdminHandler) ApproveBusiness(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	claims, ok := middleware.GetCurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var business models.Business
	if err := h.db.Preload("Users").First(&business, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "business not found")
		}
		return err
	}

	if business.IsActive {
		return fiber.NewError(fiber.StatusBadRequest, "business already approved")
	}

	now := time.Now()
	approverID, _ := uuid.Parse(claims.UserID)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&business).Updates(map[string]interface{}{
			"is_active":   true,
			"approved_at": now,
			"approved_by": approverID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("business_id = ?", business.ID).
			Update("is_active", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Shop{}).Where("business_id = ?", business.ID).
			Update("is_active", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Warehouse{}).Where("business_id = ?", business.ID).
			Update("is_active", true).Error
	})
	if err != nil {
		return err
	}

	for _, user := range business.Users {
		if err := h.mailer.SendApprovalEmail(user.Email, user.FirstName, business.Name); err != nil {
			log.Printf("approval email to %s failed: %v", user.Email, err)
		}
	}

	go func() {
		if err := h.telegram.NotifyBusinessApproved(business.Name, claims.Email); err != nil {
			log.Printf("telegram notification failed: %v", err)
		}
	}()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "business approved",
	})
}

// RejectBusiness soft-deletes a pending business and everything created
// alongside it.
func (h *AdminHandler) RejectBusiness(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var business models.Business
	if err := h.db.First(&business, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "business not found")
		}
		return err
	}

	if business.IsActive {
		return fiber.NewError(fiber.StatusBadRequest, "cannot reject an approved business")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", business.ID).
			Delete(&models.BusinessAgreement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", business.ID).
			Delete(&models.User{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", business.ID).
			Delete(&models.Shop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", business.ID).
			Delete(&models.Warehouse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&business).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "business rejected",
	})
}
