package handlers

import (
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/livemarket/internal/models"
)

// LandingHandler manages landing page content: FAQ entries, feature
// highlights and the footer settings singleton.
type LandingHandler struct {
	db *gorm.DB
}

// NewLandingHandler constructs LandingHandler.
func NewLandingHandler(db *gorm.DB) *LandingHandler {
	return &LandingHandler{db: db}
}

// FAQ items

func (h *LandingHandler) ListFaqs(c *fiber.Ctx) error {
	var items []models.FaqItem
	if err := h.db.Where("is_active = ?", true).
		Order("sort_order asc").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *LandingHandler) CreateFaq(c *fiber.Ctx) error {
	var item models.FaqItem
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(item.Question) == "" || strings.TrimSpace(item.Answer) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "question and answer are required")
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *LandingHandler) UpdateFaq(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	var item models.FaqItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "faq item not found")
		}
		return err
	}
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	item.ID = id
	if err := h.db.Save(&item).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *LandingHandler) DeleteFaq(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.FaqItem{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Feature highlights

func (h *LandingHandler) ListFeatures(c *fiber.Ctx) error {
	var items []models.FeatureHighlight
	if err := h.db.Where("is_active = ?", true).
		Order("sort_order asc").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *LandingHandler) CreateFeature(c *fiber.Ctx) error {
	var item models.FeatureHighlight
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(item.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title is required")
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *LandingHandler) UpdateFeature(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	var item models.FeatureHighlight
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "feature not found")
		}
		return err
	}
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	item.ID = id
	if err := h.db.Save(&item).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func (h *LandingHandler) DeleteFeature(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.FeatureHighlight{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Footer settings (singleton)

const (
	defaultFooterEmail   = "support@livemarket.app"
	defaultSupportHours  = "Mon - Fri: 09:00 - 18:00"
	defaultCopyrightText = "© 2026 Live Market. All rights reserved."
)

func applyFooterDefaults(settings *models.FooterSettings) {
	if settings == nil {
		return
	}
	if strings.TrimSpace(settings.Email) == "" {
		settings.Email = defaultFooterEmail
	}
	if strings.TrimSpace(settings.SupportHours) == "" {
		settings.SupportHours = defaultSupportHours
	}
	if strings.TrimSpace(settings.CopyrightText) == "" {
		settings.CopyrightText = defaultCopyrightText
	}
}

func (h *LandingHandler) GetFooter(c *fiber.Ctx) error {
	var settings models.FooterSettings
	err := h.db.First(&settings).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	applyFooterDefaults(&settings)
	return c.JSON(fiber.Map{"success": true, "data": settings})
}

func (h *LandingHandler) UpdateFooter(c *fiber.Ctx) error {
	var input models.FooterSettings
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid email")
		}
	}

	var settings models.FooterSettings
	err := h.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = input
		if err := h.db.Create(&settings).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else {
		input.ID = settings.ID
		settings = input
		if err := h.db.Save(&settings).Error; err != nil {
			return err
		}
	}

	applyFooterDefaults(&settings)
	return c.JSON(fiber.Map{"success": true, "data": settings})
}
