package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// RegistrationNotification contains completed-registration data for the
// admin chat.
type RegistrationNotification struct {
	BusinessName string
	ShopName     string
	OwnerName    string
	Email        string
	Phone        string
}

// NotifyNewRegistration tells admins a merchant finished onboarding and is
// waiting for approval.
func (s *TelegramService) NotifyNewRegistration(reg RegistrationNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	message := fmt.Sprintf(`<b>🆕 NEW MERCHANT REGISTRATION</b>
<b>🏢 Business:</b> %s
<b>🏪 Shop:</b> %s
<b>👤 Owner:</b> %s
<b>✉️ Email:</b> %s
<b>📞 Phone:</b> %s
<b>📍 Status:</b> ⏳ Pending approval
━━━━━━━━━━━━━━━━━━`,
		reg.BusinessName,
		reg.ShopName,
		reg.OwnerName,
		reg.Email,
		reg.Phone,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

// NotifyBusinessApproved tells admins a business was activated.
func (s *TelegramService) NotifyBusinessApproved(businessName, approvedBy string) error {
	if s.adminChatID == "" {
		return nil
	}

	message := fmt.Sprintf(`<b>✅ BUSINESS APPROVED</b>
<b>🏢 Business:</b> %s
<b>👤 Approved by:</b> %s
━━━━━━━━━━━━━━━━━━
<i>Live Market</i>`,
		businessName,
		approvedBy,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}
