package models

// FaqItem is a question/answer pair shown on the landing page.
type FaqItem struct {
	BaseModel
	Question  string `json:"question"`
	Answer    string `gorm:"type:text" json:"answer"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// FeatureHighlight is a platform feature card shown on the landing page.
type FeatureHighlight struct {
	BaseModel
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

// FooterSettings stores dynamic footer content managed via admin panel.
// There should be only one row (singleton pattern).
type FooterSettings struct {
	BaseModel
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	SupportHours string `json:"support_hours"`

	// Social links
	Telegram  string `json:"telegram"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`

	CopyrightText string `json:"copyright_text"`
}
