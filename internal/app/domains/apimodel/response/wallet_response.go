package response

import "time"

// WalletResponse 钱包连接状态
type WalletResponse struct {
	Connected bool   `json:"connected"`
	AccountID string `json:"account_id,omitempty"`
	Display   string `json:"display,omitempty" example:"0.0.48...9137"`
	Network   string `json:"network,omitempty" example:"testnet"`
}

// NotificationResponse 通知条目
type NotificationResponse struct {
	Kind      string    `json:"kind" example:"success"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
