package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"paypal-order-api/internal/config"
)

type telegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode"`
}

func sendTelegramMessage(content string) error {
	c := config.C.Telegram
	if c.BotToken == "" || c.ChatID == "" {
		return fmt.Errorf("telegram bot token or chat id not configured")
	}

	msg := telegramMessage{ChatID: c.ChatID, Text: content, Parse: "Markdown"}
	body, _ := json.Marshal(msg)
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.BotToken)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram send failed: status %d", resp.StatusCode)
	}
	return nil
}

// NotifyProviderAlert reports a provider communication failure to the ops
// channel. Fire-and-forget: an alerting failure must never affect the
// request path.
func NotifyProviderAlert(operation, paypalOrderID string, err error) {
	if !config.C.Telegram.Enabled {
		return
	}
	content := fmt.Sprintf("*PayPal %s failed*\norder: `%s`\nerror: %v", operation, paypalOrderID, err)
	go func() {
		if sendErr := sendTelegramMessage(content); sendErr != nil {
			logrus.WithError(sendErr).Warn("telegram alert delivery failed")
		}
	}()
}
