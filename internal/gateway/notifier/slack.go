package notifier

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Slack posts plain-text messages to an incoming-webhook URL.
type Slack struct {
	webhookURL string
	client     *resty.Client
}

func NewSlack(webhookURL string) *Slack {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(3 * time.Second)
	return &Slack{webhookURL: webhookURL, client: client}
}

func (s *Slack) SendText(text string) error {
	if s.webhookURL == "" {
		return fmt.Errorf("slack webhook url is empty")
	}
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post(s.webhookURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("slack status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}
