package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"agrilink/domain"
	"agrilink/pkg/logger"
)

type GatewayConfig struct {
	BaseURL  string
	APIKey   string
	SenderID string
}

// GatewayRepository sends SMS through the SMSNotify GH HTTP API.
type GatewayRepository struct {
	gatewayConfig GatewayConfig
	client        *http.Client
}

func NewGatewayRepository(cfg GatewayConfig) *GatewayRepository {
	return &GatewayRepository{
		gatewayConfig: cfg,
		client:        &http.Client{Timeout: 5 * time.Second},
	}
}

type gatewayResponse struct {
	Code    json.Number `json:"code"`
	Message string      `json:"message"`
}

// Send delivers a single message to a phone number in 233XXXXXXXXX form.
// The gateway reports code 1000 on accepted delivery.
func (r *GatewayRepository) Send(ctx context.Context, phone, message string) error {
	params := url.Values{}
	params.Set("key", r.gatewayConfig.APIKey)
	params.Set("to", phone)
	params.Set("msg", message)
	params.Set("sender_id", r.gatewayConfig.SenderID)

	endpoint := r.gatewayConfig.BaseURL + "/smsapi?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSMSDelivery, err)
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read sms response: %w", err)
	}

	var gwRes gatewayResponse
	if err := json.Unmarshal(bodyBytes, &gwRes); err != nil {
		logger.Error("sms gateway returned unparseable body", "body", string(bodyBytes))
		return fmt.Errorf("%w: unexpected gateway response", domain.ErrSMSDelivery)
	}

	if gwRes.Code.String() != "1000" {
		logger.Error("sms gateway rejected message", "code", gwRes.Code.String(), "message", gwRes.Message)
		return fmt.Errorf("%w: gateway code %s", domain.ErrSMSDelivery, gwRes.Code.String())
	}

	return nil
}
