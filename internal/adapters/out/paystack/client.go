// Package paystack talks to the Paystack transactions API.
package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/ports"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL  = "https://api.paystack.co"
	SignatureHeader = "x-paystack-signature"

	initializePath = "/transaction/initialize"
)

var _ ports.PaymentGateway = (*Client)(nil)

// Client initializes hosted checkouts and verifies webhook signatures, both
// with the account's secret key.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewClient(baseURL, secretKey string, httpClient *http.Client, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: httpClient,
		logger:     logger.WithField("component", "paystack"),
	}
}

type initializeBody struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency,omitempty"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    ports.InitializeResult `json:"data"`
}

// Initialize calls POST /transaction/initialize. Amounts are sent in kobo.
func (c *Client) Initialize(ctx context.Context, req ports.InitializeRequest) (ports.InitializeResult, error) {
	payload, err := json.Marshal(initializeBody{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return ports.InitializeResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+initializePath, bytes.NewReader(payload))
	if err != nil {
		return ports.InitializeResult{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).WithField("reference", req.Reference).Error("Paystack request failed")
		return ports.InitializeResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.InitializeResult{}, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"reference": req.Reference,
			"status":    resp.StatusCode,
		}).Warn("Paystack rejected transaction initialization")
		return ports.InitializeResult{}, fmt.Errorf("paystack API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env envelope
	if err = json.Unmarshal(body, &env); err != nil {
		return ports.InitializeResult{}, fmt.Errorf("paystack API error: decode response: %w", err)
	}
	if !env.Status {
		return ports.InitializeResult{}, fmt.Errorf("paystack API error: %s", env.Message)
	}
	if env.Data.Reference == "" {
		env.Data.Reference = req.Reference
	}

	c.logger.WithField("reference", env.Data.Reference).Info("Paystack transaction initialized")
	return env.Data, nil
}

// VerifySignature compares the hex HMAC-SHA512 of body, keyed with the secret
// key, against signature in constant time.
func (c *Client) VerifySignature(body []byte, signature string) bool {
	if c.secretKey == "" || signature == "" {
		return false
	}
	expected, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(Sign(c.secretKey, body), expected)
}

// Sign returns the raw HMAC-SHA512 of body.
func Sign(secretKey string, body []byte) []byte {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	return mac.Sum(nil)
}
