package momo

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/pkg/config"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
)

const (
	defaultBaseURL           = "https://payment.momo.vn"
	createSessionPath        = "v2/gateway/api/create"
	requestTypeCaptureWallet = "captureWallet"
	defaultOrderInfo         = "Eatzy food order"
	errorBodyReadLimit int64 = 1024
)

var (
	errPartnerCodeRequired = errors.New("momo partner code is required")
	errAccessKeyRequired   = errors.New("momo access key is required")
	errSecretKeyRequired   = errors.New("momo secret key is required")
)

// Client opens wallet payment sessions against the MOMO gateway.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	partnerCode string
	accessKey   string
	secretKey   string
	redirectURL string
	notifyURL   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the gateway base URL (sandbox vs production).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient validates the partner credentials and builds the wallet client.
func NewClient(cfg config.MomoConfig, opts ...Option) (*Client, error) {
	partnerCode := strings.TrimSpace(cfg.PartnerCode)
	if partnerCode == "" {
		return nil, errPartnerCodeRequired
	}
	accessKey := strings.TrimSpace(cfg.AccessKey)
	if accessKey == "" {
		return nil, errAccessKeyRequired
	}
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if secretKey == "" {
		return nil, errSecretKeyRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     defaultBaseURL,
		partnerCode: partnerCode,
		accessKey:   accessKey,
		secretKey:   secretKey,
		redirectURL: strings.TrimSpace(cfg.RedirectURL),
		notifyURL:   strings.TrimSpace(cfg.NotifyURL),
	}
	if cfg.BaseURL != "" {
		client.baseURL = strings.TrimSpace(cfg.BaseURL)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Session is the gateway's answer to a create request. PayURL may be empty
// even on a successful result code; the caller decides how to treat that.
type Session struct {
	PayURL     string
	ResultCode int
	Message    string
}

type createRequest struct {
	PartnerCode string `json:"partnerCode"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	RequestType string `json:"requestType"`
	ExtraData   string `json:"extraData"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

// CreateSession opens a payment session for the given amount, keyed by the
// order id. The wallet covers the whole checkout, so amount is the cart-wide
// total, not a per-restaurant slice.
func (c *Client) CreateSession(ctx context.Context, amount int64, orderID string) (*Session, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "momo client not configured")
	}
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	req := createRequest{
		PartnerCode: c.partnerCode,
		RequestID:   uuid.NewString(),
		Amount:      amount,
		OrderID:     orderID,
		OrderInfo:   defaultOrderInfo,
		RedirectURL: c.redirectURL,
		IPNURL:      c.notifyURL,
		RequestType: requestTypeCaptureWallet,
		ExtraData:   "",
		Lang:        "vi",
	}
	req.Signature = c.sign(req)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal momo request")
	}

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), createSessionPath)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build momo request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute momo request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "momo request failed")
	}

	var apiResp struct {
		PayURL     string `json:"payUrl"`
		ResultCode int    `json:"resultCode"`
		Message    string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode momo response")
	}

	if apiResp.ResultCode != 0 {
		return nil, pkgerrors.New(pkgerrors.CodePayment, fmt.Sprintf("momo rejected the session: %s", apiResp.Message)).
			WithDetails(map[string]any{"result_code": apiResp.ResultCode})
	}

	return &Session{
		PayURL:     apiResp.PayURL,
		ResultCode: apiResp.ResultCode,
		Message:    apiResp.Message,
	}, nil
}

// sign computes the HMAC-SHA256 signature over the canonical raw string the
// gateway verifies. Field order is fixed by the MOMO contract.
func (c *Client) sign(req createRequest) string {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		c.accessKey, req.Amount, req.ExtraData, req.IPNURL, req.OrderID,
		req.OrderInfo, req.PartnerCode, req.RedirectURL, req.RequestID, req.RequestType,
	)
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
