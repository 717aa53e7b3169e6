package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// Client talks to the ledger host's token-transfer API. In mock mode it
// keeps balances in memory instead, which is how local runs and the default
// configuration operate.
type Client struct {
	BaseURL       string
	APIKey        string
	escrowAccount string
	Mock          bool
	client        *http.Client

	mu       sync.Mutex
	balances map[string]int64 // token|account -> balance, mock mode only
}

// transferRequest is the wire form of a transfer submission
type transferRequest struct {
	Token  string `json:"token"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// NewClient creates a new ledger host client
func NewClient(baseURL, apiKey, escrowAccount string, mock bool) *Client {
	return &Client{
		BaseURL:       baseURL,
		APIKey:        apiKey,
		escrowAccount: escrowAccount,
		Mock:          mock,
		client:        &http.Client{Timeout: 10 * time.Second},
		balances:      make(map[string]int64),
	}
}

// EscrowAccount returns the address deposits are custodied under
func (c *Client) EscrowAccount() string {
	return c.escrowAccount
}

// Transfer moves tokens between two ledger accounts. The call is
// synchronous: it either completes on the host or fails here.
func (c *Client) Transfer(ctx context.Context, token, from, to string, amount int64) error {
	if c.Mock {
		return c.mockTransfer(token, from, to, amount)
	}

	body, err := json.Marshal(transferRequest{Token: token, From: from, To: to, Amount: amount})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("ledger transfer failed with status %d", resp.StatusCode)
	}
	return nil
}

// mockTransfer mirrors the host's balance accounting in memory. Accounts
// other than the escrow account are treated as externally funded, so only
// escrow outflows are balance-checked.
func (c *Client) mockTransfer(token, from, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %d", amount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fromKey := token + "|" + from
	if from == c.escrowAccount && c.balances[fromKey] < amount {
		return fmt.Errorf("insufficient escrow balance for token %s", token)
	}
	c.balances[fromKey] -= amount
	c.balances[token+"|"+to] += amount

	slog.Debug("Mock ledger transfer", "token", token, "from", from, "to", to, "amount", amount)
	return nil
}

// Balance returns the mock balance of an account. Mock mode only.
func (c *Client) Balance(token, account string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[token+"|"+account]
}
