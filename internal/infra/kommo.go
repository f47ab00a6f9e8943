package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// KommoLead is the lead payload pushed to the Kommo CRM when an operación is
// created. Custom fields travel as (field_id, value) pairs; the pipeline side
// reads them back through the webhook.
type KommoLead struct {
	Name         string           `json:"name"`
	Price        int64            `json:"price"`
	CustomFields []KommoLeadCampo `json:"custom_fields_values,omitempty"`
	Tags         []KommoLeadTag   `json:"_embedded_tags,omitempty"`
}

type KommoLeadCampo struct {
	FieldID int64            `json:"field_id"`
	Values  []KommoLeadValor `json:"values"`
}

type KommoLeadValor struct {
	Value interface{} `json:"value"`
}

type KommoLeadTag struct {
	Name string `json:"name"`
}

type kommoTokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type kommoLeadResponse struct {
	Embedded struct {
		Leads []struct {
			ID int64 `json:"id"`
		} `json:"leads"`
	} `json:"_embedded"`
}

// KommoClient talks to the Kommo CRM REST API. Tokens are OAuth2 with a
// refresh flow; the client refreshes lazily when the access token is near
// expiry. CRM outages are absorbed by the worker retries and the circuit
// breaker, never by request handlers.
type KommoClient struct {
	apiBase      string
	tokenURL     string
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

type KommoConfig struct {
	APIBase      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
}

func NewKommoClient(cfg KommoConfig) *KommoClient {
	return &KommoClient{
		apiBase:      cfg.APIBase,
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		refreshToken: cfg.RefreshToken,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// CrearLead creates the lead in Kommo and returns its id.
func (c *KommoClient) CrearLead(ctx context.Context, lead KommoLead) (int64, error) {
	token, err := c.token(ctx)
	if err != nil {
		return 0, err
	}

	body, err := json.Marshal([]KommoLead{lead})
	if err != nil {
		return 0, fmt.Errorf("kommo: marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/api/v4/leads", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("kommo: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("kommo: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("kommo: api returned %d", resp.StatusCode)
	}

	var result kommoLeadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("kommo: decode response: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("kommo: respuesta sin leads")
	}
	return result.Embedded.Leads[0].ID, nil
}

// token returns a valid access token, refreshing when expired.
func (c *KommoClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt.Add(-1*time.Minute)) {
		return c.accessToken, nil
	}

	payload := map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"grant_type":    "refresh_token",
		"refresh_token": c.refreshToken,
		"redirect_uri":  c.redirectURI,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("kommo: marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("kommo: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("kommo: token endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("kommo: token endpoint returned %d", resp.StatusCode)
	}

	var tok kommoTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("kommo: decode token: %w", err)
	}

	c.accessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		c.refreshToken = tok.RefreshToken
	}
	c.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}
