// Package geoip enriquece escaneos con ciudad/país a partir de la IP del
// visitante, consultando un servicio externo compatible con ip-api.com.
// Todo el flujo es best-effort: un fallo aquí jamás bloquea el registro del escaneo.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cosmic-portals/portals-api/internal/application/ports"
)

var _ ports.GeoIPService = (*Client)(nil)

// Client implementa ports.GeoIPService con HTTP de la librería estándar.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL vacío deshabilita las consultas
// (Lookup devuelve nil sin error).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Status  string `json:"status"` // "success" o "fail"
	City    string `json:"city"`
	Country string `json:"country"`
}

// Lookup consulta ciudad y país para una IP. Devuelve nil sin error cuando el
// servicio está deshabilitado, la IP es privada/vacía o el proveedor falla:
// el enriquecimiento geográfico nunca es motivo de error para el caller.
func (c *Client) Lookup(ctx context.Context, ip string) (*ports.GeoLocation, error) {
	if c.baseURL == "" || ip == "" || ip == "unknown" {
		return nil, nil
	}

	url := fmt.Sprintf("%s/json/%s", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
	if err != nil {
		return nil, nil
	}

	var out lookupResponse
	if err := json.Unmarshal(body, &out); err != nil || out.Status != "success" {
		return nil, nil
	}

	return &ports.GeoLocation{City: out.City, Country: out.Country}, nil
}
