package ports

import "context"

// GeoLocation ciudad y país resueltos desde una IP.
type GeoLocation struct {
	City    string
	Country string
}

// GeoIPService puerto de salida para geolocalización por IP. Best-effort:
// los adaptadores devuelven (nil, nil) cuando no hay dato, nunca bloquean el flujo.
type GeoIPService interface {
	Lookup(ctx context.Context, ip string) (*GeoLocation, error)
}
