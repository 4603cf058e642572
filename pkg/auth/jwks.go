package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultRefreshCooldown = time.Minute

var ErrUnknownKey = errors.New("auth: signing key not published by identity provider")

// ProviderConfig describes the external identity provider. Empty Issuer or
// Audience disables that check.
type ProviderConfig struct {
	URL             string
	Issuer          string
	Audience        string
	RefreshCooldown time.Duration
}

type jsonWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// Provider resolves RS256 verification keys from a JWKS endpoint. Keys are
// decoded once per fetch; an unknown kid triggers at most one fetch per
// cooldown, whether the previous fetch succeeded or not.
type Provider struct {
	cfg        ProviderConfig
	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	keys        map[string]*rsa.PublicKey
	lastAttempt time.Time
	lastErr     error
}

func NewProvider(cfg ProviderConfig) *Provider {
	if cfg.RefreshCooldown <= 0 {
		cfg.RefreshCooldown = defaultRefreshCooldown
	}
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		now:        time.Now,
		keys:       make(map[string]*rsa.PublicKey),
	}
}

// KeyFunc is a jwt.Keyfunc for RS256 tokens carrying a kid header
func (p *Provider) KeyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, errors.New("kid header not found")
	}
	return p.key(kid)
}

// Verify applies the configured issuer and audience to external claims
func (p *Provider) Verify(claims jwt.Claims) error {
	if p.cfg.Issuer != "" {
		iss, err := claims.GetIssuer()
		if err != nil || iss != p.cfg.Issuer {
			return fmt.Errorf("%w: issuer %q", jwt.ErrTokenInvalidIssuer, iss)
		}
	}
	if p.cfg.Audience != "" {
		aud, err := claims.GetAudience()
		if err != nil || !slices.Contains(aud, p.cfg.Audience) {
			return jwt.ErrTokenInvalidAudience
		}
	}
	return nil
}

func (p *Provider) key(kid string) (*rsa.PublicKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if key, ok := p.keys[kid]; ok {
		return key, nil
	}

	// Unknown kid: the provider may have rotated keys
	if p.lastAttempt.IsZero() || p.now().Sub(p.lastAttempt) >= p.cfg.RefreshCooldown {
		p.lastAttempt = p.now()
		p.lastErr = p.refreshLocked()
	}
	if key, ok := p.keys[kid]; ok {
		return key, nil
	}
	if p.lastErr != nil {
		return nil, fmt.Errorf("jwks refresh: %w", p.lastErr)
	}
	return nil, ErrUnknownKey
}

func (p *Provider) refreshLocked() error {
	resp, err := p.httpClient.Get(p.cfg.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var set struct {
		Keys []jsonWebKey `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			return fmt.Errorf("key %q: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}
	// A failed fetch keeps the previous keys
	p.keys = keys
	return nil
}

func (k jsonWebKey) publicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}
	if len(n) == 0 || len(e) == 0 {
		return nil, errors.New("empty modulus or exponent")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(new(big.Int).SetBytes(e).Int64()),
	}, nil
}
