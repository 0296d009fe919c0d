package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"bazaar-tracker/internal/models"
)

const (
	mojangBaseURL        = "https://api.mojang.com"
	hypixelBaseURL       = "https://api.hypixel.net"
	playerDefaultTimeout = 10 * time.Second
	uuidCacheSize        = 256
)

// ErrPlayerNotFound is returned when Mojang has no profile for a username.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerService resolves usernames to UUIDs via Mojang and fetches SkyBlock
// achievement levels via the Hypixel player API.
type PlayerService struct {
	client     *http.Client
	apiKey     string
	mojangURL  string
	hypixelURL string
	limiter    *rate.Limiter

	// Usernames change rarely; cache resolved UUIDs to keep repeated
	// lookups off the Mojang API.
	uuidCache *lru.Cache[string, string]
}

// NewPlayerService creates a player lookup client. The Hypixel API key is
// only needed for stats lookups, not for UUID resolution.
func NewPlayerService(apiKey string) *PlayerService {
	cache, _ := lru.New[string, string](uuidCacheSize)
	return &PlayerService{
		client: &http.Client{
			Timeout: playerDefaultTimeout,
		},
		apiKey:     apiKey,
		mojangURL:  mojangBaseURL,
		hypixelURL: hypixelBaseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		uuidCache:  cache,
	}
}

// ResolveUUID turns a username into its canonical dashed UUID. Mojang
// answers with 32 undashed hex characters; the result is normalized before
// caching.
func (s *PlayerService) ResolveUUID(ctx context.Context, username string) (string, error) {
	key := strings.ToLower(username)
	if id, ok := s.uuidCache.Get(key); ok {
		return id, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/users/profiles/minecraft/%s", s.mojangURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to resolve username: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return "", ErrPlayerNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mojang API returned status %d", resp.StatusCode)
	}

	var profile struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("failed to decode mojang response: %w", err)
	}

	id, err := uuid.Parse(profile.ID)
	if err != nil {
		return "", fmt.Errorf("mojang returned invalid UUID %q: %w", profile.ID, err)
	}

	canonical := id.String()
	s.uuidCache.Add(key, canonical)
	return canonical, nil
}

// GetSkyblockStats fetches the player's SkyBlock achievement levels. A
// player Hypixel has never seen yields empty stats, not an error.
func (s *PlayerService) GetSkyblockStats(ctx context.Context, playerUUID string) (*models.PlayerStats, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("hypixel API key not configured")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("uuid", playerUUID)
	reqURL := fmt.Sprintf("%s/player?%s", s.hypixelURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hypixel API returned status %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Player  *struct {
			Achievements models.PlayerStats `json:"achievements"`
		} `json:"player"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode player response: %w", err)
	}

	if body.Player == nil {
		return &models.PlayerStats{}, nil
	}
	stats := body.Player.Achievements
	return &stats, nil
}
