// Package detector wraps the external emotion-classification API. The API is
// a black box returning a label and per-class scores; any failure falls back
// to a default classification instead of propagating.
package detector

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"emocare/api/internal/config"
	"emocare/api/internal/models"
)

// Detection is the classifier verdict for one image.
type Detection struct {
	Label      string
	Confidence float64
	Scores     map[string]float64
}

// Fallback returned when the API is disabled, unreachable or unparseable.
func fallbackDetection() Detection {
	return Detection{
		Label:      string(models.EmotionNeutral),
		Confidence: 0.5,
		Scores:     map[string]float64{string(models.EmotionNeutral): 0.5},
	}
}

type Client struct {
	cfg  config.DetectorConfig
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg config.DetectorConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// DetectFromBytes classifies an image. It never returns an error: transport
// or parse failures degrade to the fallback classification.
func (c *Client) DetectFromBytes(ctx context.Context, image []byte) Detection {
	if !c.cfg.Enabled {
		c.log.Warn().Msg("emotion detection disabled, using fallback classification")
		return fallbackDetection()
	}

	encoded := base64.StdEncoding.EncodeToString(image)
	body, err := json.Marshal(map[string]string{"inputs": encoded})
	if err != nil {
		c.log.Error().Err(err).Msg("encode detection request")
		return fallbackDetection()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		c.log.Error().Err(err).Msg("build detection request")
		return fallbackDetection()
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("url", c.cfg.URL).Msg("emotion detection call failed")
		return fallbackDetection()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Msg("emotion detection returned non-2xx")
		return fallbackDetection()
	}

	detection, err := parseResponse(resp)
	if err != nil {
		c.log.Error().Err(err).Msg("parse detection response")
		return fallbackDetection()
	}

	c.log.Info().
		Str("label", detection.Label).
		Float64("confidence", detection.Confidence).
		Msg("emotion detected")
	return detection
}

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type mapResponse struct {
	Emotions    map[string]float64 `json:"emotions"`
	Predictions []prediction       `json:"predictions"`
}

// parseResponse handles the two shapes the providers return: a bare list of
// predictions, or an object carrying an emotions map or predictions array.
func parseResponse(resp *http.Response) (Detection, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Detection{}, fmt.Errorf("decode body: %w", err)
	}

	scores := make(map[string]float64)

	var preds []prediction
	if err := json.Unmarshal(raw, &preds); err == nil {
		for _, p := range preds {
			scores[string(MapLabel(p.Label))] = p.Score
		}
	} else {
		var obj mapResponse
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Detection{}, fmt.Errorf("unexpected response shape: %w", err)
		}
		for label, score := range obj.Emotions {
			scores[strings.ToUpper(label)] = score
		}
		for _, p := range obj.Predictions {
			scores[string(MapLabel(p.Label))] = p.Score
		}
	}

	if len(scores) == 0 {
		return Detection{}, fmt.Errorf("no scores in response")
	}

	dominant := dominantScore(scores)
	return Detection{
		Label:      dominant,
		Confidence: scores[dominant],
		Scores:     scores,
	}, nil
}

// dominantScore picks the highest-scoring label, breaking ties lexically.
func dominantScore(scores map[string]float64) string {
	var best string
	var bestScore float64
	for label, score := range scores {
		if best == "" || score > bestScore || (score == bestScore && label < best) {
			best = label
			bestScore = score
		}
	}
	return best
}

// MapLabel folds a provider label onto the internal emotion enum by keyword.
func MapLabel(label string) models.EmotionType {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "joy"), strings.Contains(l, "happ"), strings.Contains(l, "smile"),
		strings.Contains(l, "love"), strings.Contains(l, "surprise"):
		return models.EmotionHappy
	case strings.Contains(l, "sad"):
		return models.EmotionSad
	case strings.Contains(l, "anger"), strings.Contains(l, "angry"), strings.Contains(l, "mad"),
		strings.Contains(l, "rage"), strings.Contains(l, "disgust"):
		return models.EmotionAngry
	case strings.Contains(l, "fear"), strings.Contains(l, "afraid"), strings.Contains(l, "scared"):
		return models.EmotionFear
	default:
		return models.EmotionNeutral
	}
}
