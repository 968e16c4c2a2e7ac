package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/neonclouds/neonclouds-backend/pkg/config"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
	"github.com/neonclouds/neonclouds-backend/pkg/metrics"
)

const (
	collaboratorChat  = "assistant"
	collaboratorRemix = "remix"

	fallbackNoCredential = "Connection error. Please check API Key configuration."
	fallbackEmptyReply   = "Just keep vaping! 💨"
	fallbackCallFailed   = "My circuits are a bit foggy. Ask me again in a sec! ⚡"
)

const personaPrompt = `You are "Cloud Master", a hip, knowledgeable, and responsible vape expert for "Neon Clouds Vape".
The user is asking: %q.

Guidelines:
1. Be cool, energetic, and concise (under 80 words).
2. Use emojis like 💨, ⚡, 🔋.
3. Recommend flavors or device types based on their question.
4. If they ask about quitting smoking, be supportive but compliant (mention vaping is an alternative).
5. Strictly NO sales to minors advice.
`

// Client wraps the two hosted generative collaborators. Calls never
// propagate errors: the text path resolves to a fallback string and
// the image path to a no-result outcome.
type Client struct {
	models     contentGenerator
	chatModel  string
	imageModel string
	timeout    time.Duration
	logg       *logger.Logger
	metrics    *metrics.CollaboratorMetrics
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkModels struct {
	client *genai.Client
}

func (s sdkModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return s.client.Models.GenerateContent(ctx, model, contents, cfg)
}

// NewClient builds the collaborator client. A missing credential is not
// an error: the returned client short-circuits every call to its
// fallback outcome.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logg *logger.Logger, collabMetrics *metrics.CollaboratorMetrics) (*Client, error) {
	client := &Client{
		chatModel:  cfg.ChatModel,
		imageModel: cfg.ImageModel,
		timeout:    cfg.CallTimeout,
		logg:       logg,
		metrics:    collabMetrics,
	}
	if !cfg.Enabled() {
		if logg != nil {
			logg.Warn(ctx, "gemini credential missing, collaborators degraded to fallbacks")
		}
		return client, nil
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	client.models = sdkModels{client: sdk}
	return client, nil
}

// Enabled reports whether calls reach the hosted endpoint.
func (c *Client) Enabled() bool {
	return c != nil && c.models != nil
}

// ChatReply answers one chat turn in the storefront persona. The
// returned string is always usable; failure causes are logged but
// indistinguishable to the caller.
func (c *Client) ChatReply(ctx context.Context, query string) string {
	if !c.Enabled() {
		c.metrics.IncFallback(collaboratorChat)
		return fallbackNoCredential
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(callCtx, c.chatModel, genai.Text(fmt.Sprintf(personaPrompt, query)), nil)
	c.metrics.ObserveDuration(collaboratorChat, time.Since(start))
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "assistant collaborator call failed", err)
		}
		c.metrics.IncFallback(collaboratorChat)
		return fallbackCallFailed
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.metrics.IncFallback(collaboratorChat)
		return fallbackEmptyReply
	}
	c.metrics.IncSuccess(collaboratorChat)
	return text
}

// RemixImage sends a source image and an instruction to the image
// collaborator. The second return is false whenever no image came back,
// regardless of cause.
func (c *Client) RemixImage(ctx context.Context, imageDataURI, prompt string) (string, bool) {
	if !c.Enabled() {
		c.metrics.IncFallback(collaboratorRemix)
		return "", false
	}

	payload, mimeType, err := DecodeDataURI(imageDataURI)
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "remix source image rejected", err)
		}
		c.metrics.IncFallback(collaboratorRemix)
		return "", false
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(payload, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(callCtx, c.imageModel, contents, nil)
	c.metrics.ObserveDuration(collaboratorRemix, time.Since(start))
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "remix collaborator call failed", err)
		}
		c.metrics.IncFallback(collaboratorRemix)
		return "", false
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				c.metrics.IncSuccess(collaboratorRemix)
				return EncodeDataURI(part.InlineData.Data, part.InlineData.MIMEType), true
			}
		}
	}

	c.metrics.IncFallback(collaboratorRemix)
	return "", false
}
