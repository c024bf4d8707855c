package openai

import (
	"context"
	"errors"
	"fmt"
	"github.com/samber/lo"
	goopenai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"net/http"
	"time"
)

const DefaultModel = "gpt-4o-mini"

// requestTemperature is used for both extraction and ranking requests.
const requestTemperature = 0.3

type Client struct {
	client            *goopenai.Client
	model             string
	requestTimeout    time.Duration
	minuteRateLimiter *rate.Limiter
	dayRateLimiter    *rate.Limiter
}

func NewClient(apiKey string, model string, requestTimeout time.Duration) *Client {

	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client:         goopenai.NewClient(apiKey),
		model:          model,
		requestTimeout: requestTimeout,
	}
}

func (c *Client) SetMinuteRateLimit(maxRequestsPerMinute float32) {
	c.minuteRateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerMinute/60), 1)
}

func (c *Client) SetDayRateLimit(maxRequestsPerDay float32) {
	c.dayRateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerDay/86400), int(maxRequestsPerDay))
}

// GenerateJSON sends a system and user message pair and returns the raw
// content of the first choice. The request is constrained to the JSON-object
// response format; server-side failures are retried up to three times.
func (c *Client) GenerateJSON(ctx context.Context, system string, user string) (string, error) {

	var resp string
	var err error

	_, _, _ = lo.AttemptWhileWithDelay(3, 2*time.Second, func(i int, _ time.Duration) (error, bool) {
		if i > 0 {
			log.Warn("openai api returned server error, retrying...")
		}
		resp, err = c.waitAndGenerate(ctx, system, user)
		return err, isServerError(err)
	})

	return resp, err
}

func (c *Client) waitAndGenerate(ctx context.Context, system string, user string) (string, error) {

	limiters := []*rate.Limiter{c.minuteRateLimiter, c.dayRateLimiter}
	for _, limiter := range limiters {
		if limiter != nil {
			err := limiter.Wait(ctx)
			if err != nil {
				return "", err
			}
		}
	}

	return c.tryGenerate(ctx, system, user)
}

func (c *Client) tryGenerate(ctx context.Context, system string, user string) (string, error) {

	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	response, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: requestTemperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}

	return response.Choices[0].Message.Content, nil
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return false
}
