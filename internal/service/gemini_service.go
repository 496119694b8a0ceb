package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const maxPromptResumeChars = 10000

var ErrCircuitOpen = errors.New("circuit breaker open")

// SkillExtractorInterface pulls a skill list out of resume text.
type SkillExtractorInterface interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	models         contentGenerator
	log            *zap.Logger
	Model          string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
	// Cooldown is how long the breaker stays open before a trial request is
	// let through.
	Cooldown          time.Duration
	circuitBreakerMax int
	now               func() time.Time

	mu                sync.Mutex
	consecutiveErrors int
	openedAt          time.Time
}

func NewGeminiService(ctx context.Context, log *zap.Logger) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiService(client.Models, geminiConfig.Model, log), nil
}

func newGeminiService(models contentGenerator, model string, log *zap.Logger) *GeminiService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiService{
		models:            models,
		log:               log.Named("gemini"),
		Model:             model,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		RequestTimeout:    60 * time.Second,
		Cooldown:          30 * time.Second,
		circuitBreakerMax: 5,
		now:               time.Now,
	}
}

// ExtractSkills asks the model for the technical and soft skills listed in a
// resume and returns them as plain strings.
func (s *GeminiService) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("resume text cannot be empty")
	}
	if utf8.RuneCountInString(text) > maxPromptResumeChars {
		text = string([]rune(text)[:maxPromptResumeChars])
	}

	prompt := fmt.Sprintf(`Extract the skills listed in the resume below.
Return STRICTLY a JSON object with this schema and nothing else:
{"skills": ["<skill>", "..."]}
Use short canonical skill names (e.g. "Python", "React", "Machine Learning").

Resume:
%s
`, text)

	result, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	skills, err := parseSkills(result.Text())
	if err != nil {
		s.log.Warn("unparseable skill response", zap.String("response", logger.TruncateForLog(result.Text(), 200)))
		return nil, err
	}
	return skills, nil
}

func (s *GeminiService) generate(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	if open, n := s.CircuitBreakerStatus(); open {
		return nil, fmt.Errorf("%w: too many consecutive errors (%d)", ErrCircuitOpen, n)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Info("retrying generate content", zap.Int("attempt", attempt), zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.models.GenerateContent(timeoutCtx, s.Model, genai.Text(prompt), genConfig)
		if err == nil {
			s.recordSuccess()
			if err := validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("invalid response: %w", err)
			}
			return result, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			s.recordFailure()
			return nil, fmt.Errorf("generate content failed: %w", err)
		}
		s.log.Warn("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

func (s *GeminiService) recordSuccess() {
	s.mu.Lock()
	s.consecutiveErrors = 0
	s.openedAt = time.Time{}
	s.mu.Unlock()
}

// recordFailure (re)opens the breaker once the error count reaches the limit.
// A failed trial request after the cooldown opens it again for another one.
func (s *GeminiService) recordFailure() {
	s.mu.Lock()
	s.consecutiveErrors++
	if s.consecutiveErrors >= s.circuitBreakerMax {
		s.openedAt = s.now()
	}
	s.mu.Unlock()
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.recordSuccess()
	s.log.Info("circuit breaker reset")
}

// CircuitBreakerStatus reports whether requests are currently refused. After
// the cooldown the breaker is half-open: it reports closed so one request can
// go through, and that request's outcome closes or reopens it.
func (s *GeminiService) CircuitBreakerStatus() (isOpen bool, consecutiveErrors int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consecutiveErrors < s.circuitBreakerMax {
		return false, s.consecutiveErrors
	}
	return s.now().Sub(s.openedAt) < s.Cooldown, s.consecutiveErrors
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return retryableStatus(apiErrPtr.Code)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("candidate content is empty")
	}
	return nil
}

// parseSkills reads {"skills": [...]} or a bare JSON array, tolerating
// markdown code fences around the payload.
func parseSkills(text string) ([]string, error) {
	clean := cleanJSON(text)
	if !gjson.Valid(clean) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	list := gjson.Get(clean, "skills")
	if !list.Exists() {
		list = gjson.Parse(clean)
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("response has no skills array")
	}

	skills := make([]string, 0)
	for _, item := range list.Array() {
		if item.Type != gjson.String {
			continue
		}
		if v := strings.TrimSpace(item.String()); v != "" {
			skills = append(skills, v)
		}
	}
	return skills, nil
}

func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}
