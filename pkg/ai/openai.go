package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eduresult",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of AI advisor requests",
	}, []string{"model", "operation"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduresult",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of AI advisor failures",
	}, []string{"model", "operation"})
)

// OpenAIConfig defines configuration options for the OpenAI advisor.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIAdvisor implements Advisor against the OpenAI chat completion API.
type OpenAIAdvisor struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIAdvisor builds a new advisor using the provided configuration.
func NewOpenAIAdvisor(cfg OpenAIConfig) (*OpenAIAdvisor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	tracer := otel.Tracer("github.com/eduresult/eduresult-go-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIAdvisor{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// GenerateRemarks asks the model for a short counselor-style commentary on a
// computed result.
func (a *OpenAIAdvisor) GenerateRemarks(parent context.Context, report StudentReport) (string, error) {
	ctx, span := a.tracer.Start(parent, "openai.remarks", trace.WithAttributes(
		attribute.String("model", a.cfg.Model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: remarksSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildRemarksPrompt(report),
			},
		},
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(a.cfg.Model, "remarks").Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(a.cfg.Model, "remarks").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai remarks: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(a.cfg.Model, "remarks").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	remarks := strings.TrimSpace(resp.Choices[0].Message.Content)
	if remarks == "" {
		err := fmt.Errorf("empty remarks returned from openai")
		aiFailures.WithLabelValues(a.cfg.Model, "remarks").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return remarks, nil
}

// ExtractReportCard sends the scanned card image to the vision model and
// parses the JSON response into an Extraction.
func (a *OpenAIAdvisor) ExtractReportCard(parent context.Context, image []byte, mime string) (Extraction, error) {
	ctx, span := a.tracer.Start(parent, "openai.extract", trace.WithAttributes(
		attribute.String("model", a.cfg.Model),
		attribute.String("image.mime", mime),
		attribute.Int("image.bytes", len(image)),
	))
	defer span.End()

	if len(image) == 0 {
		return Extraction{}, fmt.Errorf("image payload is empty")
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image))

	request := openai.ChatCompletionRequest{
		Model:     a.cfg.Model,
		MaxTokens: a.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionSystemPrompt(),
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Read this result card and return the JSON object.",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURI},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(a.cfg.Model, "extract").Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(a.cfg.Model, "extract").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Extraction{}, fmt.Errorf("openai extract: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(a.cfg.Model, "extract").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Extraction{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	extraction, err := parseExtractionResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(a.cfg.Model, "extract").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Extraction{}, err
	}

	return extraction, nil
}

func remarksSystemPrompt() string {
	return "You are a professional academic counselor. Given a student result, reply with a short, encouraging " +
		"2-sentence feedback for the student in plain text. Mention specific areas of strength or improvement."
}

func buildRemarksPrompt(report StudentReport) string {
	builder := strings.Builder{}
	builder.WriteString("Student Name: ")
	builder.WriteString(report.Name)
	builder.WriteString("\nGrade: ")
	builder.WriteString(report.Grade)
	builder.WriteString(fmt.Sprintf("\nPercentage: %.2f%%", report.Percentage))
	builder.WriteString("\nStatus: ")
	builder.WriteString(report.Status)
	builder.WriteString("\nSubjects: ")
	for i, subject := range report.Subjects {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(fmt.Sprintf("%s: %g/%g", subject.SubjectName, subject.Theory+subject.Practical, subject.MaxMarks))
	}
	return builder.String()
}

func extractionSystemPrompt() string {
	return "You read scanned school result cards. Respond with a JSON object with keys name, rollNo, className, " +
		"section and subjects, where subjects is an array of {subjectName, theory, practical, maxMarks}. Use an " +
		"empty string or 0 for anything you cannot read."
}

func parseExtractionResponse(content string) (Extraction, error) {
	var extraction Extraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return Extraction{}, fmt.Errorf("parse extraction json: %w", err)
	}

	for i := range extraction.Subjects {
		if extraction.Subjects[i].MaxMarks <= 0 {
			extraction.Subjects[i].MaxMarks = 100
		}
	}

	return extraction, nil
}
