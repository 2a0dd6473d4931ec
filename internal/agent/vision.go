package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hoopsight/hoopsight/internal/anthropic"
	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/observability"
	"github.com/hoopsight/hoopsight/internal/screenshot"
)

const visionSystemPrompt = `You are an expert basketball analyst analyzing game boxscores.
When answering questions about the boxscore image:
1. Look carefully at all player statistics shown
2. Provide a clear, concise answer
3. Include specific numbers from the boxscore
4. After your answer, on a new line, provide a confidence score from 0.0 to 1.0 in the format: CONFIDENCE: 0.XX

Focus on accuracy - the data in the image is the source of truth.`

// Vision answers questions by sending the game's screenshot to the model and
// letting it read the boxscore off the image.
type Vision struct {
	client Messenger
	source screenshot.Source
	log    *slog.Logger
}

func NewVision(client Messenger, source screenshot.Source, logger *slog.Logger) (*Vision, error) {
	if client == nil {
		return nil, fmt.Errorf("messenger is required")
	}
	if source == nil {
		return nil, fmt.Errorf("screenshot source is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Vision{client: client, source: source, log: logger}, nil
}

// Ask runs one vision analysis for a game. The returned Result always has
// the agent name and elapsed time filled in, with any failure as error text.
func (v *Vision) Ask(ctx context.Context, apiKey, question string, game boxscore.Game) Result {
	start := time.Now()
	result := v.ask(ctx, apiKey, question, game)
	result.Agent = AgentVision
	result.DurationMS = time.Since(start).Milliseconds()

	observability.ObserveAgentRun(AgentVision, result.Failed(), time.Since(start))
	v.log.Info("vision agent finished",
		slog.String("game_id", game.ID),
		slog.Int64("duration_ms", result.DurationMS),
		slog.Bool("failed", result.Failed()),
	)
	return result
}

func (v *Vision) ask(ctx context.Context, apiKey, question string, game boxscore.Game) Result {
	if game.ScreenshotPath == "" {
		return Result{Err: "No screenshot path provided"}
	}

	data, mediaType, err := v.source.Fetch(ctx, game.ScreenshotPath)
	if err != nil {
		if errors.Is(err, screenshot.ErrScreenshotNotFound) {
			return Result{Err: fmt.Sprintf("Screenshot not found: %s", game.ScreenshotPath)}
		}
		return Result{Err: "Vision analysis failed: " + err.Error()}
	}

	resp, err := v.client.Message(ctx, apiKey, anthropic.Request{
		System: visionSystemPrompt,
		Messages: []anthropic.Message{
			anthropic.UserMessage(
				anthropic.ImageBlock(mediaType, anthropic.EncodeImage(data)),
				anthropic.TextBlock(visionPrompt(question)),
			),
		},
	})
	if err != nil {
		return Result{Err: "Vision analysis failed: " + err.Error(), Screenshot: game.ScreenshotPath}
	}

	answer, confidence := anthropic.ParseConfidence(anthropic.FirstText(resp))
	return Result{
		Answer:     answer,
		Confidence: confidence,
		Screenshot: game.ScreenshotPath,
	}
}

func visionPrompt(question string) string {
	return fmt.Sprintf(`Analyze this basketball boxscore image and answer the following question:

Question: %s

Instructions:
- Look at the complete boxscore data shown in the image
- Find the specific statistics needed to answer the question
- Provide a clear, direct answer with specific numbers
- If the question asks about "top" or "most", find the maximum value
- Include the player name and their team when relevant

Answer the question based solely on what you can see in the image.`, question)
}
