package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Analysis holds the derived fields attached to memory-kind entries.
type Analysis struct {
	Summary  string
	Emotions []string
}

// MemoryAnalyzer asks the completion provider for a short summary and an
// emotion list for a piece of free text. Its failures are absorbed: a
// broken provider or malformed output degrades to empty fields so that
// the primary save is never blocked.
type MemoryAnalyzer struct {
	client *OpenAICompatibleClient
	cfg    ChatConfig
}

func NewMemoryAnalyzer(client *OpenAICompatibleClient, cfg ChatConfig) *MemoryAnalyzer {
	return &MemoryAnalyzer{client: client, cfg: cfg}
}

func (a *MemoryAnalyzer) Analyze(ctx context.Context, text string) Analysis {
	prompt := fmt.Sprintf(
		"Summarize the following memory in 1-2 sentences.\n"+
			"Then, list 3-5 emotions the user might be feeling, comma-separated.\n"+
			"Reply with exactly two lines, the first starting with \"Summary:\" and the second with \"Emotions:\".\n"+
			"Memory: %q", text)

	output, err := a.client.Complete(ctx, a.cfg, []ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		log.Printf("memory analysis failed: %v", err)
		return Analysis{Emotions: []string{}}
	}
	return parseAnalysis(output)
}

// parseAnalysis reads the expected two-line shape positionally. Output
// that does not follow the shape degrades field-wise to empty values.
func parseAnalysis(output string) Analysis {
	analysis := Analysis{Emotions: []string{}}

	lines := strings.Split(output, "\n")
	if len(lines) > 0 {
		analysis.Summary = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), "Summary:"))
	}
	if len(lines) > 1 {
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[1]), "Emotions:"))
		for _, part := range strings.Split(rest, ",") {
			if emotion := strings.TrimSpace(part); emotion != "" {
				analysis.Emotions = append(analysis.Emotions, emotion)
			}
		}
	}
	return analysis
}
