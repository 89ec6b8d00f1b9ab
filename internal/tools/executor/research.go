// Package executor provides tool implementations for research operations.
package executor

import (
	"context"
	"fmt"
	"time"
)

// ResearchSearch searches the web.
type ResearchSearch struct{}

func (t *ResearchSearch) Name() string { return "research_search" }

func (t *ResearchSearch) Description() string { return "Search the web" }

func (t *ResearchSearch) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	query, ok := input["query"].(string)
	if !ok || query == "" {
		return TimedResult(NewErrorResult(fmt.Errorf("query is required")), start), nil
	}

	// This is a placeholder - actual web search would be implemented
	// using a search API or web scraping service
	return TimedResult(NewSuccessResult(map[string]any{
		"query": query,
		"message": "Web search not yet implemented - integrate with search API",
	}), start), nil
}

// ResearchSummarize summarizes content.
type ResearchSummarize struct{}

func (t *ResearchSummarize) Name() string { return "research_summarize" }

func (t *ResearchSummarize) Description() string { return "Summarize content" }

func (t *ResearchSummarize) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	content, ok := input["content"].(string)
	if !ok || content == "" {
		return TimedResult(NewErrorResult(fmt.Errorf("content is required")), start), nil
	}

	maxLength, _ := input["max_length"].(float64)
	if maxLength == 0 || maxLength > 500 {
		maxLength = 200
	}

	// Simple truncation-based summary
	// In production, this would use an LLM or specialized summarization service
	summary := content
	if len(summary) > int(maxLength) {
		summary = summary[:int(maxLength)] + "..."
	}

	return TimedResult(NewSuccessResult(map[string]any{
		"summary": summary,
		"original_length": len(content),
	}), start), nil
}

// ResearchCite cites sources.
type ResearchCite struct{}

func (t *ResearchCite) Name() string { return "research_cite" }

func (t *ResearchCite) Description() string { return "Cite sources" }

func (t *ResearchCite) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	url, ok := input["url"].(string)
	if !ok || url == "" {
		return TimedResult(NewErrorResult(fmt.Errorf("url is required")), start), nil
	}

	format, _ := input["format"].(string)
	if format == "" {
		format = "markdown"
	}

	// Placeholder citation generation
	citation := fmt.Sprintf("[%s](%s)", url, url)

	return TimedResult(NewSuccessResult(map[string]any{
		"url": url,
		"format": format,
		"citation": citation,
	}), start), nil
}

// ResearchLearn learns from content.
type ResearchLearn struct{}

func (t *ResearchLearn) Name() string { return "research_learn" }

func (t *ResearchLearn) Description() string { return "Learn from content" }

func (t *ResearchLearn) Execute(ctx context.Context, input map[string]any) (*Result, error) {
	start := time.Now()

	content, ok := input["content"].(string)
	if !ok || content == "" {
		return TimedResult(NewErrorResult(fmt.Errorf("content is required")), start), nil
	}

	topic, _ := input["topic"].(string)
	if topic == "" {
		topic = "general"
	}

	// In production, this would extract entities and facts
	// and add them to the knowledge graph
	return TimedResult(NewSuccessResult(map[string]any{
		"learned": true,
		"topic": topic,
		"content_length": len(content),
		"message": "Content processed for learning",
	}), start), nil
}
