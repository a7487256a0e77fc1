package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/philippgille/chromem-go"
	"google.golang.org/genai"
)

// makeGeminiEmbedder creates an embedding function using Gemini's embedding API.
func makeGeminiEmbedder(modelName string, client *genai.Client) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		taskType := TaskTypeDocument
		if strings.HasPrefix(text, QueryTaskPrefix) {
			taskType = TaskTypeQuery
			text = strings.TrimPrefix(text, QueryTaskPrefix)
		}

		contents := []*genai.Content{{Parts: []*genai.Part{{Text: text}}}}
		dim := int32(EmbeddingDimension)
		res, err := client.Models.EmbedContent(ctx, modelName, contents, &genai.EmbedContentConfig{
			TaskType:             taskType,
			OutputDimensionality: &dim,
		})
		if err != nil {
			return nil, err
		}
		if len(res.Embeddings) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}
		values := res.Embeddings[0].Values
		normalize(values)
		return values, nil
	}
}

// makeLMStudioEmbedder creates an embedding function using LM Studio's
// OpenAI-compatible API, for setups without a Gemini key.
func makeLMStudioEmbedder(baseURL, modelName string) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		text = strings.TrimPrefix(text, QueryTaskPrefix)

		url := strings.TrimSuffix(baseURL, "/") + "/embeddings"
		requestBody, err := json.Marshal(map[string]interface{}{
			"model": modelName,
			"input": []string{text},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var result struct {
			Data []struct {
				Embedding []float32 `json:"embedding"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		if len(result.Data) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}

		normalize(result.Data[0].Embedding)
		return result.Data[0].Embedding, nil
	}
}

// newEmbeddingFunc returns the embedding function matching the configured
// provider.
func newEmbeddingFunc(cfg *Config, client *genai.Client) (chromem.EmbeddingFunc, error) {
	if cfg != nil && cfg.SuggestionProvider == "lmstudio" {
		return makeLMStudioEmbedder(cfg.LMStudio.BaseURL, "nomic-embed-text-v1.5"), nil
	}
	if client == nil {
		return nil, fmt.Errorf("gemini embedder requires a GenAI client")
	}
	model := DefaultEmbeddingModel
	if cfg != nil && cfg.Gemini.EmbeddingModel != "" {
		model = cfg.Gemini.EmbeddingModel
	}
	return makeGeminiEmbedder(model, client), nil
}

// normalize performs L2 normalization on a vector of float32 values.
// This ensures embeddings are on the unit sphere, which improves similarity search accuracy.
func normalize(v []float32) {
	var sum float64
	for _, val := range v {
		sum += float64(val * val)
	}
	magnitude := float32(math.Sqrt(sum))
	if magnitude <= 0 {
		return
	}
	for i := range v {
		v[i] /= magnitude
	}
}
