package domain

// Status classifies a LayerResult.
type Status string

const (
	// StatusSuccess means the provider returned a well-formed structured reply.
	StatusSuccess Status = "success"
	// StatusPartial means the provider found only some of the requested data.
	StatusPartial Status = "partial"
	// StatusNotFound means the provider found nothing relevant.
	StatusNotFound Status = "not_found"
	// StatusParsed means the reply was freeform text wrapped by the normalizer.
	StatusParsed Status = "parsed"
	// StatusError means every provider in the chain failed for this call.
	StatusError Status = "error"
)

// Finding is one atomic piece of extracted information.
// These records are emitted by the LLM as JSON and returned to API
// callers verbatim, so the JSON tags are the schema.
type Finding struct {
	Category          string  `json:"category"`
	Subcategory       string  `json:"subcategory"`
	Data              string  `json:"data"`
	Confidence        float64 `json:"confidence"`
	Source            string  `json:"source"`
	RelevanceScore    float64 `json:"relevance_score"`
	AdditionalContext string  `json:"additional_context,omitempty"`
}

// LayerResult is the outcome of one executor call. Immutable once returned.
type LayerResult struct {
	Status         Status         `json:"status"`
	Results        []Finding      `json:"results,omitempty"`
	Summary        string         `json:"summary,omitempty"`
	TotalMatches   int            `json:"total_matches"`
	SearchMetadata map[string]any `json:"search_metadata,omitempty"`
	Error          string         `json:"error,omitempty"`
	RawResponse    string         `json:"raw_response,omitempty"`
}

// summaryLimit is the maximum summary length produced by the normalizer.
const summaryLimit = 200

// NormalizeText wraps a freeform provider reply into a well-formed
// LayerResult. Pure and deterministic; accepts any string, including "".
func NormalizeText(raw string) LayerResult {
	return LayerResult{
		Status: StatusParsed,
		Results: []Finding{{
			Category:          "general",
			Subcategory:       "information_extracted",
			Data:              raw,
			Confidence:        0.7,
			Source:            "llm_response",
			RelevanceScore:    0.6,
			AdditionalContext: "parsed from text response",
		}},
		Summary:      Summarize(raw),
		TotalMatches: 1,
		SearchMetadata: map[string]any{
			"query_analysis":  "general_text_search",
			"search_strategy": "llm_parsing",
			"processing_time": "fallback_method",
		},
	}
}

// Summarize truncates text to the first 200 characters, appending an
// ellipsis when truncated.
func Summarize(text string) string {
	if len(text) <= summaryLimit {
		return text
	}
	return text[:summaryLimit] + "..."
}
