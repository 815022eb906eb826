package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"newsroomai/pkg/domain"
)

var (
	// ErrMalformedResponse indicates the model output contained no JSON object.
	ErrMalformedResponse = errors.New("model did not return valid JSON")

	// ErrInvalidBiasScore indicates bias_score could not be coerced to an int in [0,100].
	ErrInvalidBiasScore = errors.New("invalid bias_score")
)

// MissingFieldError reports a required key absent from the parsed model JSON.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("model response missing required field %q", e.Field)
}

var requiredFields = []string{"bias_score", "bias_label", "summary", "perspectives"}

// ParseModelOutput extracts the JSON object embedded in raw model output and
// normalizes it into a domain.Analysis.
//
// Models sometimes wrap JSON in prose despite instructions, so the document is
// taken as the substring from the first '{' to the last '}' inclusive. This is
// a best-effort extraction, not a schema validator; truncated JSON surfaces
// the underlying unmarshal error.
func ParseModelOutput(raw string) (domain.Analysis, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end < start {
		return domain.Analysis{}, ErrMalformedResponse
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &data); err != nil {
		return domain.Analysis{}, fmt.Errorf("parse model JSON: %w", err)
	}

	for _, field := range requiredFields {
		if _, ok := data[field]; !ok {
			return domain.Analysis{}, &MissingFieldError{Field: field}
		}
	}

	score, err := coerceBiasScore(data["bias_score"])
	if err != nil {
		return domain.Analysis{}, err
	}
	label, err := stringField(data, "bias_label")
	if err != nil {
		return domain.Analysis{}, err
	}
	summary, err := stringField(data, "summary")
	if err != nil {
		return domain.Analysis{}, err
	}
	perspectives, err := stringSliceField(data, "perspectives")
	if err != nil {
		return domain.Analysis{}, err
	}
	explanation, err := normalizeExplanation(data["explanation"])
	if err != nil {
		return domain.Analysis{}, err
	}

	return domain.Analysis{
		BiasScore:    score,
		BiasLabel:    domain.BiasLabel(label),
		Summary:      summary,
		Perspectives: perspectives,
		Explanation:  explanation,
		DeepAnalysis: normalizeDeepAnalysis(data["deep_analysis"]),
	}, nil
}

// coerceBiasScore accepts a JSON number or a numeric string and enforces [0,100].
func coerceBiasScore(v any) (int, error) {
	var score int
	switch val := v.(type) {
	case float64:
		score = int(val)
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			f, ferr := val.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidBiasScore, val.String())
			}
			n = int64(f)
		}
		score = int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidBiasScore, val)
		}
		score = n
	default:
		return 0, fmt.Errorf("%w: not numeric", ErrInvalidBiasScore)
	}
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("%w: %d out of range", ErrInvalidBiasScore, score)
	}
	return score, nil
}

func stringField(data map[string]any, field string) (string, error) {
	s, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("model response field %q is not a string", field)
	}
	return s, nil
}

func stringSliceField(data map[string]any, field string) ([]string, error) {
	items, ok := data[field].([]any)
	if !ok {
		return nil, fmt.Errorf("model response field %q is not an array", field)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("model response field %q contains a non-string entry", field)
		}
		out = append(out, s)
	}
	return out, nil
}

// normalizeExplanation flattens a structured explanation object to an indented
// string so downstream storage always sees a string.
func normalizeExplanation(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case map[string]any:
		pretty, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return "", fmt.Errorf("flatten explanation: %w", err)
		}
		return string(pretty), nil
	default:
		return "", fmt.Errorf("model response field %q has unsupported type", "explanation")
	}
}

// normalizeDeepAnalysis maps the literal string "null" (and JSON null) to
// absent; any other value is carried through verbatim.
func normalizeDeepAnalysis(v any) any {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "null" {
		return nil
	}
	return v
}
