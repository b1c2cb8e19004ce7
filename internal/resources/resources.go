// Package resources asks the completion service for learning material and keeps what is usable.
package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/ai"
	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/prompts"
	"github.com/spigell/interview-prep/internal/schemas"
)

var errNoArray = errors.New("no JSON array found")

type Recommender struct {
	completer ai.Completer
	logger    *zap.Logger
}

func New(completer ai.Completer, log *zap.Logger) *Recommender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recommender{completer: completer, logger: log}
}

// Recommend never fails: every problem is logged and yields an empty list.
func (r *Recommender) Recommend(ctx context.Context, req prompts.ResourceRequest) []interview.Resource {
	prompt, err := prompts.SuggestResources(req)
	if err != nil {
		r.logger.Warn("resource request is incomplete", zap.Error(err))
		return []interview.Resource{}
	}

	raw, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		r.logger.Warn("resource suggestions are unavailable", zap.Error(err))
		return []interview.Resource{}
	}

	found, err := parse(raw)
	if err != nil {
		r.logger.Warn("resource response ignored",
			zap.Error(&interview.ParseError{Kind: "resources", Raw: raw, Cause: err}),
		)
		return []interview.Resource{}
	}

	r.logger.Debug("resources suggested", zap.Int("count", len(found)))
	return found
}

func parse(raw string) ([]interview.Resource, error) {
	doc, err := firstArray(stripFences(raw))
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.Resources, doc); err != nil {
		return nil, err
	}

	var entries []map[string]any
	if err := json.Unmarshal(doc, &entries); err != nil {
		return nil, err
	}

	var decoded []interview.Resource
	cfg := &mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(entries); err != nil {
		return nil, err
	}

	out := make([]interview.Resource, 0, len(decoded))
	seen := make(map[string]struct{}, len(decoded))
	for _, res := range decoded {
		res.Title = strings.TrimSpace(res.Title)
		res.URL = strings.TrimSpace(res.URL)
		if res.Title == "" || !webURL(res.URL) {
			continue
		}
		if _, dup := seen[res.URL]; dup {
			continue
		}
		seen[res.URL] = struct{}{}
		out = append(out, res)
	}
	return out, nil
}

func stripFences(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// firstArray returns the first '[' position that starts a complete JSON array.
func firstArray(text string) ([]byte, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			continue
		}
		if bytes.HasPrefix(bytes.TrimSpace(msg), []byte("[")) {
			return msg, nil
		}
	}
	return nil, errNoArray
}

func webURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
