package match

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusUpcoming  Status = "upcoming"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
)

// Strategy names a classification table.
type Strategy string

const (
	// StrategyKeyword matches keywords on the lowercased status text.
	StrategyKeyword Strategy = "keyword"
	// StrategyDisplay matches the exact strings used for list grouping.
	StrategyDisplay Strategy = "display"
	// StrategyUnified checks the display live list first, then keywords.
	StrategyUnified Strategy = "unified"
)

func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case StrategyKeyword, StrategyDisplay, StrategyUnified:
		return s, nil
	case "":
		return StrategyDisplay, nil
	default:
		return "", fmt.Errorf("unknown status strategy %q", raw)
	}
}

type matchKind int

const (
	matchContains matchKind = iota
	matchEquals
	matchExact
)

// rule maps raw status text to a Status. Exact rules compare the untouched
// raw string; the others compare the lowercased and trimmed text.
type rule struct {
	kind   matchKind
	text   string
	status Status
}

var displayLiveRules = []rule{
	{kind: matchExact, text: "Match Started", status: StatusLive},
	{kind: matchExact, text: "First Half", status: StatusLive},
	{kind: matchExact, text: "Second Half", status: StatusLive},
	{kind: matchExact, text: "HT", status: StatusLive},
}

var displayFinishedRules = []rule{
	{kind: matchExact, text: "Match Finished", status: StatusFinished},
	{kind: matchExact, text: "FT", status: StatusFinished},
}

var keywordRules = []rule{
	{kind: matchContains, text: "finish", status: StatusFinished},
	{kind: matchEquals, text: "ft", status: StatusFinished},
	{kind: matchContains, text: "upcoming", status: StatusUpcoming},
	{kind: matchContains, text: "not started", status: StatusUpcoming},
	{kind: matchContains, text: "live", status: StatusLive},
	{kind: matchContains, text: "postponed", status: StatusPostponed},
	{kind: matchContains, text: "cancel", status: StatusCancelled},
}

// Classifier walks an ordered rule table; the first matching rule wins and
// anything unmatched is upcoming. It is immutable and safe for concurrent use.
type Classifier struct {
	strategy Strategy
	rules    []rule
}

var (
	keywordClassifier = newClassifier(StrategyKeyword)
	displayClassifier = newClassifier(StrategyDisplay)
	unifiedClassifier = newClassifier(StrategyUnified)
)

func newClassifier(strategy Strategy) *Classifier {
	var rules []rule
	switch strategy {
	case StrategyKeyword:
		rules = keywordRules
	case StrategyDisplay:
		rules = append(append(rules, displayLiveRules...), displayFinishedRules...)
	case StrategyUnified:
		rules = append(append(rules, displayLiveRules...), keywordRules...)
	}
	return &Classifier{strategy: strategy, rules: rules}
}

// NewClassifier returns the shared classifier for strategy. Unknown
// strategies fall back to keyword.
func NewClassifier(strategy Strategy) *Classifier {
	switch strategy {
	case StrategyDisplay:
		return displayClassifier
	case StrategyUnified:
		return unifiedClassifier
	default:
		return keywordClassifier
	}
}

func (c *Classifier) Strategy() Strategy {
	if c == nil {
		return StrategyKeyword
	}
	return c.strategy
}

func (c *Classifier) Classify(rawStatus string) Status {
	if c == nil {
		c = keywordClassifier
	}

	normalized := strings.ToLower(strings.TrimSpace(rawStatus))
	for _, r := range c.rules {
		if r.matches(rawStatus, normalized) {
			return r.status
		}
	}
	return StatusUpcoming
}

func (r rule) matches(raw, normalized string) bool {
	switch r.kind {
	case matchExact:
		return raw == r.text
	case matchEquals:
		return normalized == r.text
	default:
		return strings.Contains(normalized, r.text)
	}
}

// Classify maps a raw provider status with the keyword strategy.
func Classify(rawStatus string) Status {
	return keywordClassifier.Classify(rawStatus)
}

// IsLiveForDisplay reports whether rawStatus is in the exact display live list.
func IsLiveForDisplay(rawStatus string) bool {
	return displayClassifier.Classify(rawStatus) == StatusLive
}

// IsFinishedForDisplay reports whether rawStatus is in the exact display finished list.
func IsFinishedForDisplay(rawStatus string) bool {
	return displayClassifier.Classify(rawStatus) == StatusFinished
}

// HasResult reports whether a match in status s carries a score and timeline.
func (s Status) HasResult() bool {
	return s == StatusLive || s == StatusFinished
}
