// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords defines the terminology rule table and matches rules
// against reconstructed abstracts.
package keywords

import "regexp"

// Rule pairs a regular expression with the canonical display label for
// the concept it detects. Multiple patterns may fold into one label.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

// acronymPatterns lists the exact pattern strings that are matched
// case-sensitively. Everything else is matched case-insensitively, so
// "machine learning" finds "Machine Learning" but "\bAI\b" never
// matches "ai".
var acronymPatterns = map[string]bool{
	`\bLLM(s)?\b`: true,
	`\bGPT\b`:     true,
	`\bBERT\b`:    true,
	`\bLSTM\b`:    true,
	`\bAI\b`:      true,
}

// DefaultRules returns the built-in ordered rule table. The order fixes
// the order of hit rows emitted per work; every rule is evaluated
// independently, so a work may register hits for several labels.
func DefaultRules() []Rule {
	return []Rule{
		{`\bLLM(s)?\b`, "Large Language Model (LLM)"},
		{`\blarge language model(s)?\b`, "Large Language Model (LLM)"},

		{`\bGPT\b`, "Generative Pre-trained Transformer (GPT)"},
		{`\bgenerative pre-trained transformer\b`, "Generative Pre-trained Transformer (GPT)"},

		{`\bBERT\b`, "BERT"},
		{`\bRoBERTa\b`, "RoBERTa"},
		{`\bALBERT\b`, "ALBERT"},
		{`\bDistilBERT\b`, "DistilBERT"},

		{`\bLSTM\b`, "Long Short-term Memory (LSTM)"},
		{`\blong short-term memory\b`, "Long Short-term Memory (LSTM)"},

		{`\blanguage model(s)?\b`, "Language model"},

		{`\btransformer(s)?\b`, "Transformer"},
		{`\bencoder(s)?\b`, "Encoder"},
		{`\bdecoder(s)?\b`, "Decoder"},

		{`\bartificial intelligence\b`, "Artificial intelligence"},
		{`\bAI\b.*\bmodels?\b|\bmodels?\b.*\bAI\b`, "Artificial intelligence"},

		{`\bmachine learning\b`, "Machine learning"},
		{`\bclassifier(s)?\b`, "Classifier"},
		{`\btraining data\b`, "Training data"},
		{`\bsupport vector machine(s)?\b`, "Support vector machine (SVM)"},

		{`\bneural network(s)?\b`, "Neural network"},
		{`\bartificial neural network(s)?\b`, "Artificial neural network"},
	}
}

// compileRule compiles a rule pattern, applying the acronym case policy.
// Returns nil for a pattern that does not compile; such a rule is a
// permanent non-match rather than an error.
func compileRule(pattern string) *regexp.Regexp {
	expr := pattern
	if !acronymPatterns[pattern] {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	return re
}

// Matcher evaluates a fixed ordered rule table against abstracts,
// caching the compiled expressions.
type Matcher struct {
	rules    []Rule
	compiled []*regexp.Regexp
}

// NewMatcher compiles the given rule table. Rules with invalid patterns
// are kept in place but never match.
func NewMatcher(rules []Rule) *Matcher {
	m := &Matcher{
		rules:    rules,
		compiled: make([]*regexp.Regexp, len(rules)),
	}
	for i, r := range rules {
		m.compiled[i] = compileRule(r.Pattern)
	}
	return m
}

// Rules returns the matcher's rule table in evaluation order.
func (m *Matcher) Rules() []Rule {
	return m.rules
}

// Match returns the rules whose patterns match the abstract, in table
// order. An empty abstract matches nothing.
func (m *Matcher) Match(abstract string) []Rule {
	if abstract == "" {
		return nil
	}
	var hits []Rule
	for i, re := range m.compiled {
		if re != nil && re.MatchString(abstract) {
			hits = append(hits, m.rules[i])
		}
	}
	return hits
}

// Matches reports whether a single pattern matches the abstract under the
// acronym case policy. Empty inputs and invalid patterns never match.
func Matches(pattern, abstract string) bool {
	if pattern == "" || abstract == "" {
		return false
	}
	re := compileRule(pattern)
	return re != nil && re.MatchString(abstract)
}
