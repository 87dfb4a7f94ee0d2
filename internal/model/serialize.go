package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadProblem loads a problem file from the given path.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file %s: %w", path, err)
	}

	p, err := ParseProblem(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}

	return p, nil
}

// ParseProblem decodes a problem from YAML. Unknown keys are rejected so
// that typos in hand-edited files surface.
func ParseProblem(data []byte) (*Problem, error) {
	var p Problem
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &p, nil
}

// SaveProblem saves a problem file to the given path.
// Each score row is written on one line so the matrix stays readable.
func SaveProblem(path string, p *Problem) error {
	node := buildProblemNode(p)

	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("failed to encode problem: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write problem file %s: %w", path, err)
	}

	return nil
}

// LoadResult loads a result file from the given path.
func LoadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}

	var r Result
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse result file %s: %w", path, err)
	}

	return &r, nil
}

// SaveResult saves a result file to the given path.
func SaveResult(path string, r *Result) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file %s: %w", path, err)
	}

	return nil
}

// buildProblemNode creates a yaml.Node tree for a Problem.
func buildProblemNode(p *Problem) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	addStringField(doc, "name", p.Name)
	if p.Description != "" {
		addMultilineStringField(doc, "description", p.Description)
	}

	donors := &yaml.Node{Kind: yaml.SequenceNode}
	for _, d := range p.Donors {
		n := &yaml.Node{Kind: yaml.MappingNode}
		addStringField(n, "id", d.ID)
		if d.Country != "" {
			addStringField(n, "country", string(d.Country))
		}
		if d.BloodGroup != "" {
			addStringField(n, "blood_group", string(d.BloodGroup))
		}
		if d.Type != "" {
			addStringField(n, "type", string(d.Type))
		}
		if d.RelatedRecipient != "" {
			addStringField(n, "related_recipient", d.RelatedRecipient)
		}
		donors.Content = append(donors.Content, n)
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "donors"},
		donors,
	)

	recipients := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range p.Recipients {
		n := &yaml.Node{Kind: yaml.MappingNode}
		addStringField(n, "id", r.ID)
		if r.Country != "" {
			addStringField(n, "country", string(r.Country))
		}
		if r.BloodGroup != "" {
			addStringField(n, "blood_group", string(r.BloodGroup))
		}
		recipients.Content = append(recipients.Content, n)
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "recipients"},
		recipients,
	)

	scores := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range p.Scores {
		scores.Content = append(scores.Content, floatRowNode(row))
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "scores"},
		scores,
	)

	return doc
}

// floatRowNode creates a flow-style sequence of numbers.
func floatRowNode(row []float64) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range row {
		seq.Content = append(seq.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v, 'g', -1, 64)},
		)
	}
	return seq
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addMultilineStringField(node *yaml.Node, key, value string) {
	// Use literal block scalar style for multi-line strings
	style := yaml.LiteralStyle
	if !strings.Contains(value, "\n") {
		style = 0
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: style, Tag: "!!str"},
	)
}
