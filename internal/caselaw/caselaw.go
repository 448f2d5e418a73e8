// Package caselaw holds the case-law summaries copied into every new
// account. The dataset is embedded in the binary and parsed once.
package caselaw

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/MKhiriev/report-buddy/models"
	"gopkg.in/yaml.v3"
)

//go:embed default_case_law.yaml
var defaultCaseLaw []byte

// Case is one landmark decision summary.
type Case struct {
	Name     string `yaml:"name"`
	Filename string `yaml:"filename"`
	Content  string `yaml:"content"`
}

// Dataset is an immutable list of cases.
type Dataset struct {
	cases []Case
}

var (
	loadOnce sync.Once
	loaded   *Dataset
	loadErr  error
)

// Default returns the embedded dataset. It is parsed on first use.
func Default() (*Dataset, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(defaultCaseLaw)
	})
	return loaded, loadErr
}

// Parse decodes a YAML list of cases.
func Parse(data []byte) (*Dataset, error) {
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse case law: %w", err)
	}

	for i, c := range cases {
		if c.Filename == "" || c.Content == "" {
			return nil, fmt.Errorf("case law entry %d (%q) has no filename or content", i, c.Name)
		}
	}

	return &Dataset{cases: cases}, nil
}

// Len returns the number of cases.
func (d *Dataset) Len() int {
	return len(d.cases)
}

// Documents copies the dataset into case-law documents owned by userID.
func (d *Dataset) Documents(userID string, newID func() string) []models.PolicyDocument {
	docs := make([]models.PolicyDocument, 0, len(d.cases))
	for _, c := range d.cases {
		docs = append(docs, models.PolicyDocument{
			ID:        newID(),
			UserID:    userID,
			Filename:  c.Filename,
			Content:   c.Content,
			IsCaseLaw: true,
		})
	}
	return docs
}
