// Package normalizer turns raw catalog rows into typed titles: added years,
// tagged durations and canonical multi-value sets.
package normalizer

import (
	"fmt"

	"titlecatalog/internal/models"
)

// Processor handles validation and transformation of raw tables.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor(policy Policy) *Processor {
	return &Processor{
		validator:   NewValidator(policy),
		transformer: NewTransformer(policy),
	}
}

// Process transforms a raw table into a normalized dataset.
func (p *Processor) Process(table *models.RawTable) (*models.Dataset, error) {
	// 1. Validate the input table
	if err := p.validator.Validate(table); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the rows
	ds, err := p.transformer.Transform(table)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	// 3. Check the result still describes the same rows
	if err := p.validator.CheckDataset(table, ds); err != nil {
		return nil, fmt.Errorf("dataset check failed: %w", err)
	}

	return ds, nil
}
