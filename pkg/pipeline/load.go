package pipeline

import (
	"github.com/matzehuels/callsheet/pkg/errors"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

// Load reads, validates and normalizes the document at path.
func Load(path string) (*sheet.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	doc, err := sheet.Load(path)
	if err != nil {
		return nil, err
	}
	if err := sheet.Validate(doc); err != nil {
		return nil, err
	}
	return sheet.Normalize(doc), nil
}
