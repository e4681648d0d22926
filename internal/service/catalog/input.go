package catalog

import (
	"armatupc/internal/domain"
)

// ListInput holds parameters for catalog browsing.
type ListInput struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Category != "" && !domain.Category(i.Category).IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateInput holds parameters for creating a component.
type CreateInput struct {
	Name        string
	SKU         string
	Brand       string
	Category    string
	Description string
	ImageURL    string
	Price       int64
	Stock       int
	Specs       map[string]string
	Prices      []PriceInput
}

// PriceInput is a single store price entry.
type PriceInput struct {
	StoreID string
	Price   int64
	URL     string
}

// Validate validates the create input against catalog limits.
func (i CreateInput) Validate(maxPrices, maxSpecs int) error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 256 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Brand == "" {
		errs = append(errs, domain.FieldError{Field: "brand", Message: "required"})
	}
	if !domain.Category(i.Category).IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if i.Price < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be non-negative"})
	}
	if i.Stock < 0 {
		errs = append(errs, domain.FieldError{Field: "stock", Message: "must be non-negative"})
	}
	if len(i.Prices) > maxPrices {
		errs = append(errs, domain.FieldError{Field: "prices", Message: "too many price entries"})
	}
	if len(i.Specs) > maxSpecs {
		errs = append(errs, domain.FieldError{Field: "specs", Message: "too many spec entries"})
	}
	for _, p := range i.Prices {
		if p.URL == "" {
			errs = append(errs, domain.FieldError{Field: "prices", Message: "entry url required"})
			break
		}
		if p.Price < 0 {
			errs = append(errs, domain.FieldError{Field: "prices", Message: "entry price must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the optional fields for updating a component.
type UpdateInput struct {
	Name        *string
	SKU         *string
	Brand       *string
	Category    *string
	Description *string
	ImageURL    *string
	Price       *int64
	Stock       *int
	Specs       map[string]string
}

// Validate validates the update input.
func (i UpdateInput) Validate(maxSpecs int) error {
	var errs []domain.FieldError

	if i.Name != nil && (*i.Name == "" || len(*i.Name) > 256) {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must be 1-256 characters"})
	}
	if i.Category != nil && !domain.Category(*i.Category).IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}
	if i.Price != nil && *i.Price < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be non-negative"})
	}
	if i.Stock != nil && *i.Stock < 0 {
		errs = append(errs, domain.FieldError{Field: "stock", Message: "must be non-negative"})
	}
	if len(i.Specs) > maxSpecs {
		errs = append(errs, domain.FieldError{Field: "specs", Message: "too many spec entries"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
