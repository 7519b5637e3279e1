package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/information-sharing-networks/pim-catalog/internal/apierr"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog/standard"
)

// Pagination limits of List.
const (
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxOffset is the largest row offset a page may start at (the list query binds OFFSET as int32)
	MaxOffset = math.MaxInt32
)

// Service creates and reads attribute groups.
type Service struct {
	store     Store
	validator *Validator
}

func NewService(store Store) *Service {
	return &Service{
		store:     store,
		validator: NewValidator(store, store),
	}
}

// Create decodes raw, checks it and stores the new attribute group.
//
// Checks run in this order and the first failing stage ends the request:
//
//  1. standard.Decode: parse, unknown properties and types (parse or schema error)
//  2. CheckAttributes: attribute codes must exist (schema error)
//  3. Validator.Validate: code and label rules (validation error)
//
// Nothing is written unless every check passes.
func (s *Service) Create(ctx context.Context, raw []byte) (*AttributeGroup, error) {
	doc, err := standard.Decode(raw)
	if err != nil {
		return nil, err
	}

	if err := CheckAttributes(ctx, s.store, doc); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(ctx, doc); err != nil {
		return nil, err
	}

	group := fromDocument(doc)
	if err := s.store.Create(ctx, group); err != nil {
		// another request created the same code after validation
		if errors.Is(err, ErrCodeAlreadyUsed) {
			return nil, apierr.NewValidationError(codeViolation(MessageUsed))
		}
		return nil, apierr.WrapInternalError(err, "failed to create attribute group")
	}
	return group, nil
}

// Get returns the attribute group with the given code.
func (s *Service) Get(ctx context.Context, code string) (*AttributeGroup, error) {
	group, err := s.store.FindOneByIdentifier(ctx, code)
	if err != nil {
		return nil, apierr.WrapInternalError(err, "failed to get attribute group")
	}
	if group == nil {
		return nil, apierr.NewNotFoundError(fmt.Sprintf(`Attribute group "%s" does not exist.`, code))
	}
	return group, nil
}

// Page is one page of attribute groups ordered by code.
type Page struct {
	Items   []AttributeGroup
	Page    int
	Limit   int
	HasNext bool
}

// List returns the requested page. page starts at 1.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		return nil, apierr.NewInvalidQueryError(fmt.Sprintf(`"%d" is not a valid page number.`, page))
	}
	if limit < 1 {
		return nil, apierr.NewInvalidQueryError(fmt.Sprintf(`"%d" is not a valid limit number.`, limit))
	}
	if limit > MaxLimit {
		return nil, apierr.NewInvalidQueryError(fmt.Sprintf("You cannot request more than %d items.", MaxLimit))
	}

	if page-1 > MaxOffset/limit {
		return nil, apierr.NewInvalidQueryError(fmt.Sprintf(`"%d" is not a valid page number.`, page))
	}

	offset := (page - 1) * limit
	items, err := s.store.List(ctx, offset, limit)
	if err != nil {
		return nil, apierr.WrapInternalError(err, "failed to list attribute groups")
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, apierr.WrapInternalError(err, "failed to count attribute groups")
	}

	return &Page{
		Items:   items,
		Page:    page,
		Limit:   limit,
		HasNext: offset+len(items) < total,
	}, nil
}

// Store returns the underlying store.
func (s *Service) Store() Store {
	return s.store
}
