package service

import (
	"context"
	"strings"

	"github.com/remi/mealtrack/internal/domain"
	"github.com/remi/mealtrack/internal/logger"
	"github.com/remi/mealtrack/internal/lookup"
)

// LookupGateway is the contract the core expects from the external
// nutrition lookup service. It is implemented outside the core (see
// internal/lookup); the core only consumes the raw response shapes.
type LookupGateway interface {
	SearchByText(ctx context.Context, query string) (*lookup.ParserResponse, error)
	SearchByBarcode(ctx context.Context, code string) (*lookup.ParserResponse, error)
	Autocomplete(ctx context.Context, prefix string) ([]string, error)
}

// FoodSearchService composes the lookup gateway with the normalizer:
// raw external data goes in, canonical FoodRecords come out. It owns the
// autocomplete follow-up (enriching a label-only record through a parser
// lookup) that the normalizer deliberately does not perform.
type FoodSearchService struct {
	gateway LookupGateway
}

// NewFoodSearchService creates a new FoodSearchService.
// Parameters:
//   - gateway: lookup service client.
// Returns:
//   - *FoodSearchService: initialized service.
func NewFoodSearchService(gateway LookupGateway) *FoodSearchService {
	return &FoodSearchService{gateway: gateway}
}

// SearchText searches foods by free text and normalizes the result.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - query: text to search; blank short-circuits to an empty result.
// Returns:
//   - []domain.FoodRecord: normalized records, lookup order preserved.
//   - error: non-nil only on a transient gateway failure.
func (s *FoodSearchService) SearchText(ctx context.Context, query string) ([]domain.FoodRecord, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.FoodRecord{}, nil
	}
	resp, err := s.gateway.SearchByText(ctx, query)
	if err != nil {
		return nil, err
	}
	records := NormalizeParserHints(resp.Hints)
	logger.FromContext(ctx).WithField(logger.FieldCount, len(records)).Debugf("Text search normalized for %q", query)
	return records, nil
}

// SearchBarcode searches a food by barcode and normalizes the result. An
// unknown, empty, or malformed barcode yields an empty sequence, never an
// error, matching the text path.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - code: UPC barcode.
// Returns:
//   - []domain.FoodRecord: normalized records; usually zero or one.
//   - error: non-nil only on a transient gateway failure.
func (s *FoodSearchService) SearchBarcode(ctx context.Context, code string) ([]domain.FoodRecord, error) {
	if strings.TrimSpace(code) == "" {
		return []domain.FoodRecord{}, nil
	}
	resp, err := s.gateway.SearchByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	return NormalizeParserHints(resp.Hints), nil
}

// Suggest returns label-only records for a text prefix. Each carries zero
// nutrients and needs enrichment before persistence.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prefix: text prefix typed by the user.
// Returns:
//   - []domain.FoodRecord: zero-nutrient suggestion records.
//   - error: non-nil only on a transient gateway failure.
func (s *FoodSearchService) Suggest(ctx context.Context, prefix string) ([]domain.FoodRecord, error) {
	if strings.TrimSpace(prefix) == "" {
		return []domain.FoodRecord{}, nil
	}
	labels, err := s.gateway.Autocomplete(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return NormalizeAutocomplete(labels), nil
}

// Enrich resolves a label-only record into a full one through a parser
// lookup by label, taking the first hit. A record that already carries
// nutrient data, or a lookup miss, returns the input unchanged.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - rec: record selected by the user.
// Returns:
//   - domain.FoodRecord: enriched record, or rec when nothing applies.
//   - error: non-nil only on a transient gateway failure.
func (s *FoodSearchService) Enrich(ctx context.Context, rec domain.FoodRecord) (domain.FoodRecord, error) {
	if !rec.NeedsEnrichment() {
		return rec, nil
	}
	resp, err := s.gateway.SearchByText(ctx, rec.Label)
	if err != nil {
		return domain.FoodRecord{}, err
	}
	records := NormalizeParserHints(resp.Hints)
	if len(records) == 0 {
		logger.CtxDebug(ctx, "Enrichment found no parser hit for %q", rec.Label)
		return rec, nil
	}
	return records[0], nil
}
