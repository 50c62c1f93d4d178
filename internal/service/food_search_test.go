package service

import (
	"context"
	"testing"

	"github.com/remi/mealtrack/internal/domain"
	"github.com/remi/mealtrack/internal/lookup"
)

// fakeGateway is an in-memory LookupGateway for service tests.
type fakeGateway struct {
	parserByText    map[string]*lookup.ParserResponse
	parserByBarcode map[string]*lookup.ParserResponse
	suggestions     []string
	err             error

	textCalls    int
	barcodeCalls int
}

func (f *fakeGateway) SearchByText(_ context.Context, query string) (*lookup.ParserResponse, error) {
	f.textCalls++
	if f.err != nil {
		return nil, f.err
	}
	if resp, ok := f.parserByText[query]; ok {
		return resp, nil
	}
	return &lookup.ParserResponse{}, nil
}

func (f *fakeGateway) SearchByBarcode(_ context.Context, code string) (*lookup.ParserResponse, error) {
	f.barcodeCalls++
	if f.err != nil {
		return nil, f.err
	}
	if resp, ok := f.parserByBarcode[code]; ok {
		return resp, nil
	}
	return &lookup.ParserResponse{}, nil
}

func (f *fakeGateway) Autocomplete(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}

func appleResponse() *lookup.ParserResponse {
	return &lookup.ParserResponse{
		Hints: []lookup.Hint{
			{Food: lookup.Food{
				FoodID: "a1",
				Label:  "Apple",
				Nutrients: map[string]float64{
					"ENERC_KCAL": 95.4,
					"PROCNT":     0.3,
					"CHOCDF":     25.1,
					"FAT":        0.2,
				},
			}},
		},
	}
}

func TestFoodSearchService_SearchText(t *testing.T) {
	gw := &fakeGateway{parserByText: map[string]*lookup.ParserResponse{"apple": appleResponse()}}
	svc := NewFoodSearchService(gw)

	records, err := svc.SearchText(context.Background(), "apple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	want := domain.Nutrients{Calories: 95, Proteins: 0, Carbs: 25, Fats: 0}
	if records[0].Nutrients != want {
		t.Errorf("expected nutrients %+v, got %+v", want, records[0].Nutrients)
	}
}

func TestFoodSearchService_BlankInputSkipsGateway(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewFoodSearchService(gw)

	for _, blank := range []string{"", "   "} {
		records, err := svc.SearchText(context.Background(), blank)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", blank, err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty result for %q, got %d records", blank, len(records))
		}

		records, err = svc.SearchBarcode(context.Background(), blank)
		if err != nil {
			t.Fatalf("unexpected error for barcode %q: %v", blank, err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty result for barcode %q, got %d records", blank, len(records))
		}
	}

	if gw.textCalls != 0 || gw.barcodeCalls != 0 {
		t.Errorf("expected no gateway calls, got text=%d barcode=%d", gw.textCalls, gw.barcodeCalls)
	}
}

func TestFoodSearchService_UnknownBarcodeIsEmptyNotError(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewFoodSearchService(gw)

	records, err := svc.SearchBarcode(context.Background(), "0000000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result, got %d records", len(records))
	}
}

func TestFoodSearchService_TransientErrorSurfaces(t *testing.T) {
	gw := &fakeGateway{err: &lookup.TransientError{Op: "parser"}}
	svc := NewFoodSearchService(gw)

	if _, err := svc.SearchText(context.Background(), "apple"); err == nil {
		t.Error("expected transient error to surface")
	}
}

func TestFoodSearchService_Suggest(t *testing.T) {
	gw := &fakeGateway{suggestions: []string{"apple", "apple pie"}}
	svc := NewFoodSearchService(gw)

	records, err := svc.Suggest(context.Background(), "app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(records))
	}
	for _, rec := range records {
		if !rec.NeedsEnrichment() {
			t.Errorf("expected suggestion %q to need enrichment", rec.Label)
		}
	}
}

func TestFoodSearchService_Enrich(t *testing.T) {
	gw := &fakeGateway{parserByText: map[string]*lookup.ParserResponse{"Apple": appleResponse()}}
	svc := NewFoodSearchService(gw)

	t.Run("label-only record gets a parser follow-up", func(t *testing.T) {
		enriched, err := svc.Enrich(context.Background(), domain.FoodRecord{Label: "Apple"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if enriched.ExternalFoodID != "a1" {
			t.Errorf("expected enriched record a1, got %q", enriched.ExternalFoodID)
		}
		if enriched.Nutrients.Calories != 95 {
			t.Errorf("expected 95 calories, got %d", enriched.Nutrients.Calories)
		}
	})

	t.Run("already-enriched record passes through untouched", func(t *testing.T) {
		in := domain.FoodRecord{
			ExternalFoodID: "z9",
			Label:          "Cheese",
			Nutrients:      domain.Nutrients{Calories: 402},
		}
		before := gw.textCalls
		out, err := svc.Enrich(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != in {
			t.Errorf("expected record unchanged, got %+v", out)
		}
		if gw.textCalls != before {
			t.Error("expected no gateway call for an enriched record")
		}
	})

	t.Run("lookup miss returns the input record", func(t *testing.T) {
		in := domain.FoodRecord{Label: "Unobtainium"}
		out, err := svc.Enrich(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != in {
			t.Errorf("expected input record back, got %+v", out)
		}
	})
}
