package core

import (
	"fmt"
	"sort"

	"github.com/huangsam/nowcast/schema"
)

// Leaf keys of an indicator estimate. Both are optional; an absent key maps
// to a nil field, never an error.
const (
	leafPredicted      = "predicted"
	leafPredictedError = "predicted_error"
)

// FlattenNational converts a decoded national response tree into flat
// estimate records. The expected shape is three levels deep:
// country -> period -> indicator -> leaf.
func FlattenNational(tree map[string]any) ([]schema.EstimateRecord, error) {
	var records []schema.EstimateRecord
	for _, country := range sortedKeys(tree) {
		periods, err := asObject(tree[country], country)
		if err != nil {
			return nil, err
		}
		recs, err := flattenPeriods(periods, country, "", schema.NationalLevel)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// FlattenSubnational converts a decoded subnational response tree into flat
// estimate records. The expected shape is four levels deep:
// country -> region -> period -> indicator -> leaf.
func FlattenSubnational(tree map[string]any) ([]schema.EstimateRecord, error) {
	var records []schema.EstimateRecord
	for _, country := range sortedKeys(tree) {
		regions, err := asObject(tree[country], country)
		if err != nil {
			return nil, err
		}
		for _, region := range sortedKeys(regions) {
			periods, err := asObject(regions[region], country+"/"+region)
			if err != nil {
				return nil, err
			}
			recs, err := flattenPeriods(periods, country, region, schema.SubnationalLevel)
			if err != nil {
				return nil, err
			}
			records = append(records, recs...)
		}
	}
	return records, nil
}

// flattenPeriods walks the shared period -> indicator -> leaf suffix of both
// tree shapes. Empty branches contribute zero records.
func flattenPeriods(periods map[string]any, country, region string, level schema.AdminLevel) ([]schema.EstimateRecord, error) {
	path := country
	if region != "" {
		path = country + "/" + region
	}

	var records []schema.EstimateRecord
	for _, period := range sortedKeys(periods) {
		indicators, err := asObject(periods[period], path+"/"+period)
		if err != nil {
			return nil, err
		}
		for _, indicator := range sortedKeys(indicators) {
			leaf, err := asObject(indicators[indicator], path+"/"+period+"/"+indicator)
			if err != nil {
				return nil, err
			}
			rec := schema.EstimateRecord{
				Country:   country,
				Region:    region,
				Period:    period,
				Indicator: indicator,
				Level:     level,
			}
			if rec.Predicted, err = optionalNumber(leaf, leafPredicted, path+"/"+period+"/"+indicator); err != nil {
				return nil, err
			}
			if rec.PredictedError, err = optionalNumber(leaf, leafPredictedError, path+"/"+period+"/"+indicator); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// asObject asserts that a tree node is a mapping, failing with
// ErrMalformedInput and the offending path otherwise.
func asObject(node any, path string) (map[string]any, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object at %q, got %T", schema.ErrMalformedInput, path, node)
	}
	return obj, nil
}

// optionalNumber extracts an optional numeric leaf key. Absent keys map to
// nil; present non-numeric values are malformed.
func optionalNumber(leaf map[string]any, key, path string) (*float64, error) {
	raw, ok := leaf[key]
	if !ok || raw == nil {
		return nil, nil
	}
	v, ok := raw.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: expected number for %q at %q, got %T", schema.ErrMalformedInput, key, path, raw)
	}
	return &v, nil
}

// sortedKeys returns map keys in sorted order so flattened output is
// reproducible run to run.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
