package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"trip_budget/internal/domain"
)

/********** alias registries **********/

var destinationAliases = map[string][]string{
	"name":     {"name", "city", "city_name", "destination", "title"},
	"country":  {"country", "country_name", "location.country", "address.country"},
	"currency": {"currency", "currency_code", "currencyCode", "costs.currency"},
	"region":   {"region", "continent", "location.region", "area"},
}

var destinationNumberAliases = map[string][]string{
	"cost_index":         {"cost_index", "costIndex", "col_index", "costs.index"},
	"popularity":         {"popularity", "popularity_score", "popularityScore", "scores.popularity"},
	"average_daily_cost": {"average_daily_cost", "averageDailyCost", "avg_daily_cost", "daily_cost", "costs.daily"},
}

var activityAliases = map[string][]string{
	"name":      {"name", "title", "activity_name"},
	"category":  {"category", "type", "kind"},
	"source_id": {"id", "activity_id", "activityId"},
}

var activityNumberAliases = map[string][]string{
	"cost":   {"cost", "price", "price.amount", "pricing.amount", "amount"},
	"rating": {"rating", "score", "rating.value", "average_rating", "stars"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path, formatting numbers, or "".
func lookupStr(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

/********** destination mapper **********/

func mapDestination(p map[string]any) domain.DestinationRecord {
	raw, err := json.Marshal(p)
	if err != nil {
		log.Error().Err(err).
			Str("context", "mapDestination").
			Msg("failed to marshal destination to JSON")
	}

	rec := domain.DestinationRecord{
		Name:             firstNonEmptyAlias(p, destinationAliases, "name"),
		Country:          firstNonEmptyAlias(p, destinationAliases, "country"),
		Currency:         strings.ToUpper(firstNonEmptyAlias(p, destinationAliases, "currency")),
		Region:           firstNonEmptyAlias(p, destinationAliases, "region"),
		CostIndex:        getFloatFlexible(p, destinationNumberAliases["cost_index"]...),
		Popularity:       getFloatFlexible(p, destinationNumberAliases["popularity"]...),
		AverageDailyCost: getFloatFlexible(p, destinationNumberAliases["average_daily_cost"]...),
		RawJSON:          raw,
	}
	if id := firstInt64Flexible(p, "destination_id", "id"); id != nil {
		rec.ID = *id
	}
	// Some payloads embed activities directly.
	if list, ok := lookupAny(p, "activities").([]any); ok {
		rec.Activities = mapActivities(rec.ID, asObjects(list))
	}
	return rec
}

/********** activities mapper **********/

func mapActivities(destinationID int64, in []map[string]any) []domain.Activity {
	out := make([]domain.Activity, 0, len(in))
	for _, a := range in {
		cost := getFloatFlexible(a, activityNumberAliases["cost"]...)
		if cost == nil || *cost < 0 {
			// unpriced activities carry no signal for the cost model
			continue
		}
		act := domain.Activity{
			DestinationID: destinationID,
			Name:          firstNonEmptyAlias(a, activityAliases, "name"),
			Category:      firstNonEmptyAlias(a, activityAliases, "category"),
			Cost:          *cost,
		}
		if r := getFloatFlexible(a, activityNumberAliases["rating"]...); r != nil {
			act.Rating = *r
		}
		if sid := firstNonEmptyAlias(a, activityAliases, "source_id"); sid != "" {
			act.SourceID = &sid
		}
		out = append(out, act)
	}
	return out
}

func asObjects(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
