package wikidata

import (
	"encoding/json"

	"github.com/agentstation/orgmap/pkg/companies"
)

// Wire shapes for the action API. Only the slices of the payload the engine
// reads are modeled; everything else is dropped at decode time.

type searchResponse struct {
	Search []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"search"`
}

type entitiesResponse struct {
	Entities map[string]entity `json:"entities"`
	Error    *apiError         `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type entity struct {
	ID      string             `json:"id"`
	Missing *json.RawMessage   `json:"missing"`
	Labels  map[string]label   `json:"labels"`
	Claims  map[string][]claim `json:"claims"`
}

type label struct {
	Value string `json:"value"`
}

type claim struct {
	Mainsnak   snak              `json:"mainsnak"`
	Qualifiers map[string][]snak `json:"qualifiers"`
}

type snak struct {
	Datavalue struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"datavalue"`
}

func (e entity) label() string {
	return e.Labels["en"].Value
}

// stringValues collects the string datavalues of a property's claims.
func (e entity) stringValues(property string) []string {
	var out []string
	for _, c := range e.Claims[property] {
		var s string
		if err := json.Unmarshal(c.Mainsnak.Datavalue.Value, &s); err == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// entityValues collects the referenced entity ids of a property's claims.
func (e entity) entityValues(property string) []string {
	var out []string
	for _, c := range e.Claims[property] {
		if id, ok := c.Mainsnak.entityID(); ok {
			out = append(out, id)
		}
	}
	return out
}

// coordinates reads the first globe-coordinate claim, if any.
func (e entity) coordinates() *companies.Coordinates {
	for _, c := range e.Claims[propCoordinates] {
		var v struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}
		if err := json.Unmarshal(c.Mainsnak.Datavalue.Value, &v); err == nil {
			return &companies.Coordinates{Lat: v.Latitude, Lon: v.Longitude}
		}
	}
	return nil
}

// entityID reads a wikibase-entityid datavalue.
func (s snak) entityID() (string, bool) {
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(s.Datavalue.Value, &v); err != nil || v.ID == "" {
		return "", false
	}
	return v.ID, true
}

// quantityAmount reads a quantity datavalue's amount field ("+182502").
func (s snak) quantityAmount() (string, bool) {
	var v struct {
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(s.Datavalue.Value, &v); err != nil || v.Amount == "" {
		return "", false
	}
	return v.Amount, true
}

// timeValue reads a time datavalue ("+2024-06-01T00:00:00Z").
func (s snak) timeValue() (string, bool) {
	var v struct {
		Time string `json:"time"`
	}
	if err := json.Unmarshal(s.Datavalue.Value, &v); err != nil || v.Time == "" {
		return "", false
	}
	return v.Time, true
}

// qualifierTime returns the first time qualifier under the property, or "".
func (c claim) qualifierTime(property string) string {
	for _, q := range c.Qualifiers[property] {
		if t, ok := q.timeValue(); ok {
			return t
		}
	}
	return ""
}

// qualifierString returns the first string qualifier under the property.
func (c claim) qualifierString(property string) string {
	for _, q := range c.Qualifiers[property] {
		var s string
		if err := json.Unmarshal(q.Datavalue.Value, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
