package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSmartphoneNotFound = errors.New("smartphone not found")
	ErrInvalidDeleteCode  = errors.New("invalid delete code")
	ErrInvalidPayload     = errors.New("payload must be a JSON object")
)

// Keys the server owns. They are dropped from incoming payloads.
var reservedKeys = map[string]bool{
	"id":        true,
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
}

// Fields holds the free-form descriptive attributes (prix, stockage, ...).
type Fields map[string]interface{}

type Smartphone struct {
	ID        uuid.UUID
	Nom       string
	Marque    string
	Fields    Fields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromPayload builds a record from a decoded JSON object. Nom and marque are
// lifted out only when they are strings, anything else stays in Fields as-is.
func FromPayload(payload map[string]interface{}) (*Smartphone, error) {
	if payload == nil {
		return nil, ErrInvalidPayload
	}

	phone := &Smartphone{Fields: Fields{}}
	for k, v := range payload {
		if reservedKeys[k] {
			continue
		}
		switch k {
		case "nom":
			if s, ok := v.(string); ok {
				phone.Nom = s
				continue
			}
		case "marque":
			if s, ok := v.(string); ok {
				phone.Marque = s
				continue
			}
		}
		phone.Fields[k] = v
	}
	return phone, nil
}

func (s Smartphone) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Fields)+5)
	for k, v := range s.Fields {
		out[k] = v
	}
	if _, ok := s.Fields["nom"]; !ok {
		out["nom"] = s.Nom
	}
	if _, ok := s.Fields["marque"]; !ok {
		out["marque"] = s.Marque
	}
	out["id"] = s.ID.String()
	out["createdAt"] = s.CreatedAt
	out["updatedAt"] = s.UpdatedAt
	return json.Marshal(out)
}

// Clone returns a copy whose Fields map is not shared with s.
func (s Smartphone) Clone() Smartphone {
	c := s
	c.Fields = make(Fields, len(s.Fields))
	for k, v := range s.Fields {
		c.Fields[k] = v
	}
	return c
}
