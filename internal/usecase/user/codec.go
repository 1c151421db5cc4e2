package user

import (
	"encoding/json"
	"fmt"

	domain "user-crud-service/internal/domain/user"
)

// Codec encodes and decodes user entities for interop with other systems.
// It is a constructor dependency of the service rather than a process-wide
// singleton.
type Codec interface {
	Encode(u *domain.User) (string, error)
	Decode(data string) (*domain.User, error)
}

// JSONCodec is the default Codec, producing a JSON object with exactly
// the id, name, and email fields.
type JSONCodec struct{}

// Encode serializes a user to JSON.
func (JSONCodec) Encode(u *domain.User) (string, error) {
	if u == nil {
		return "", fmt.Errorf("cannot encode nil user")
	}
	data, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("failed to encode user: %w", err)
	}
	return string(data), nil
}

// Decode deserializes a user from JSON. It round-trips with Encode.
func (JSONCodec) Decode(data string) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &u, nil
}
