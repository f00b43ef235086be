package kafka

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Serializer encodes message values.
type Serializer interface {
	Serialize(data interface{}) ([]byte, error)
}

// Deserializer decodes message values. Tests and consumers of the audit
// topic use it to read InvocationEvents back.
type Deserializer interface {
	Deserialize(data []byte, target interface{}) error
}

// JSONSerializer is the default Serializer. Strings are written verbatim.
type JSONSerializer struct{}

// Serialize converts data to JSON.
func (j *JSONSerializer) Serialize(data interface{}) ([]byte, error) {
	if s, ok := data.(string); ok {
		return []byte(s), nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("JSONSerializer: failed to serialize: %w", err)
	}
	return b, nil
}

// JSONDeserializer decodes JSON values.
type JSONDeserializer struct{}

// Deserialize decodes data into target.
func (j *JSONDeserializer) Deserialize(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("JSONDeserializer: failed to deserialize: %w", err)
	}
	return nil
}
