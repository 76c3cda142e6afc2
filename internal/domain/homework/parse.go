package homework

import (
	"encoding/json"
	"fmt"
)

// statusChangedTemplate is the notification text for a status change.
const statusChangedTemplate = `Changed review status for "%s". %s`

// CheckResponse extracts the most recent homework record from a parsed
// response. A rejection code and an empty list are two distinct,
// separately-checked conditions.
func CheckResponse(resp *StatusesResponse) (json.RawMessage, error) {
	if resp.Code != "" {
		return nil, &ServiceError{Code: resp.Code}
	}
	if resp.Homeworks == nil {
		return nil, ErrMissingHomeworks
	}
	if len(resp.Homeworks) == 0 {
		return nil, ErrNoNewHomeworks
	}
	return resp.Homeworks[0], nil
}

// DecodeHomework decodes a raw homework entry, failing with a DataTypeError
// when the entry is not a key-value record.
func DecodeHomework(raw json.RawMessage) (*Homework, error) {
	if name := jsonTypeName(raw); name != "object" {
		return nil, &DataTypeError{Actual: name}
	}
	hw := &Homework{}
	if err := json.Unmarshal(raw, hw); err != nil {
		return nil, fmt.Errorf("decode homework entry: %w", err)
	}
	return hw, nil
}

// ParseStatus maps a homework to its notification text, failing with an
// UnknownStatusError for statuses outside the known set.
func ParseStatus(hw *Homework) (string, error) {
	verdict, ok := Verdicts[hw.Status]
	if !ok {
		return "", &UnknownStatusError{Status: hw.Status}
	}
	return fmt.Sprintf(statusChangedTemplate, hw.Name, verdict), nil
}

// jsonTypeName names the JSON type of a raw value by its first significant
// byte.
func jsonTypeName(raw json.RawMessage) string {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return "object"
		case '[':
			return "array"
		case '"':
			return "string"
		case 't', 'f':
			return "boolean"
		case 'n':
			return "null"
		default:
			return "number"
		}
	}
	return "empty value"
}
