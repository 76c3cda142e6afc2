package homework

import "fmt"

// ErrNoNewHomeworks signals an empty homeworks list. It is an expected
// condition, not a failure: the loop reports "status unchanged" instead of
// a failure message when it sees this error.
var ErrNoNewHomeworks = fmt.Errorf("no new homeworks since the last check")

// ErrMissingHomeworks signals a response without a homeworks field at all.
var ErrMissingHomeworks = fmt.Errorf("response carries no homeworks field")

// ServiceError is a service-level rejection: the endpoint answered 200 but
// returned a rejection code instead of homework data.
type ServiceError struct {
	Code string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service rejected the request with code %q", e.Code)
}

// DataTypeError signals a homework entry whose shape is not a key-value
// record. Actual holds the JSON type that was found instead.
type DataTypeError struct {
	Actual string
}

func (e *DataTypeError) Error() string {
	return fmt.Sprintf("homework entry is a JSON %s, expected an object", e.Actual)
}

// UnknownStatusError signals a homework status outside the known set.
type UnknownStatusError struct {
	Status Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", string(e.Status))
}
