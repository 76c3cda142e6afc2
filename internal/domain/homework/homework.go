package homework

import "encoding/json"

// Status is the review status reported by the API for a single homework.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps each known status to its fixed human-readable verdict text.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Homework is one submitted review item. It is transient and lives only
// within a single polling iteration.
type Homework struct {
	Name   string `json:"homework_name"`
	Status Status `json:"status"`
}

// StatusesResponse is the payload of the homework statuses endpoint.
// A successful response carries Homeworks and CurrentDate; a service-level
// rejection (rate limit, invalid params) carries Code instead.
type StatusesResponse struct {
	Homeworks   []json.RawMessage `json:"homeworks"`
	CurrentDate int64             `json:"current_date"`
	Code        string            `json:"code"`
}
