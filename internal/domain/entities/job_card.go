package entities

import "strings"

type JobCardStatus string

const (
	JobCardStatusPending    JobCardStatus = "PENDING"
	JobCardStatusInProgress JobCardStatus = "IN_PROGRESS"
	JobCardStatusCompleted  JobCardStatus = "COMPLETED"
	JobCardStatusCancelled  JobCardStatus = "CANCELLED"
)

// ParseJobCardStatus is case-insensitive; the empty string is not a status.
func ParseJobCardStatus(s string) (JobCardStatus, bool) {
	st := JobCardStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case JobCardStatusPending, JobCardStatusInProgress, JobCardStatusCompleted, JobCardStatusCancelled:
		return st, true
	}
	return "", false
}

// JobCard is a work order for one service on one vehicle.
//
// EstimatedCost is a snapshot of the service price taken every time the
// card is created or edited.
type JobCard struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	VehicleID     string        `json:"vehicleId"`
	ServiceID     string        `json:"serviceId"`
	CreatedDate   Date          `json:"createdDate"`
	Status        JobCardStatus `json:"status"`
	EstimatedCost float64       `json:"estimatedCost"`
}
