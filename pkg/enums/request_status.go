package enums

import "fmt"

// RequestStatus tracks a recipient request through the allocation workflow.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusSelected  RequestStatus = "Selected"
	RequestStatusCompleted RequestStatus = "Completed"
	RequestStatusCancelled RequestStatus = "Cancelled"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusSelected,
	RequestStatusCompleted,
	RequestStatusCancelled,
}

// allowedRequestTransitions is the explicit workflow table. Completed and
// Cancelled are terminal.
var allowedRequestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:  {RequestStatusSelected, RequestStatusCancelled},
	RequestStatusSelected: {RequestStatusCompleted, RequestStatusCancelled},
}

// String implements fmt.Stringer.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RequestStatus.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s RequestStatus) IsTerminal() bool {
	return len(allowedRequestTransitions[s]) == 0
}

// CanTransitionTo reports whether the workflow permits moving from s to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, candidate := range allowedRequestTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}
