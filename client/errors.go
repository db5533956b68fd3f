package client

import "fmt"

// NotFoundError is returned when a lookup matches nothing
type NotFoundError struct {
	Kind string
	Name string
}

func (s *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", s.Kind, s.Name)
}

// AmbiguousNameError is returned when a display name matches more than one directory object
type AmbiguousNameError struct {
	Kind    string
	Name    string
	Matches []string
}

func (s *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%s %q is ambiguous: %d objects share that display name %v", s.Kind, s.Name, len(s.Matches), s.Matches)
}

// PolicyNotFoundError is returned when a role has no role management policy to update
type PolicyNotFoundError struct {
	RoleDefinitionId string
}

func (s *PolicyNotFoundError) Error() string {
	return fmt.Sprintf("no role management policy is assigned to role %s", s.RoleDefinitionId)
}

// DecisionRejectedError is returned when the service refuses a review, e.g. because the stage was already reviewed
type DecisionRejectedError struct {
	ApprovalId string
	StageId    string
	Err        error
}

func (s *DecisionRejectedError) Error() string {
	return fmt.Sprintf("decision on %s was rejected: %v", s.ApprovalId, s.Err)
}

func (s *DecisionRejectedError) Unwrap() error {
	return s.Err
}
