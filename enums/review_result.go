package enums

// ReviewResult is the outcome a reviewer records against an approval stage
type ReviewResult string

const (
	ReviewApprove     ReviewResult = "Approve"
	ReviewDeny        ReviewResult = "Deny"
	ReviewNotReviewed ReviewResult = "NotReviewed"
)

func (s ReviewResult) String() string {
	return string(s)
}
