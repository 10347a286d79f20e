package validator

// Category is the discriminated outcome of query validation.
// Exactly one category applies to a given query.
type Category string

const (
	CategoryApproved              Category = "approved"
	CategoryRejectedInappropriate Category = "rejected_inappropriate"
	CategoryRejectedUnsafe        Category = "rejected_unsafe"
	CategoryRejectedOffTopic      Category = "rejected_off_topic"
	CategoryError                 Category = "error"
)

// Result is a validation decision with its human-readable explanation.
// For rejections, Message carries the formatted refusal shown to the
// user.
type Result struct {
	Approved bool
	Message  string
	Category Category
}
