package email

const (
	subjectReviewRequestFmt = "[%s] Review required: %s"
)
