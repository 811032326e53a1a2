package dto

// SiteTotals summarises platform-wide counters.
type SiteTotals struct {
	TotalUsers      int64 `json:"totalUsers" bson:"totalUsers"`
	TotalClasses    int64 `json:"totalClasses" bson:"totalClasses"`
	TotalEnrollment int64 `json:"totalEnrollment" bson:"totalEnrollment"`
}

// ClassTotals summarises one class for its teacher.
type ClassTotals struct {
	TotalEnrollment int64 `json:"totalEnrollment"`
	TotalAssignment int64 `json:"totalAssignment"`
	TotalSubmission int64 `json:"totalSubmission"`
}

// SubmissionCount is the number of submissions in a day window.
type SubmissionCount struct {
	Count int64 `json:"count"`
}

// ExportFormat names a supported report export format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
