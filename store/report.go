package store

// Report is one finished cleaning report. It is created exactly once per
// successful finalization and never mutated afterwards.
type Report struct {
	ID int32
	// UID is the stable external identifier included in supervisor summaries.
	UID    string
	UserID int64
	// Username is the Telegram handle; absent for users without one.
	Username *string
	FullName string
	SiteName string
	// EvidenceRefs are Telegram file ids in submission order.
	EvidenceRefs []string
	CreatedTs    int64
}

// FindReport is the filter for listing reports.
type FindReport struct {
	ID       *int32
	UID      *string
	UserID   *int64
	SiteName *string

	Limit  *int
	Offset *int
}
