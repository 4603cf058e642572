package domain

import (
	"context"
	"time"
)

type BulkAction string

const (
	BulkMoveToStage    BulkAction = "move"
	BulkReject         BulkAction = "reject"
	BulkSendEmail      BulkAction = "email"
	BulkAddTag         BulkAction = "add_tag"
	BulkRemoveTag      BulkAction = "remove_tag"
	BulkAssignReviewer BulkAction = "assign"
	BulkExport         BulkAction = "export"
	BulkArchive        BulkAction = "archive"
	BulkDelete         BulkAction = "delete"
)

func (a BulkAction) IsValid() bool {
	switch a {
	case BulkMoveToStage, BulkReject, BulkSendEmail, BulkAddTag, BulkRemoveTag,
		BulkAssignReviewer, BulkExport, BulkArchive, BulkDelete:
		return true
	}
	return false
}

// Mutates reports whether the action writes to the store
func (a BulkAction) Mutates() bool {
	return a != BulkExport && a != BulkSendEmail
}

type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
)

// BulkData holds the action specific arguments
type BulkData struct {
	Stage      PipelineStage `json:"stage,omitempty"`
	Tag        string        `json:"tag,omitempty"`
	ReviewerID string        `json:"reviewerId,omitempty"`
	Format     ExportFormat  `json:"format,omitempty"`
	Subject    string        `json:"subject,omitempty"`
	Message    string        `json:"message,omitempty"`
}

type BulkRequest struct {
	ApplicationIDs []string
	Action         BulkAction
	Data           BulkData
}

// BulkFailure explains why one id of a batch was not processed
type BulkFailure struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// BulkResult is returned for every batch; partial success is not an error
type BulkResult struct {
	Action    BulkAction    `json:"action"`
	Requested int           `json:"requested"`
	Succeeded int           `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
	Export    *ExportFile   `json:"export,omitempty"`
}

// ExportRow is one application joined with its job title
type ExportRow struct {
	ID         string        `json:"id"`
	JobID      string        `json:"jobId"`
	JobTitle   string        `json:"jobTitle"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Position   string        `json:"position"`
	Stage      PipelineStage `json:"stage"`
	Rating     float64       `json:"rating"`
	Experience string        `json:"experience"`
	Tags       []string      `json:"tags"`
	ReviewerID string        `json:"reviewerId,omitempty"`
	IsArchived bool          `json:"isArchived"`
	AppliedAt  time.Time     `json:"appliedAt"`
}

type ExportFile struct {
	Format      ExportFormat `json:"format"`
	Filename    string       `json:"filename"`
	ContentType string       `json:"contentType"`
	Content     []byte       `json:"-"`
	Rows        []ExportRow  `json:"rows"`
}

// BulkLocker marks a selection as being processed. Implementations must make
// TryLock atomic across every instance sharing the lock backend.
type BulkLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), acquired bool, err error)
	IsLocked(ctx context.Context, key string) (bool, error)
}

type BulkUsecase interface {
	Execute(ctx context.Context, actor Actor, req BulkRequest) (*BulkResult, error)
	IsProcessing(ctx context.Context, ids []string) (bool, error)
}
