// Package domain contains the core types of the letter numbering registry:
// issued number records, the per-month emergency pool schedule, and the
// allocation lock that serializes pool generation runs.
package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NumberStatus is the lifecycle state of an issued document number.
type NumberStatus string

const (
	StatusReserved  NumberStatus = "reserved"
	StatusConfirmed NumberStatus = "confirmed"
	StatusCancelled NumberStatus = "cancelled"
)

// PoolAnnotation marks a record as pool-origin rather than user-reserved.
// Records carrying this annotation are excluded from high-water-mark scans
// and from cancelled-number reuse.
const PoolAnnotation = "emergency-pool"

// SeriesKey identifies a numbering series by its five classification codes.
// It is comparable and used directly as a map key; the sub-issue codes may
// be empty.
type SeriesKey struct {
	Region    string
	Unit      string
	Issue     string
	SubIssue1 string
	SubIssue2 string
}

// FullNumber renders the formatted identifier for a sequence in this series:
// {region}.{unit}-{issue}.{sub1}[.{sub2}]-{sequence}. The sub2 segment and
// its leading dot are omitted entirely when sub2 is blank after trimming.
func (k SeriesKey) FullNumber(sequence int) string {
	var b strings.Builder
	b.WriteString(k.Region)
	b.WriteByte('.')
	b.WriteString(k.Unit)
	b.WriteByte('-')
	b.WriteString(k.Issue)
	b.WriteByte('.')
	b.WriteString(k.SubIssue1)
	if sub2 := strings.TrimSpace(k.SubIssue2); sub2 != "" {
		b.WriteByte('.')
		b.WriteString(sub2)
	}
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(sequence))
	return b.String()
}

// Validate checks that the mandatory classification codes are present.
func (k SeriesKey) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(k.Region) == "" {
		errs = append(errs, FieldError{Field: "region", Message: "required"})
	}
	if strings.TrimSpace(k.Unit) == "" {
		errs = append(errs, FieldError{Field: "unit", Message: "required"})
	}
	if strings.TrimSpace(k.Issue) == "" {
		errs = append(errs, FieldError{Field: "issue", Message: "required"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// NumberRecord is a single issued or reserved document number.
// OwnerID is nil for pool-held records.
type NumberRecord struct {
	ID         uuid.UUID
	Series     SeriesKey
	Sequence   int
	FullNumber string
	IssueDate  time.Time
	Status     NumberStatus
	OwnerID    *uuid.UUID
	ReservedAt time.Time
	ExpiresAt  time.Time
	Annotation string
}

// IsPoolHeld reports whether the record belongs to the emergency pool.
func (r NumberRecord) IsPoolHeld() bool {
	return r.OwnerID == nil && r.Annotation == PoolAnnotation
}
