package report

import "github.com/pkg/errors"

const (
	// RequiredEvidenceCount is how many accepted photos finish a report.
	RequiredEvidenceCount = 8

	// MinEvidenceSidePx is the minimum size of each photo axis in pixels.
	MinEvidenceSidePx = 800
)

// ErrUndersizedEvidence is returned when a photo fails the dimension check.
var ErrUndersizedEvidence = errors.New("evidence below minimum dimensions")

// ValidateEvidence checks the reported photo dimensions. Both axes must be at
// least MinEvidenceSidePx. Pure function of the metadata; no I/O.
func ValidateEvidence(width, height int) error {
	if width < MinEvidenceSidePx || height < MinEvidenceSidePx {
		return errors.Wrapf(ErrUndersizedEvidence, "%dx%d", width, height)
	}
	return nil
}
