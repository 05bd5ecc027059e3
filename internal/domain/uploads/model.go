package uploads

import "time"

type Status string

const (
	StatusStaged    Status = "staged"
	StatusCommitted Status = "committed"
	StatusDiscarded Status = "discarded"
)

// Upload es la fila del ledger que acompaña a cada objeto subido.
type Upload struct {
	ID          string
	OwnerUserID string
	Path        string // pet_images/<uuid>.<ext>
	PublicURL   string
	ContentType string
	Size        int64
	Status      Status

	Attempts  int
	LastError string

	CreatedAt time.Time
	UpdatedAt time.Time
}
