package application

import (
	"context"
	"errors"
	"time"

	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

// RecordStore appends normalized records to a durable, append-only medium.
// RecordStore は正規化済みレコードを追記専用の永続化先へ書き込むポート。
type RecordStore interface {
	Append(ctx context.Context, record domain.Record) error
	Location() string
}

// SubmissionService handles the intake use-case.
type SubmissionService interface {
	Submit(ctx context.Context, cmd SubmitCommand) (*Receipt, error)
	StorageLocation() string
}

// SubmitCommand carries a shape-checked submission.
type SubmitCommand struct {
	Submission domain.Submission
}

// Receipt is returned for a persisted submission.
type Receipt struct {
	SavedTo string
}

// NewSubmissionService binds the service to its store. A nil clock means time.Now.
func NewSubmissionService(store RecordStore, clock func() time.Time) SubmissionService {
	if clock == nil {
		clock = time.Now
	}
	return &submissionService{store: store, now: clock}
}

type submissionService struct {
	store RecordStore
	now   func() time.Time
}

func (s *submissionService) Submit(ctx context.Context, cmd SubmitCommand) (*Receipt, error) {
	record := domain.Normalize(cmd.Submission, s.now())

	if err := s.store.Append(ctx, record); err != nil {
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			return nil, err
		}
		return nil, &domain.StoreError{Location: s.store.Location(), Err: err}
	}

	return &Receipt{SavedTo: s.store.Location()}, nil
}

func (s *submissionService) StorageLocation() string {
	return s.store.Location()
}
