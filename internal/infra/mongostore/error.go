package mongostore

import (
	"context"
	"errors"

	"course-enrollment/internal/infra"

	"go.mongodb.org/mongo-driver/mongo"
)

// wrapErr is the mongo counterpart of infra.WrapRepoErr.
func wrapErr(msg string, err error, kind ...infra.RepositoryErrorKind) error {
	if err == nil {
		return nil
	}
	if len(kind) > 0 {
		return infra.NewRepoErr(kind[0], msg, err)
	}
	var re infra.RepositoryError
	if errors.As(err, &re) {
		return infra.NewRepoErr(re.Kind, msg, err)
	}
	return infra.NewRepoErr(classify(err), msg, err)
}

func classify(err error) infra.RepositoryErrorKind {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return infra.KindNotFound
	case mongo.IsDuplicateKeyError(err):
		return infra.KindDuplicateKey
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled),
		mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return infra.KindUnavailable
	}
	return infra.KindDBFailure
}
