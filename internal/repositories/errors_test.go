package repository_test

import (
	"errors"
	"fmt"
	"testing"

	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	wrap := func(code pq.ErrorCode) error {
		return fmt.Errorf("failed to add order line: %w", &pq.Error{Code: code})
	}

	tests := []struct {
		name       string
		err        error
		retryable  bool
		unique     bool
		foreignKey bool
	}{
		{name: "serialization failure", err: wrap("40001"), retryable: true},
		{name: "deadlock", err: wrap("40P01"), retryable: true},
		{name: "unique violation", err: wrap("23505"), retryable: true, unique: true},
		{name: "foreign key violation", err: wrap("23503"), foreignKey: true},
		{name: "check violation is not retried", err: wrap("23514")},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, repository.IsRetryable(tt.err))
			assert.Equal(t, tt.unique, repository.IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, repository.IsForeignKeyViolation(tt.err))
		})
	}
}
