package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serErr := &pq.Error{Code: "40001"}

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "голая ошибка драйвера",
			err:  serErr,
			want: true,
		},
		{
			name: "обёрнута репозиторием через %w",
			err:  fmt.Errorf("repository: execute query: %w", serErr),
			want: true,
		},
		{
			name: "двойная обёртка репозиторий плюс use case",
			err:  fmt.Errorf("usecase: %w", fmt.Errorf("repository: execute query: %w", serErr)),
			want: true,
		},
		{
			name: "ошибка драйвера потеряна через %v",
			err:  fmt.Errorf("repository: execute query: %v", serErr),
			want: false,
		},
		{
			name: "другой код PostgreSQL",
			err:  &pq.Error{Code: "23P01"},
			want: false,
		},
		{
			name: "обычная ошибка",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isSerializationFailure(tc.err))
		})
	}
}
