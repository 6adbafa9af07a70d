package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/bookwarm/internal/errors"
	"github.com/listenupapp/bookwarm/internal/validation"
)

type testRecord struct {
	ISBN  int64  `attr:"isbn" validate:"isbn"`
	Title string `attr:"title" validate:"min=3"`
	Year  int    `attr:"year_published" validate:"notfuture"`
}

func fixedClock() time.Time {
	return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New(validation.WithClock(fixedClock))

	err := v.Validate(testRecord{ISBN: 1234567890, Title: "Dune", Year: 1965})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New(validation.WithClock(fixedClock))

	tests := []struct {
		name      string
		rec       testRecord
		wantField string
	}{
		{"isbn too short", testRecord{ISBN: 12345, Title: "Dune", Year: 1965}, "isbn"},
		{"isbn 11 digits", testRecord{ISBN: 12345678901, Title: "Dune", Year: 1965}, "isbn"},
		{"title too short", testRecord{ISBN: 1234567890, Title: "Du", Year: 1965}, "title"},
		{"year in the future", testRecord{ISBN: 1234567890, Title: "Dune", Year: 2025}, "year_published"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.rec)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_ISBNThirteenDigits(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Var("isbn", int64(1234567890123), validation.TagISBN))
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()

	err := v.Var("rating", 6, "gte=0,lte=5")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.Contains(t, err.Error(), "rating")

	assert.NoError(t, v.Var("rating", 5, "gte=0,lte=5"))
}

func TestValidator_NotFutureUsesClock(t *testing.T) {
	v := validation.New(validation.WithClock(fixedClock))

	assert.NoError(t, v.Var("year_published", 2024, validation.TagNotFuture))
	err := v.Var("year_published", 2025, validation.TagNotFuture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024")
}
