package capdata_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/capdata"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := capdata.Errorf(capdata.ESTRUCTURE, "no %s found", "table")

	assert.Equal(t, capdata.ESTRUCTURE, capdata.ErrorCode(err))
	assert.Equal(t, "no table found", capdata.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, capdata.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, capdata.ErrorMessage(nil))
}

func TestErrorCode_OtherError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")

	assert.Equal(t, capdata.EINTERNAL, capdata.ErrorCode(err))
	assert.Equal(t, "Internal error.", capdata.ErrorMessage(err))
}

func TestPageError(t *testing.T) {
	t.Parallel()

	t.Run("exposes the wrapped error code", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("scrape: %w", &capdata.PageError{
			Team:   "Arizona Cardinals",
			Season: 2023,
			Kind:   capdata.PageTeamSummary,
			URL:    "https://www.spotrac.com/nfl/arizona-cardinals/cap/2023/",
			Err:    capdata.Errorf(capdata.ESCHEMA, "summary has 3 labels and 2 values"),
		})

		assert.Equal(t, capdata.ESCHEMA, capdata.ErrorCode(err))
		assert.Equal(t, "summary has 3 labels and 2 values", capdata.ErrorMessage(err))
	})

	t.Run("names team season and page kind", func(t *testing.T) {
		t.Parallel()

		err := &capdata.PageError{
			Team:   "Arizona Cardinals",
			Season: 2022,
			Kind:   capdata.PagePlayerRoster,
			URL:    "https://www.spotrac.com/nfl/arizona-cardinals/cap/",
			Err:    errors.New("boom"),
		}

		assert.Contains(t, err.Error(), "Arizona Cardinals")
		assert.Contains(t, err.Error(), "2022")
		assert.Contains(t, err.Error(), "player roster")
		assert.Contains(t, err.Error(), "boom")
	})
}
