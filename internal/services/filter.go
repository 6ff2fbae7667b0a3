package services

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"vendorapp/internal/models"
)

var filterValidate = validator.New()

const dateLayout = "2006-01-02"

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ResolveFilter maps a filter selection to the creation-time range it covers.
// A nil range means no date constraint. Dates are computed in now's location.
func ResolveFilter(selection models.FilterSelection, now time.Time) (*models.DateRange, error) {
	switch selection.Kind {
	case models.FilterAll, "":
		return nil, nil
	case models.FilterToday:
		return &models.DateRange{Start: startOfDay(now), End: endOfDay(now)}, nil
	case models.FilterYesterday:
		yesterday := now.AddDate(0, 0, -1)
		return &models.DateRange{Start: startOfDay(yesterday), End: endOfDay(yesterday)}, nil
	case models.FilterLast7:
		return &models.DateRange{Start: startOfDay(now.AddDate(0, 0, -7)), End: endOfDay(now)}, nil
	case models.FilterCustom:
		return resolveCustom(selection, now.Location())
	default:
		return nil, &ValidationError{Err: fmt.Errorf("unknown filter %q", selection.Kind)}
	}
}

func resolveCustom(selection models.FilterSelection, loc *time.Location) (*models.DateRange, error) {
	if selection.Start == "" || selection.End == "" {
		return nil, &ValidationError{Err: ErrIncompleteRange}
	}
	custom := models.CustomRange{Start: selection.Start, End: selection.End}
	if err := filterValidate.Struct(custom); err != nil {
		return nil, validationError(err)
	}

	start, err := time.ParseInLocation(dateLayout, custom.Start, loc)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	end, err := time.ParseInLocation(dateLayout, custom.End, loc)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	y, m, d := end.Date()
	return &models.DateRange{
		Start: start,
		End:   time.Date(y, m, d, 23, 59, 59, 0, loc),
	}, nil
}
