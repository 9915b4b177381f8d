package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bloodbank/internal/domain/bloodtype"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

var invalidBloodTypeMessage = "blood_type must be one of " + strings.Join(bloodtype.All(), ", ")

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseDateParam(*value)
}

func formatDate(value time.Time) string {
	return value.UTC().Format(dateLayout)
}

func formatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := formatDate(*value)
	return &formatted
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return parsed, nil
}

func parseOptionalIDParam(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return nil, fmt.Errorf("invalid id")
	}
	return &parsed, nil
}
