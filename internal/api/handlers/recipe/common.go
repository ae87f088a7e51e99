package recipe

import (
	"strconv"
	"strings"

	"recipe-manager/internal/pkg/common"
)

// parseID parses a positive recipe id from a path parameter
func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, common.NewValidationError("Recipe ID is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("Invalid recipe ID")
	}
	return id, nil
}
