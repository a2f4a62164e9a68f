package rmp

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// The GraphQL API identifies schools and teachers by base64-encoded global
// IDs of the form "School-1576" or "Teacher-12345".

// EncodeSchoolID converts a numeric school ID to the opaque global ID the
// search endpoint expects.
func EncodeSchoolID(numericID int64) string {
	return base64.StdEncoding.EncodeToString(fmt.Appendf(nil, "School-%d", numericID))
}

// DecodeLegacyID extracts the numeric part of a decoded global ID such as
// "School-1576" or "Teacher-12345".
func DecodeLegacyID(globalID string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(globalID)
	if err != nil {
		return 0, fmt.Errorf("decode global id %q: %w", globalID, err)
	}
	s := string(raw)
	_, num, ok := strings.Cut(s, "-")
	if !ok {
		return 0, fmt.Errorf("global id %q has no type prefix", s)
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("global id %q has non-numeric suffix: %w", s, err)
	}
	return n, nil
}
