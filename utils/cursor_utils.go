package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeCursor renders a delta cursor the way the server expects it, uppercase hex
// without prefix.
func EncodeCursor(cursor int64) string {
	return strings.ToUpper(strconv.FormatInt(cursor, 16))
}

// DecodeCursor accepts either case.
func DecodeCursor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, fmt.Errorf("empty cursor")
	}
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cursor:%s failed, err:%w", s, err)
	}
	return v, nil
}
