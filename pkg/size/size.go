package size

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// KB represents 1 kilobyte in bytes
	KB = 1024
	// MB represents 1 megabyte in bytes
	MB = 1024 * KB
	// GB represents 1 gigabyte in bytes
	GB = 1024 * MB
)

var sizeRe = regexp.MustCompile(`^(\d+)\s?(kb|mb|gb)?$`)

// Parse parses a size string such as "512kb", "16Mb" or "1 GB" into bytes.
// A bare number is taken as bytes.
func Parse(input string) (int64, error) {
	match := sizeRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(input)))
	if match == nil {
		return 0, fmt.Errorf("size %q has unknown format", input)
	}

	digits, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse size value: %w", err)
	}

	var multiplier int64

	switch match[2] {
	case "kb":
		multiplier = KB
	case "mb":
		multiplier = MB
	case "gb":
		multiplier = GB
	default:
		multiplier = 1
	}

	return digits * multiplier, nil
}
