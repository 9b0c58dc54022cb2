// Package ranges parses id arguments of the form N, A-B and A-B:S.
package ranges

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxSpan is the largest number of ids a single range may expand to.
const MaxSpan = 100000

var ErrTooLarge = fmt.Errorf("range expands to more than %d ids", MaxSpan)

// Parse expands every token into ids and returns their sorted, de-duplicated
// union. A-B ranges are inclusive and reversed bounds are swapped.
func Parse(tokens []string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, token := range tokens {
		ids, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	result := make([]int, 0, len(seen))
	for id := range seen {
		result = append(result, id)
	}
	slices.Sort(result)
	return result, nil
}

func parseToken(token string) ([]int, error) {
	if !strings.Contains(token, "-") {
		id, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("invalid id: %q", token)
		}
		return []int{id}, nil
	}
	rangePart, stepPart, hasStep := strings.Cut(token, ":")
	step := 1
	if hasStep {
		s, err := strconv.Atoi(strings.TrimSpace(stepPart))
		if err != nil || s <= 0 {
			return nil, fmt.Errorf("invalid range step: %q", token)
		}
		step = s
	}
	startPart, endPart, _ := strings.Cut(rangePart, "-")
	start, err := strconv.Atoi(strings.TrimSpace(startPart))
	if err != nil {
		return nil, fmt.Errorf("invalid range format: %q", token)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endPart))
	if err != nil {
		return nil, fmt.Errorf("invalid range format: %q", token)
	}
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("invalid range bounds: %q", token)
	}
	if start > end {
		start, end = end, start
	}
	count := (end-start)/step + 1
	if count > MaxSpan {
		return nil, fmt.Errorf("%q: %w", token, ErrTooLarge)
	}
	ids := make([]int, count)
	for i := range ids {
		ids[i] = start + i*step
	}
	return ids, nil
}

// Span returns the inclusive range [start, end], empty when end < start.
func Span(start, end int) ([]int, error) {
	if start > end {
		return nil, nil
	}
	if start < 0 {
		return nil, fmt.Errorf("invalid range bounds: %d-%d", start, end)
	}
	if end-start >= MaxSpan {
		return nil, fmt.Errorf("%d-%d: %w", start, end, ErrTooLarge)
	}
	ids := make([]int, end-start+1)
	for i := range ids {
		ids[i] = start + i
	}
	return ids, nil
}
