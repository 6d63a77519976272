package dataset

import (
	"sort"
	"strconv"
)

// Encoder maps class names to the codes 0..k-1. Names that all parse as
// numbers are ordered numerically, otherwise lexically.
type Encoder struct {
	classes []string
	codes   map[string]int
}

// NewEncoder builds an encoder over the distinct values.
func NewEncoder(values []string) *Encoder {
	codes := make(map[string]int)
	var classes []string
	for _, v := range values {
		if _, ok := codes[v]; ok {
			continue
		}
		codes[v] = 0
		classes = append(classes, v)
	}
	sort.SliceStable(classes, func(i, j int) bool {
		a, errA := strconv.ParseFloat(classes[i], 64)
		b, errB := strconv.ParseFloat(classes[j], 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return classes[i] < classes[j]
	})
	for i, c := range classes {
		codes[c] = i
	}
	return &Encoder{classes: classes, codes: codes}
}

// Encode returns the code of class v.
func (e *Encoder) Encode(v string) (int, bool) {
	code, ok := e.codes[v]
	return code, ok
}

// Decode returns the class name of code, or its decimal form when unknown.
func (e *Encoder) Decode(code int) string {
	if code < 0 || code >= len(e.classes) {
		return strconv.Itoa(code)
	}
	return e.classes[code]
}

// Classes returns the class names indexed by code.
func (e *Encoder) Classes() []string {
	return append([]string(nil), e.classes...)
}
