package ml

import "sort"

// LabelEncoder is a bijective string<->code mapping for one categorical
// column. Fit assigns codes in sorted vocabulary order; values first seen at
// inference time are appended to the end of the vocabulary, so encoding a
// value and decoding its code always round-trips.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{index: make(map[string]int)}
}

// Fit replaces the vocabulary with the sorted unique values of the column.
func (e *LabelEncoder) Fit(values []string) {
	seen := make(map[string]struct{}, len(values))
	e.classes = e.classes[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		e.classes = append(e.classes, v)
	}
	sort.Strings(e.classes)

	e.index = make(map[string]int, len(e.classes))
	for i, c := range e.classes {
		e.index[c] = i
	}
}

// Transform returns the code for a fitted value.
func (e *LabelEncoder) Transform(v string) (int, bool) {
	code, ok := e.index[v]
	return code, ok
}

// TransformOrExtend returns the code for v, appending it to the vocabulary
// first if it was never seen during fitting. The open-world extension
// guarantees inference never fails on a novel category; the new code maps to
// a value the model was never trained against, which is a prediction-quality
// caveat rather than an error.
func (e *LabelEncoder) TransformOrExtend(v string) int {
	if code, ok := e.index[v]; ok {
		return code
	}
	code := len(e.classes)
	e.classes = append(e.classes, v)
	e.index[v] = code
	return code
}

// Inverse decodes a code back to its value.
func (e *LabelEncoder) Inverse(code int) (string, bool) {
	if code < 0 || code >= len(e.classes) {
		return "", false
	}
	return e.classes[code], true
}

// Classes returns the current vocabulary in code order.
func (e *LabelEncoder) Classes() []string {
	return e.classes
}

// Len is the vocabulary size.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}
