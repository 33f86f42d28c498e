package mib

import "sort"

// Element is a normalized constraint member: a singleton when Lo == Hi, a
// range otherwise. NewConstraint sorts and merges elements but keeps an
// element written with Lo > Hi as it is.
type Element struct {
	Lo, Hi int64
}

// IsSingleton reports whether this element names exactly one value.
func (e Element) IsSingleton() bool { return e.Lo == e.Hi }

func (e Element) contains(v int64) bool { return v >= e.Lo && v <= e.Hi }

// Constraint is a SIZE(...) or value-range constraint clause: IsSize
// distinguishes the two, and Elements holds the normalized (sorted,
// merged) set of singletons and ranges.
type Constraint struct {
	IsSize   bool
	Elements []Element
}

// NewConstraint builds a Constraint from a raw, possibly-overlapping
// element list, sorting it and merging overlapping or adjacent ranges.
func NewConstraint(isSize bool, raw []Element) *Constraint {
	c := &Constraint{IsSize: isSize, Elements: normalizeElements(raw)}
	return c
}

func normalizeElements(raw []Element) []Element {
	if len(raw) == 0 {
		return nil
	}
	sorted := make([]Element, len(raw))
	copy(sorted, raw)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Lo != sorted[j].Lo {
			return sorted[i].Lo < sorted[j].Lo
		}
		return sorted[i].Hi < sorted[j].Hi
	})
	merged := make([]Element, 0, len(sorted))
	cur := sorted[0]
	for _, e := range sorted[1:] {
		if e.Lo <= cur.Hi+1 {
			if e.Hi > cur.Hi {
				cur.Hi = e.Hi
			}
			continue
		}
		merged = append(merged, cur)
		cur = e
	}
	merged = append(merged, cur)
	return merged
}

// Contains reports whether v satisfies any element of the constraint.
func (c *Constraint) Contains(v int64) bool {
	for _, e := range c.Elements {
		if e.contains(v) {
			return true
		}
	}
	return false
}

// fixedSize returns the constraint's single fixed length and true, if the
// constraint names exactly one element and it is a singleton (a SIZE(n)
// clause with no range): SIZE(n) consumes exactly n elements with no
// runtime length prefix.
func (c *Constraint) fixedSize() (int64, bool) {
	if len(c.Elements) == 1 && c.Elements[0].IsSingleton() {
		return c.Elements[0].Lo, true
	}
	return 0, false
}

// Extract splits the leading sub-identifiers of oid that this constraint's
// type is encoded in from the remaining residue:
//
//   - non-size constraint: the content is the single leading sub-identifier,
//     which must satisfy the constraint; the rest is the next residue.
//   - SIZE(n) (a fixed length): content is the next n sub-identifiers taken
//     directly, with no runtime length prefix; an implied size of 0
//     consumes 0 elements.
//   - SIZE(a..b) (a range): oid[0] is itself the runtime length (it must
//     satisfy the constraint), and content is the following oid[0]
//     sub-identifiers.
//
// ok is false when oid is too short to satisfy the constraint, or the
// governing length fails the constraint (a ConstraintViolation at the
// index-resolver layer).
func (c *Constraint) Extract(oid []int64) (content, next []int64, ok bool) {
	if !c.IsSize {
		if len(oid) == 0 || !c.Contains(oid[0]) {
			return nil, nil, false
		}
		return oid[:1], tailOrNil(oid, 1), true
	}
	if n, isFixed := c.fixedSize(); isFixed {
		if n < 0 || int64(len(oid)) < n {
			return nil, nil, false
		}
		return oid[:n], tailOrNil(oid, int(n)), true
	}
	if len(oid) == 0 {
		return nil, nil, false
	}
	k := oid[0]
	if k < 0 || !c.Contains(k) {
		return nil, nil, false
	}
	need := 1 + k
	if int64(len(oid)) < need {
		return nil, nil, false
	}
	return oid[1:need], tailOrNil(oid, int(need)), true
}

func tailOrNil(oid []int64, from int) []int64 {
	if from >= len(oid) {
		return nil
	}
	return oid[from:]
}
