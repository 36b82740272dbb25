package engine

import "fmt"

// Bucket maps a set of enum values sharing one scalar amount to that
// amount. Grouping several values in one bucket is purely a convenience
// for rule authors and carries no other semantics.
type Bucket struct {
	Members []string
	Amount  float64
}

// NewBucket creates a bucket for the given selector values.
func NewBucket(amount float64, members ...string) Bucket {
	return Bucket{Members: members, Amount: amount}
}

// Threshold is a named numeric constant used in eligibility and phase-out
// comparisons. It is either a bare scalar or a bracketed spec: an ordered
// list of buckets keyed by enum values (typically filing status).
type Threshold struct {
	name    string
	amount  float64
	buckets []Bucket
}

// ScalarThreshold creates a threshold with a single amount, independent of
// any selector.
func ScalarThreshold(name string, amount float64) *Threshold {
	return &Threshold{name: name, amount: amount}
}

// BracketedThreshold creates a threshold whose amount depends on a
// selector matched against the given buckets.
func BracketedThreshold(name string, buckets ...Bucket) *Threshold {
	return &Threshold{name: name, buckets: buckets}
}

// Name returns the threshold's declared name.
func (t *Threshold) Name() string {
	return t.name
}

// Bracketed reports whether lookups against this threshold require a
// selector.
func (t *Threshold) Bracketed() bool {
	return len(t.buckets) > 0
}

// match returns the index of the single bucket containing selector.
// Requiring exactly one match makes an overlapping or incomplete bucket
// list an immediately diagnosable authoring defect instead of an
// order-dependent accident.
func (t *Threshold) match(selector string) (int, error) {
	found := -1
	for i, b := range t.buckets {
		for _, m := range b.Members {
			if m != selector {
				continue
			}
			if found >= 0 {
				return -1, &ThresholdError{Threshold: t.name, Selector: selector, Reason: fmt.Sprintf("selector appears in buckets %d and %d", found, i)}
			}
			found = i
		}
	}
	if found < 0 {
		return -1, &ThresholdError{Threshold: t.name, Selector: selector, Reason: "selector matches no bucket"}
	}
	return found, nil
}

// Lookup returns the threshold amount for the given selector. Scalar
// thresholds ignore the selector entirely; bracketed thresholds require a
// selector appearing in exactly one bucket.
func (t *Threshold) Lookup(selector string) (float64, error) {
	if !t.Bracketed() {
		return t.amount, nil
	}
	if selector == "" {
		return 0, &ThresholdError{Threshold: t.name, Reason: "bracketed threshold queried without a selector"}
	}
	i, err := t.match(selector)
	if err != nil {
		return 0, err
	}
	return t.buckets[i].Amount, nil
}
