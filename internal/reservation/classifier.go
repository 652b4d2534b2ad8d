package reservation

import "github.com/Amanastel/TicketFlow/internal/model"

// classify maps one non-child passenger within booking group g to a
// priority class. Priority governs lower-berth preference during Confirmed
// allocation only — it never affects RAC/Waiting queue order (SPEC_FULL.md
// §4.2).
//
// Grounded on the teacher's two-stage hard-constraint-then-score shape in
// service/matching.go, simplified here to a single hard classification
// (there is no scoring step — priority class is a pure, stable function).
func classify(p *model.Passenger, group []*model.Passenger) model.PriorityClass {
	if p.IsSenior() {
		return model.PrioritySenior
	}
	if p.Gender == model.Female && isLadyWithChild(p, group) {
		return model.PriorityLadyWithChild
	}
	return model.PriorityNormal
}

// isLadyWithChild reports whether p is travelling with a child in the same
// booking group: either p is flagged as a parent, or some other passenger in
// the group is a child sharing p's non-empty parent identifier.
func isLadyWithChild(p *model.Passenger, group []*model.Passenger) bool {
	if p.IsParent {
		return true
	}
	if p.ParentIdentifier == "" {
		return false
	}
	for _, other := range group {
		if other == p {
			continue
		}
		if other.IsChild() && other.ParentIdentifier == p.ParentIdentifier {
			return true
		}
	}
	return false
}

// priorityOrder stable-sorts the non-child passengers of a booking group by
// priority class (Senior, then LadyWithChild, then Normal), preserving
// original request order within each bucket.
func priorityOrder(nonChild []*model.Passenger, group []*model.Passenger) []*model.Passenger {
	buckets := map[model.PriorityClass][]*model.Passenger{}
	for _, p := range nonChild {
		c := classify(p, group)
		buckets[c] = append(buckets[c], p)
	}
	ordered := make([]*model.Passenger, 0, len(nonChild))
	ordered = append(ordered, buckets[model.PrioritySenior]...)
	ordered = append(ordered, buckets[model.PriorityLadyWithChild]...)
	ordered = append(ordered, buckets[model.PriorityNormal]...)
	return ordered
}
