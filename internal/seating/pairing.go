package seating

import "sort"

// BranchPair is two branches that share rooms. Second is empty when a branch
// is left without a partner.
type BranchPair struct {
	First  string
	Second string
}

// Partner returns the second branch of the pair, falling back to the first
// for unpaired entries so a single branch still fills both column sets.
func (p BranchPair) Partner() string {
	if p.Second == "" {
		return p.First
	}
	return p.Second
}

// pairPriority lists the canonical anti-collusion pairings in their declared
// scan order.
var pairPriority = [][2]string{
	{"CSE", "ECE"},
	{"MECH", "CSM"},
	{"CAI", "IT"},
	{"EEE", "CSD"},
	{"CIVIL", "AIML"},
}

// PairBranches produces the ordered pairing for the branches sitting an exam.
// CSE/ECE is emitted first whenever both are present, then the priority table
// in its declared order, then the remaining branches sorted lexicographically
// and paired two at a time, with an odd leftover emitted unpaired. The result
// depends only on the branch set, not its arrival order.
func PairBranches(branches []string) []BranchPair {
	present := make(map[string]bool, len(branches))
	for _, b := range branches {
		present[b] = true
	}

	consumed := make(map[string]bool)
	var pairs []BranchPair

	if present["CSE"] && present["ECE"] {
		pairs = append(pairs, BranchPair{First: "CSE", Second: "ECE"})
		consumed["CSE"] = true
		consumed["ECE"] = true
	}

	for _, p := range pairPriority {
		if consumed[p[0]] || consumed[p[1]] {
			continue
		}
		if present[p[0]] && present[p[1]] {
			pairs = append(pairs, BranchPair{First: p[0], Second: p[1]})
			consumed[p[0]] = true
			consumed[p[1]] = true
		}
	}

	remaining := make([]string, 0, len(present))
	for b := range present {
		if !consumed[b] {
			remaining = append(remaining, b)
		}
	}
	sort.Strings(remaining)

	for i := 0; i < len(remaining); i += 2 {
		if i+1 < len(remaining) {
			pairs = append(pairs, BranchPair{First: remaining[i], Second: remaining[i+1]})
		} else {
			pairs = append(pairs, BranchPair{First: remaining[i]})
		}
	}
	return pairs
}
