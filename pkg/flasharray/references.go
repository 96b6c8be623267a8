package flasharray

import (
	"strings"
)

// ResolveReferences resolves a collection of references into the id/name list
// parameter expected by an endpoint. candidates is the ordered list of
// parameter names the endpoint accepts for this target, conventionally ending
// in "ids" and/or "names" (e.g. "ids", "names" or "host_names").
//
// References take precedence over raw id/name lists already present in
// params: any candidate parameter that was set directly is removed before
// resolution. If every reference exposes an id and an "...ids" candidate
// exists, that candidate is populated with the ids in input order; otherwise,
// if every reference exposes a name and a "...names" candidate exists, that
// candidate is populated with the names. A collection that is uniform in
// neither attribute fails with *InvalidReferenceError rather than silently
// dropping items.
//
// The given params value is not mutated; the resolved copy is returned. A
// nil or empty refs slice is a no-op.
func ResolveReferences(refs []Reference, params *QueryParams, candidates ...string) (*QueryParams, error) {
	if len(refs) == 0 {
		if params == nil {
			return NewQueryParams(), nil
		}

		return params, nil
	}

	resolved := params.Clone()
	for _, candidate := range candidates {
		if resolved.has(candidate) {
			resolved.unset(candidate)
		}
	}

	allIDs := true
	allNames := true

	for i := range refs {
		if refs[i].ID == "" {
			allIDs = false
		}

		if refs[i].Name == "" {
			allNames = false
		}
	}

	if allIDs {
		if candidate, ok := candidateWithSuffix(candidates, "ids"); ok {
			ids := make([]string, 0, len(refs))
			for i := range refs {
				ids = append(ids, refs[i].ID)
			}

			resolved.set(candidate, ids)

			return resolved, nil
		}
	}

	if allNames {
		if candidate, ok := candidateWithSuffix(candidates, "names"); ok {
			names := make([]string, 0, len(refs))
			for i := range refs {
				names = append(names, refs[i].Name)
			}

			resolved.set(candidate, names)

			return resolved, nil
		}
	}

	return nil, &InvalidReferenceError{Candidates: candidates}
}

// ResolveReference resolves a single reference; see ResolveReferences.
func ResolveReference(ref Reference, params *QueryParams, candidates ...string) (*QueryParams, error) {
	return ResolveReferences([]Reference{ref}, params, candidates...)
}

func candidateWithSuffix(candidates []string, suffix string) (string, bool) {
	for _, candidate := range candidates {
		if strings.HasSuffix(candidate, suffix) {
			return candidate, true
		}
	}

	return "", false
}
