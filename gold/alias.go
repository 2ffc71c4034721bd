package gold

// Normalize rewrites every row's Tag through aliases (alias → primary tag).
// Tags with no alias entry are kept as written.
func (d *Document) Normalize(aliases map[string]string) {
	for i := range d.Rows {
		if to, ok := aliases[d.Rows[i].RawTag]; ok {
			d.Rows[i].Tag = to
		} else {
			d.Rows[i].Tag = d.Rows[i].RawTag
		}
	}
}

// TransitionTags returns the normalized tags that belong to primary, in file
// order. Rows tagged with anything else are dropped, so the pair counts only
// ever see primary-to-primary transitions.
func (d *Document) TransitionTags(primary []string) []string {
	keep := make(map[string]bool, len(primary))
	for _, p := range primary {
		keep[p] = true
	}
	var out []string
	for _, r := range d.Rows {
		if keep[r.Tag] {
			out = append(out, r.Tag)
		}
	}
	return out
}
