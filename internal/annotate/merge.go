package annotate

// MergeLabelInfo unions existing and incoming by label name: every
// incoming label already present in existing (by name) reuses its
// existing index; every new label is appended, picking a fresh color and
// category id as Push would. It returns the merged catalog and a remap
// slice where remap[i] is incoming label i's index in the merged catalog,
// so callers can rewrite incoming annotations' category indices.
func MergeLabelInfo(existing, incoming LabelInfo) (LabelInfo, []int) {
	merged := existing
	remap := make([]int, incoming.Len())
	for i, label := range incoming.labels {
		foundIdx := -1
		for j, existingLabel := range merged.labels {
			if existingLabel == label {
				foundIdx = j
				break
			}
		}
		if foundIdx >= 0 {
			remap[i] = foundIdx
			continue
		}
		var colorArg *[3]uint8
		if i < len(incoming.colors) {
			c := incoming.colors[i]
			if !colorExists(merged.colors, c) {
				colorArg = &c
			}
		}
		_ = merged.Push(label, colorArg, nil)
		remap[i] = merged.Len() - 1
	}
	return merged, remap
}

func colorExists(colors [][3]uint8, c [3]uint8) bool {
	for _, existing := range colors {
		if existing == c {
			return true
		}
	}
	return false
}

// MergeAnnotationsMap unions incoming into existing: entries for paths not
// already present are copied in wholesale (with their category indices
// rewritten through remap); entries for paths already present get their
// incoming instances appended, skipping any that already exist by
// structural equality (geometry-level dedupe).
func MergeAnnotationsMap[T Annotate[T]](existing, incoming AnnotationsMap[T], remap []int) AnnotationsMap[T] {
	merged := NewAnnotationsMap[T]()
	for k, v := range existing.entries {
		merged.entries[k] = v
	}
	for key, incEntry := range incoming.entries {
		rewritten := make([]int, len(incEntry.Annotations.catIdxs))
		for i, c := range incEntry.Annotations.catIdxs {
			if c >= 0 && c < len(remap) {
				rewritten[i] = remap[c]
			} else {
				rewritten[i] = c
			}
		}
		existingEntry, ok := merged.entries[key]
		if !ok {
			merged.Set(key, Entry[T]{
				Annotations: FromEltsCats(incEntry.Annotations.elts, rewritten),
				Shape:       incEntry.Shape,
			})
			continue
		}
		for i, elt := range incEntry.Annotations.elts {
			if containsElt(existingEntry.Annotations.elts, elt) {
				continue
			}
			existingEntry.Annotations.AddElt(elt, rewritten[i], DisplayNone)
		}
		merged.Set(key, existingEntry)
	}
	return merged
}
