package content

// NeighborPair holds the posts adjacent to the one being viewed.
// A nil field means there is no neighbor on that side.
type NeighborPair struct {
	Previous *PostRef
	Next     *PostRef
}

// ResolveNeighbors returns the posts immediately before and after uid in
// posts. An unknown uid yields an empty pair rather than an error, so the
// result is only complete when posts is the full, unpaginated feed.
func ResolveNeighbors(posts []PostRef, uid string) NeighborPair {
	var pair NeighborPair
	for i := range posts {
		if posts[i].UID != uid {
			continue
		}
		if i > 0 {
			prev := posts[i-1]
			pair.Previous = &prev
		}
		if i < len(posts)-1 {
			next := posts[i+1]
			pair.Next = &next
		}
		break
	}
	return pair
}
