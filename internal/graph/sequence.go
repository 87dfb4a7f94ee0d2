package graph

// SequenceOptions bounds sequence enumeration. Zero values disable a bound.
type SequenceOptions struct {
	// MaxLength is the longest sequence, in transplants.
	MaxLength int
	// MaxCountries is the largest number of distinct countries in a sequence.
	MaxCountries int
	// MaxCount aborts enumeration with TooComplicatedError once exceeded.
	MaxCount int
}

// frame is one level of the explicit DFS stack.
type frame struct {
	donor int
	next  int // index into donorAdj[donor] of the next branch to try
}

// FindSequences enumerates every sequence that starts at a bridge donor:
// each simple path of 1..MaxLength transplants along the donor adjacency.
// A prefix of a longer sequence is returned as a sequence of its own.
// Paths whose country count exceeds the bound, or in which a recipient
// would receive twice, are pruned together with all their extensions.
//
// The search uses an explicit stack with a covered set. A donor is
// covered while it is on the stack and released when its frame is popped,
// so sibling branches can use it again.
func (g *Graph) FindSequences(opts SequenceOptions) ([]Path, error) {
	var sequences []Path

	for _, start := range g.BridgeDonors() {
		covered := map[int]bool{start: true}
		path := Path{start}
		stack := []frame{{donor: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			adj := g.donorAdj[top.donor]

			if (opts.MaxLength > 0 && path.Len() >= opts.MaxLength) || top.next >= len(adj) {
				delete(covered, top.donor)
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}

			w := adj[top.next]
			top.next++
			if covered[w] {
				continue
			}

			candidate := append(path, w)
			if g.repeatsRecipient(candidate) {
				continue
			}
			if opts.MaxCountries > 0 && g.countries(g.Pairs(candidate)) > opts.MaxCountries {
				continue
			}

			path = candidate
			covered[w] = true
			stack = append(stack, frame{donor: w})

			if opts.MaxCount > 0 && len(sequences) >= opts.MaxCount {
				return nil, &TooComplicatedError{What: "sequences", Limit: opts.MaxCount}
			}
			sequences = append(sequences, append(Path(nil), path...))
		}
	}

	return sequences, nil
}
