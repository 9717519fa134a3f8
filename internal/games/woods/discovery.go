package woods

// Tracker records which actor pairs have met and who follows whom.
// Pairs are sticky for the rest of the run; followers always point at a
// lower-ordered leader so the relation is acyclic.
type Tracker struct {
	n       int
	met     []bool // n*n, symmetric
	follows []int  // follower index -> leader index, -1 for none
}

// NewTracker creates an empty tracker for n actors.
func NewTracker(n int) *Tracker {
	t := &Tracker{
		n:       n,
		met:     make([]bool, n*n),
		follows: make([]int, n),
	}
	t.Clear()
	return t
}

// Clear forgets all pairs and follow bindings.
func (t *Tracker) Clear() {
	for i := range t.met {
		t.met[i] = false
	}
	for i := range t.follows {
		t.follows[i] = -1
	}
}

// Size returns the number of tracked actors.
func (t *Tracker) Size() int {
	return t.n
}

// Met reports whether actors i and j have met this run.
func (t *Tracker) Met(i, j int) bool {
	if i < 0 || j < 0 || i >= t.n || j >= t.n || i == j {
		return false
	}
	return t.met[i*t.n+j]
}

func (t *Tracker) setMet(i, j int) {
	t.met[i*t.n+j] = true
	t.met[j*t.n+i] = true
}

// MetCount returns the number of pairs that have met.
func (t *Tracker) MetCount() int {
	count := 0
	for i := 0; i < t.n; i++ {
		for j := i + 1; j < t.n; j++ {
			if t.met[i*t.n+j] {
				count++
			}
		}
	}
	return count
}

// AllMet reports whether every pair has met.
func (t *Tracker) AllMet() bool {
	return t.MetCount() == t.n*(t.n-1)/2
}

// LeaderOf returns the index actor i follows, or -1.
func (t *Tracker) LeaderOf(i int) int {
	if i < 0 || i >= t.n {
		return -1
	}
	return t.follows[i]
}

// Update checks every pair i<j. A pair that touches or has met before is
// marked met, both actors are found, i leads, and j follows i unless j
// already follows an earlier-found leader. Followers are then moved onto
// their leaders in ascending order so chains settle in one pass.
// It returns the number of pairs that met for the first time.
func (t *Tracker) Update(actors []*Actor) int {
	fresh := 0
	for i := 0; i < t.n; i++ {
		for j := i + 1; j < t.n; j++ {
			if !t.Met(i, j) && !actors[i].Touches(actors[j]) {
				continue
			}
			if !t.Met(i, j) {
				fresh++
			}
			t.setMet(i, j)
			actors[i].Found = true
			actors[j].Found = true
			actors[i].Leader = true
			actors[i].Halted = false
			if t.follows[j] < 0 {
				t.follows[j] = i
			}
		}
	}

	for j := 0; j < t.n; j++ {
		if l := t.follows[j]; l >= 0 {
			actors[j].Mirror(actors[l])
		}
	}
	return fresh
}

// Complete applies the completion rule for the group: two or three actors
// need every pair to have met, four or more also need all positions to coincide.
func (t *Tracker) Complete(actors []*Actor) bool {
	if t.n < 2 || !t.AllMet() {
		return false
	}
	if t.n < 4 {
		return true
	}
	for _, a := range actors[1:] {
		if a.Pos != actors[0].Pos {
			return false
		}
	}
	return true
}

// Settle clears leader flags and pair state once the group is complete.
func (t *Tracker) Settle(actors []*Actor) {
	for _, a := range actors {
		a.Leader = false
	}
	for i := range t.met {
		t.met[i] = false
	}
}
