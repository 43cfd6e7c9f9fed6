// File: states.go
// Role: low-level state/transition primitives. AddTree (build.go) is
//       implemented in terms of these; tests also use them directly to
//       construct automata whose states are shared
//       across transitions in ways tree ingestion alone cannot express
//       (spec §8 scenario 6 requires exactly this: two leaf symbols whose
//       parent transitions both produce the SAME result state).
// Concurrency:
//   - Mutations under muBuild write lock.

package automaton

// NewState allocates and returns a fresh state id with an empty reverse
// index entry. It does not add any transition.
func (a *Automaton) NewState() int {
	a.muBuild.Lock()
	defer a.muBuild.Unlock()

	return a.newState()
}

func (a *Automaton) newState() int {
	id := len(a.reverseIndex)
	a.reverseIndex = append(a.reverseIndex, nil)
	return id
}

// AddTransition appends a transition (symbol, args, result) to a and
// registers it in the reverse index of every state in args. args and
// result must already exist (via NewState or a prior AddTree/AddTransition
// call); AddTransition does not allocate states. It returns the new
// transition's index.
func (a *Automaton) AddTransition(symbol string, args []int, result int) int {
	a.muBuild.Lock()
	defer a.muBuild.Unlock()

	return a.addTransition(symbol, args, result)
}

func (a *Automaton) addTransition(symbol string, args []int, result int) int {
	txIndex := len(a.transitions)
	a.transitions = append(a.transitions, Transition{
		Symbol: symbol,
		Args:   args,
		Result: result,
	})

	for _, arg := range args {
		a.reverseIndex[arg] = append(a.reverseIndex[arg], txIndex)
	}

	return txIndex
}
