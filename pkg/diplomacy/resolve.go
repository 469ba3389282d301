package diplomacy

import (
	"fmt"

	"stpsyr/internal/logger"
)

// Resolution state constants for the Kruijswijk algorithm.
type resolutionState int

const (
	rsUnresolved resolutionState = iota
	rsGuessing
	rsResolved
)

// adjResult tracks the resolution of a single order in the dependency graph.
type adjResult struct {
	order        Order
	state        resolutionState
	resolution   bool // true = succeeds, false = fails
	provIdx      int16
	targetIdx    int16
	auxLocIdx    int16
	auxTargetIdx int16
}

// ResolveOrders adjudicates a set of validated orders against the game state.
// Returns the list of resolved orders with outcomes, and a list of dislodged units.
func ResolveOrders(orders []Order, gs *GameState, m *DiplomacyMap) ([]ResolvedOrder, []DislodgedUnit) {
	r := newResolver(orders, gs, m)
	return r.resolve()
}

// resolver adjudicates a single batch of orders using Kruijswijk's recursive
// guess-and-backtrack algorithm: each order is assigned a tentative
// resolution, and if adjudicating it pulls in another order that is itself
// still being guessed, the two are tangled into a dependency cycle. The
// cycle's root re-tries the opposite guess; if both guesses agree the cycle
// was a false alarm (its outcome didn't actually depend on the guess), and if
// they disagree it's a genuine paradox resolved by the backup rule.
type resolver struct {
	lookup       [ProvinceCount]int16 // province index -> adjBuf offset (-1 = no order)
	adjBuf       []adjResult          // dense storage for iteration
	orderList    []Order
	gs           *GameState
	m            *DiplomacyMap
	dependencies []int16 // shared dependency stack for the current top-level resolve
}

// orderAt returns the adjResult for the given province index, or nil if no order exists.
func (r *resolver) orderAt(provIdx int16) *adjResult {
	if provIdx < 0 {
		return nil
	}
	idx := r.lookup[provIdx]
	if idx < 0 {
		return nil
	}
	return &r.adjBuf[idx]
}

// orderAtLoc returns the adjResult for the given province string, or nil if no order exists.
func (r *resolver) orderAtLoc(loc string) *adjResult {
	return r.orderAt(int16(r.m.ProvinceIndex(loc)))
}

// initLookup populates the lookup array and adjBuf province indices from the order list.
func (r *resolver) initLookup() {
	for i := range r.lookup {
		r.lookup[i] = -1
	}
	for i, o := range r.orderList {
		pIdx := int16(r.m.ProvinceIndex(o.Location))
		tIdx := int16(-1)
		if o.Target != "" {
			tIdx = int16(r.m.ProvinceIndex(o.Target))
		}
		aLIdx := int16(-1)
		if o.AuxLoc != "" {
			aLIdx = int16(r.m.ProvinceIndex(o.AuxLoc))
		}
		aTIdx := int16(-1)
		if o.AuxTarget != "" {
			aTIdx = int16(r.m.ProvinceIndex(o.AuxTarget))
		}
		r.adjBuf[i] = adjResult{
			order:        o,
			provIdx:      pIdx,
			targetIdx:    tIdx,
			auxLocIdx:    aLIdx,
			auxTargetIdx: aTIdx,
		}
		if pIdx >= 0 {
			r.lookup[pIdx] = int16(i)
		}
	}
}

func newResolver(orders []Order, gs *GameState, m *DiplomacyMap) *resolver {
	r := &resolver{
		adjBuf:    make([]adjResult, len(orders)),
		orderList: orders,
		gs:        gs,
		m:         m,
	}
	r.initLookup()
	return r
}

func (r *resolver) resolve() ([]ResolvedOrder, []DislodgedUnit) {
	for i := range r.adjBuf {
		r.adjudicate(r.adjBuf[i].provIdx)
	}
	return r.buildResults()
}

// adjudicate resolves the order at the given province index, following
// Kruijswijk's algorithm (http://diplom.org/Zine/S2009M/Kruijswijk/DipMath_Chp6.htm):
// guess a resolution, check whether adjudicating it was self-consistent, and
// back off to the opposite guess (or the backup rule) when it was not.
func (r *resolver) adjudicate(provIdx int16) bool {
	ar := r.orderAt(provIdx)
	if ar == nil {
		return false
	}

	switch ar.state {
	case rsResolved:
		return ar.resolution
	case rsGuessing:
		// Re-entrant visit: record the dependency (if not already on the
		// stack) and hand back the current guess for the caller to use.
		if !r.onStack(provIdx) {
			r.dependencies = append(r.dependencies, provIdx)
		}
		return ar.resolution
	}

	base := len(r.dependencies)

	ar.resolution = false
	ar.state = rsGuessing
	first := r.resolveOrder(provIdx)

	if len(r.dependencies) == base {
		// Nothing pushed a dependency: the result never depended on a
		// guess, so it's final as-is.
		if ar.state != rsResolved {
			ar.resolution = first
		}
		ar.state = rsResolved
		return ar.resolution
	}

	if r.dependencies[base] != provIdx {
		// We depend on some other order's guess, still unresolved above us
		// on the call stack. Record ourselves as part of the chain and let
		// the caller further up reconcile it.
		r.dependencies = append(r.dependencies, provIdx)
		ar.resolution = first
		return first
	}

	// We are the root of our own dependency cycle: drain everything the
	// first guess pulled in and retry with the opposite guess.
	r.drainTo(base)
	ar.resolution = true
	ar.state = rsGuessing
	second := r.resolveOrder(provIdx)

	if first == second {
		// Both guesses agree: the cycle's outcome didn't actually hinge on
		// the guess after all.
		r.drainTo(base)
		ar.resolution = first
		ar.state = rsResolved
		return first
	}

	// The two guesses disagree: a genuine paradox. Apply the backup rule to
	// the cycle, then re-enter to pick up wherever it left off.
	r.backupRule(base)
	return r.adjudicate(provIdx)
}

// onStack reports whether provIdx is already on the dependency stack.
func (r *resolver) onStack(provIdx int16) bool {
	for _, p := range r.dependencies {
		if p == provIdx {
			return true
		}
	}
	return false
}

// drainTo resets every order pushed onto the dependency stack since base
// back to unresolved, and truncates the stack to base.
func (r *resolver) drainTo(base int) {
	for _, p := range r.dependencies[base:] {
		if ar := r.orderAt(p); ar != nil {
			ar.state = rsUnresolved
		}
	}
	r.dependencies = r.dependencies[:base]
}

// backupRule is invoked when a dependency cycle's two guesses disagree: a
// genuine paradox. The set of orders drained from the stack at or after base
// is resolved deterministically:
//   - if every order in the set is a Move, it's circular movement: all succeed.
//   - if the set contains a Convoy, it's a convoy paradox: by the Szykman
//     convention every Convoy in the set fails, and non-convoy members revert
//     to unresolved to be re-resolved against the now-failed convoys.
//   - any other shape is a paradox this algorithm does not know how to break;
//     it should never arise on a well-formed map.
func (r *resolver) backupRule(base int) {
	cycle := append([]int16(nil), r.dependencies[base:]...)
	r.dependencies = r.dependencies[:base]

	onlyMoves, hasConvoy := true, false
	for _, p := range cycle {
		switch r.orderAt(p).order.Type {
		case OrderMove:
		case OrderConvoy:
			onlyMoves, hasConvoy = false, true
		default:
			onlyMoves = false
		}
	}

	switch {
	case onlyMoves:
		logger.Get().Debug().Int("cycleLen", len(cycle)).Msg("backup rule: circular movement, all succeed")
		for _, p := range cycle {
			ar := r.orderAt(p)
			ar.resolution = true
			ar.state = rsResolved
		}
	case hasConvoy:
		logger.Get().Debug().Int("cycleLen", len(cycle)).Msg("backup rule: convoy paradox, Szykman rule applied")
		for _, p := range cycle {
			ar := r.orderAt(p)
			if ar.order.Type == OrderConvoy {
				ar.resolution = false
				ar.state = rsResolved
			} else {
				ar.state = rsUnresolved
			}
		}
	default:
		logger.Get().Error().Int("cycleLen", len(cycle)).Msg("backup rule: unrecognized circular dependency")
		panic(fmt.Sprintf("stpsyr: unrecognized circular dependency of %d orders", len(cycle)))
	}
}

func (r *resolver) resolveOrder(provIdx int16) bool {
	ar := r.orderAt(provIdx)
	switch ar.order.Type {
	case OrderHold:
		return true
	case OrderMove:
		return r.resolveMove(provIdx)
	case OrderSupport:
		return r.resolveSupport(provIdx)
	case OrderConvoy:
		return r.resolveConvoy(provIdx)
	default:
		logger.Get().Error().Str("province", ar.order.Location).Msg("resolveOrder: unknown order type")
		panic(fmt.Sprintf("stpsyr: unknown order type %d at %s", ar.order.Type, ar.order.Location))
	}
}

// resolveMove determines if a move order succeeds.
func (r *resolver) resolveMove(provIdx int16) bool {
	ar := r.orderAt(provIdx)
	convoyed := r.needsConvoy(ar.order)

	if convoyed && !r.hasConvoyPath(ar.order) {
		return false
	}

	attackStr := r.attackStrength(provIdx)

	// Head-to-head battle: two direct (non-convoyed) moves into each other's
	// province compare attack strength against defend strength; otherwise
	// the counter is the target's hold strength.
	defender := r.orderAt(ar.targetIdx)
	headToHead := !convoyed && defender != nil && defender.order.Type == OrderMove &&
		!r.needsConvoy(defender.order) && defender.targetIdx == provIdx

	var counterStr int
	if headToHead {
		counterStr = r.defendStrength(ar.targetIdx)
	} else {
		counterStr = r.holdStrength(ar.targetIdx)
	}
	if attackStr <= counterStr {
		return false
	}

	// Attack must also exceed the prevent strength of every other move
	// contesting the same destination.
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.provIdx == provIdx {
			continue
		}
		if other.order.Type == OrderMove && other.targetIdx == ar.targetIdx {
			if attackStr <= r.preventStrength(other.provIdx) {
				return false
			}
		}
	}

	return true
}

// resolveSupport determines if support is successfully given (not cut).
func (r *resolver) resolveSupport(provIdx int16) bool {
	ar := r.orderAt(provIdx)

	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type != OrderMove {
			continue
		}
		if other.targetIdx != provIdx {
			continue
		}

		// Support cannot be cut by the unit being supported against (SupportMove),
		// or by the unit being supported itself (SupportHold).
		if ar.auxTargetIdx >= 0 && other.provIdx == ar.auxTargetIdx {
			continue
		}
		if ar.auxTargetIdx < 0 && other.provIdx == ar.auxLocIdx {
			continue
		}

		// Support cannot be cut by a unit of the same power.
		if other.order.Power == ar.order.Power {
			continue
		}

		// A convoyed attack only cuts support if it has a valid convoy path.
		if r.needsConvoy(other.order) && !r.hasConvoyPath(other.order) {
			continue
		}

		return false
	}

	return true
}

// resolveConvoy determines if a convoy order succeeds: it fails only when
// the convoying fleet itself is dislodged.
func (r *resolver) resolveConvoy(provIdx int16) bool {
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type == OrderMove && other.targetIdx == provIdx {
			if r.adjudicate(other.provIdx) {
				return false
			}
		}
	}
	return true
}

// attackStrength computes the attack strength of a move order.
func (r *resolver) attackStrength(provIdx int16) int {
	ar := r.orderAt(provIdx)
	if ar.order.Type != OrderMove {
		logger.Get().Error().Str("province", ar.order.Location).Msg("attackStrength called on a non-move order")
		panic(fmt.Sprintf("stpsyr: attackStrength called on %s order at %s", ar.order.Type, ar.order.Location))
	}

	convoyed := r.needsConvoy(ar.order)
	if convoyed && !r.hasConvoyPath(ar.order) {
		return 0
	}

	// Determine whether the occupant of the destination has moved away.
	// A pure head-to-head battle (two direct moves into each other) is
	// excluded here: the occupant hasn't "moved away", it's contesting back.
	destOrder := r.orderAt(ar.targetIdx)
	headToHead := !convoyed && destOrder != nil && destOrder.order.Type == OrderMove &&
		!r.needsConvoy(destOrder.order) && destOrder.targetIdx == provIdx

	movedAway := false
	if destOrder != nil && destOrder.order.Type == OrderMove && !headToHead {
		movedAway = r.adjudicate(destOrder.provIdx)
	}

	occupier := r.gs.UnitAt(ar.order.Target)
	var attackedPower Power
	attacksOccupant := false
	if !movedAway && occupier != nil {
		attackedPower = occupier.Power
		attacksOccupant = true
	}

	// A unit cannot dislodge one of its own power's units by direct attack.
	if attacksOccupant && attackedPower == ar.order.Power {
		return 0
	}

	strength := 1
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type != OrderSupport {
			continue
		}
		if other.auxLocIdx != provIdx || other.auxTargetIdx != ar.targetIdx {
			continue
		}
		// Support does not help dislodge the supporting power's own unit.
		if attacksOccupant && other.order.Power == attackedPower {
			continue
		}
		if r.adjudicate(other.provIdx) {
			strength++
		}
	}

	return strength
}

// defendStrength computes the defend strength of a move order, used only
// when comparing against an attacker in a head-to-head battle. Unlike
// attack strength, it applies no self-dislodgement filter: the comparison
// rules (attacked power vs mover power) are handled on the attacker's side.
func (r *resolver) defendStrength(provIdx int16) int {
	ar := r.orderAt(provIdx)
	if ar.order.Type != OrderMove {
		return 0
	}

	strength := 1
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type != OrderSupport {
			continue
		}
		if other.auxLocIdx != provIdx || other.auxTargetIdx != ar.targetIdx {
			continue
		}
		if r.adjudicate(other.provIdx) {
			strength++
		}
	}
	return strength
}

// holdStrength computes the hold strength of a province.
func (r *resolver) holdStrength(provIdx int16) int {
	ar := r.orderAt(provIdx)
	if ar == nil {
		return 0
	}

	if ar.order.Type == OrderMove {
		if r.adjudicate(provIdx) {
			return 0
		}
		return 1
	}

	strength := 1
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type != OrderSupport {
			continue
		}
		if other.auxLocIdx != provIdx || other.auxTargetIdx >= 0 {
			continue
		}
		if r.adjudicate(other.provIdx) {
			strength++
		}
	}
	return strength
}

// preventStrength computes the prevent strength of a move order: the
// strength with which it contests its destination against other contenders.
func (r *resolver) preventStrength(provIdx int16) int {
	ar := r.orderAt(provIdx)
	if ar.order.Type != OrderMove {
		logger.Get().Error().Str("province", ar.order.Location).Msg("preventStrength called on a non-move order")
		panic(fmt.Sprintf("stpsyr: preventStrength called on %s order at %s", ar.order.Type, ar.order.Location))
	}

	convoyed := r.needsConvoy(ar.order)
	if convoyed && !r.hasConvoyPath(ar.order) {
		return 0
	}

	// Losing a head-to-head battle consumes this move: its prevent strength
	// drops to 0 (the defender's counter-move displaces it entirely).
	defender := r.orderAt(ar.targetIdx)
	if !convoyed && defender != nil && defender.order.Type == OrderMove &&
		defender.targetIdx == provIdx && !r.needsConvoy(defender.order) {
		if r.adjudicate(ar.targetIdx) {
			return 0
		}
	}

	strength := 1
	for i := range r.adjBuf {
		other := &r.adjBuf[i]
		if other.order.Type != OrderSupport {
			continue
		}
		if other.auxLocIdx != provIdx || other.auxTargetIdx != ar.targetIdx {
			continue
		}
		if r.adjudicate(other.provIdx) {
			strength++
		}
	}
	return strength
}

// needsConvoy returns true if the move requires a convoy chain.
func (r *resolver) needsConvoy(order Order) bool {
	if order.Type != OrderMove || order.UnitType != Army {
		return false
	}
	return !r.m.Adjacent(order.Location, order.Coast, order.Target, NoCoast, false)
}

// hasConvoyPath checks if there's a successful convoy chain for the given move,
// i.e. a simple path of sea provinces each carrying a resolved Convoy{from,to}
// order matching this move. This is the convoy-path search of the design: the
// set of valid paths whose every convoying fleet's own order resolves.
func (r *resolver) hasConvoyPath(order Order) bool {
	srcIdx := int16(r.m.ProvinceIndex(order.Location))
	tgtIdx := int16(r.m.ProvinceIndex(order.Target))

	visited := make(map[int16]bool)
	queue := []int16{}

	for i := range r.adjBuf {
		ar := &r.adjBuf[i]
		if ar.order.Type != OrderConvoy {
			continue
		}
		if ar.auxLocIdx != srcIdx || ar.auxTargetIdx != tgtIdx {
			continue
		}
		prov := r.m.Provinces[ar.order.Location]
		if prov == nil || prov.Type != Sea {
			continue
		}
		if r.m.Adjacent(order.Location, NoCoast, ar.order.Location, NoCoast, true) {
			if r.adjudicate(ar.provIdx) {
				visited[ar.provIdx] = true
				queue = append(queue, ar.provIdx)
			}
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		currentAr := r.orderAt(current)
		if r.m.Adjacent(currentAr.order.Location, NoCoast, order.Target, NoCoast, true) {
			return true
		}

		for i := range r.adjBuf {
			ar := &r.adjBuf[i]
			if visited[ar.provIdx] {
				continue
			}
			if ar.order.Type != OrderConvoy {
				continue
			}
			if ar.auxLocIdx != srcIdx || ar.auxTargetIdx != tgtIdx {
				continue
			}
			prov := r.m.Provinces[ar.order.Location]
			if prov == nil || prov.Type != Sea {
				continue
			}
			if r.m.Adjacent(currentAr.order.Location, NoCoast, ar.order.Location, NoCoast, true) {
				if r.adjudicate(ar.provIdx) {
					visited[ar.provIdx] = true
					queue = append(queue, ar.provIdx)
				}
			}
		}
	}

	return false
}

// buildResults converts internal adjudication state to the external result format.
func (r *resolver) buildResults() ([]ResolvedOrder, []DislodgedUnit) {
	var results []ResolvedOrder
	var dislodged []DislodgedUnit

	successfulMoves := make(map[string]string)
	for i := range r.adjBuf {
		ar := &r.adjBuf[i]
		if ar.order.Type == OrderMove && ar.resolution {
			successfulMoves[ar.order.Target] = ar.order.Location
		}
	}

	for _, o := range r.orderList {
		ar := r.orderAtLoc(o.Location)
		if ar == nil {
			continue
		}

		result := ResultSucceeded

		switch o.Type {
		case OrderMove:
			if !ar.resolution {
				result = ResultBounced
			}
		case OrderSupport:
			if !ar.resolution {
				result = ResultCut
			}
		case OrderConvoy:
			if !ar.resolution {
				result = ResultFailed
			}
		case OrderHold:
		}

		if attacker, ok := successfulMoves[o.Location]; ok {
			if o.Type != OrderMove || !ar.resolution {
				result = ResultDislodged
				dislodged = append(dislodged, DislodgedUnit{
					Unit: Unit{
						Type:     o.UnitType,
						Power:    o.Power,
						Province: o.Location,
						Coast:    o.Coast,
					},
					DislodgedFrom: o.Location,
					AttackerFrom:  attacker,
				})
			}
		}

		results = append(results, ResolvedOrder{Order: o, Result: result})
	}

	return results, dislodged
}

// applyUnitKey identifies a unit by power and province for resolution application.
type applyUnitKey struct {
	power    Power
	province string
}

// applyMoveEntry stores the result of a successful move for batch application.
type applyMoveEntry struct {
	target      string
	targetCoast Coast
	clearCoast  bool
}

// ApplyResolution updates the game state based on resolved orders.
// Moves successful units, removes dislodged units from the board.
func ApplyResolution(gs *GameState, m *DiplomacyMap, results []ResolvedOrder, dislodged []DislodgedUnit) {
	dislodgedSet := make(map[applyUnitKey]bool)
	for _, d := range dislodged {
		dislodgedSet[applyUnitKey{d.Unit.Power, d.DislodgedFrom}] = true
	}

	moves := make(map[applyUnitKey]applyMoveEntry)
	for _, ro := range results {
		if ro.Order.Type == OrderMove && ro.Result == ResultSucceeded {
			clearCoast := ro.Order.TargetCoast == NoCoast && !m.HasCoasts(ro.Order.Target)
			moves[applyUnitKey{ro.Order.Power, ro.Order.Location}] = applyMoveEntry{
				target:      ro.Order.Target,
				targetCoast: ro.Order.TargetCoast,
				clearCoast:  clearCoast,
			}
		}
	}
	applyMoves(gs, moves, dislodgedSet, dislodged)
}

// applyMoves applies move updates and removes dislodged units from the game state.
func applyMoves(gs *GameState, moves map[applyUnitKey]applyMoveEntry, dislodgedSet map[applyUnitKey]bool, dislodged []DislodgedUnit) {
	for i := range gs.Units {
		key := applyUnitKey{gs.Units[i].Power, gs.Units[i].Province}
		if mu, ok := moves[key]; ok {
			gs.Units[i].Province = mu.target
			if mu.targetCoast != NoCoast {
				gs.Units[i].Coast = mu.targetCoast
			} else if mu.clearCoast {
				gs.Units[i].Coast = NoCoast
			}
		}
	}

	remaining := gs.Units[:0]
	for _, u := range gs.Units {
		if !dislodgedSet[applyUnitKey{u.Power, u.Province}] {
			remaining = append(remaining, u)
		}
	}
	gs.Units = remaining
	gs.Dislodged = dislodged
}

// Resolver is a reusable order adjudicator that minimizes allocations.
// Allocate once with NewResolver and call Resolve repeatedly in hot loops.
// The returned slices are owned by the Resolver and overwritten on the next call.
type Resolver struct {
	r resolver

	// buildResults buffers
	resBuf  []ResolvedOrder
	disBuf  []DislodgedUnit
	moveMap map[string]string // target -> source for dislodgement detection

	// Apply buffers
	dislodgedSet map[applyUnitKey]bool
	movesMap     map[applyUnitKey]applyMoveEntry
}

// NewResolver creates a reusable resolver. capacity should be the
// expected number of orders per resolution (e.g. 34 for a full board).
func NewResolver(capacity int) *Resolver {
	rv := &Resolver{
		r: resolver{
			adjBuf:       make([]adjResult, 0, capacity),
			dependencies: make([]int16, 0, capacity),
		},
		resBuf:       make([]ResolvedOrder, 0, capacity),
		disBuf:       make([]DislodgedUnit, 0, 4),
		moveMap:      make(map[string]string, capacity),
		dislodgedSet: make(map[applyUnitKey]bool, 4),
		movesMap:     make(map[applyUnitKey]applyMoveEntry, capacity),
	}
	for i := range rv.r.lookup {
		rv.r.lookup[i] = -1
	}
	return rv
}

// Resolve adjudicates orders and returns resolved results plus dislodged units.
// The returned slices are backed by internal buffers; they are valid until the
// next Resolve call.
func (rv *Resolver) Resolve(orders []Order, gs *GameState, m *DiplomacyMap) ([]ResolvedOrder, []DislodgedUnit) {
	rv.reset(orders, gs, m)

	for i := range rv.r.adjBuf {
		rv.r.adjudicate(rv.r.adjBuf[i].provIdx)
	}

	return rv.buildResults()
}

func (rv *Resolver) reset(orders []Order, gs *GameState, m *DiplomacyMap) {
	r := &rv.r
	n := len(orders)
	if cap(r.adjBuf) >= n {
		r.adjBuf = r.adjBuf[:n]
	} else {
		r.adjBuf = make([]adjResult, n)
	}
	r.orderList = orders
	r.gs = gs
	r.m = m
	r.dependencies = r.dependencies[:0]
	r.initLookup()
}

func (rv *Resolver) buildResults() ([]ResolvedOrder, []DislodgedUnit) {
	rv.resBuf = rv.resBuf[:0]
	rv.disBuf = rv.disBuf[:0]
	clear(rv.moveMap)

	r := &rv.r
	for i := range r.adjBuf {
		ar := &r.adjBuf[i]
		if ar.order.Type == OrderMove && ar.resolution {
			rv.moveMap[ar.order.Target] = ar.order.Location
		}
	}

	for _, o := range r.orderList {
		ar := r.orderAtLoc(o.Location)
		if ar == nil {
			continue
		}

		result := ResultSucceeded

		switch o.Type {
		case OrderMove:
			if !ar.resolution {
				result = ResultBounced
			}
		case OrderSupport:
			if !ar.resolution {
				result = ResultCut
			}
		case OrderConvoy:
			if !ar.resolution {
				result = ResultFailed
			}
		case OrderHold:
		}

		if attacker, ok := rv.moveMap[o.Location]; ok {
			if o.Type != OrderMove || !ar.resolution {
				result = ResultDislodged
				rv.disBuf = append(rv.disBuf, DislodgedUnit{
					Unit: Unit{
						Type:     o.UnitType,
						Power:    o.Power,
						Province: o.Location,
						Coast:    o.Coast,
					},
					DislodgedFrom: o.Location,
					AttackerFrom:  attacker,
				})
			}
		}

		rv.resBuf = append(rv.resBuf, ResolvedOrder{Order: o, Result: result})
	}

	return rv.resBuf, rv.disBuf
}

// Apply updates the game state using the results from the most recent Resolve call.
// Moves successful units and removes dislodged units.
func (rv *Resolver) Apply(gs *GameState, m *DiplomacyMap) {
	clear(rv.dislodgedSet)
	clear(rv.movesMap)

	for _, d := range rv.disBuf {
		rv.dislodgedSet[applyUnitKey{d.Unit.Power, d.DislodgedFrom}] = true
	}

	for _, ro := range rv.resBuf {
		if ro.Order.Type == OrderMove && ro.Result == ResultSucceeded {
			clearCoast := ro.Order.TargetCoast == NoCoast && !m.HasCoasts(ro.Order.Target)
			rv.movesMap[applyUnitKey{ro.Order.Power, ro.Order.Location}] = applyMoveEntry{
				target:      ro.Order.Target,
				targetCoast: ro.Order.TargetCoast,
				clearCoast:  clearCoast,
			}
		}
	}
	applyMoves(gs, rv.movesMap, rv.dislodgedSet, rv.disBuf)
}

// HasDislodged returns true if the last Resolve call produced any dislodged units.
func (rv *Resolver) HasDislodged() bool {
	return len(rv.disBuf) > 0
}
