package diplomacy

import "stpsyr/internal/logger"

// ordersPerTurn is the number of orders in a full-board turn (one unit per
// supply center, 34 in all; a game starts with 22), used to size the
// reusable resolver.
const ordersPerTurn = 34

// Game is the public facade over a single Diplomacy game: a map, the
// current board state, and the pending orders for whichever phase is
// currently active. A caller can hold any number of independent Games.
// They are not safe to use from several goroutines at once: HomeCenters
// fills a package-level cache without locking.
type Game struct {
	Map   *DiplomacyMap
	State *GameState

	orders   []Order
	retreats []RetreatOrder
	builds   []BuildOrder

	resolver *Resolver
}

// NewGame starts a new game at the Spring 1901 movement phase. An empty
// mapfile loads the standard 75-province map; a non-empty path is loaded
// via LoadMap, e.g. for a variant map. Whichever map is loaded, the
// starting units and supply-center owners are the standard ones from
// NewInitialState.
func NewGame(mapfile string) (*Game, error) {
	m := StandardMap()
	if mapfile != "" {
		loaded, err := LoadMap(mapfile)
		if err != nil {
			return nil, err
		}
		m = loaded
	}
	return &Game{
		Map:      m,
		State:    NewInitialState(),
		resolver: NewResolver(ordersPerTurn),
	}, nil
}

// AddOrder validates and records a movement-phase order, replacing any
// prior order for the same unit. Invalid orders are silently dropped; the
// caller can inspect gm.Orders() to see what was actually accepted.
func (gm *Game) AddOrder(order Order) {
	gm.orders = AddOrder(gm.orders, order, gm.State, gm.Map)
}

// Orders returns the movement orders accepted so far this phase.
func (gm *Game) Orders() []Order {
	return gm.orders
}

// ApplyOrders resolves the accumulated movement orders, updates the board,
// advances the phase, and clears the pending order list. Returns the
// resolved orders (with outcomes) and any units dislodged in the process.
// The dislodged slice is backed by the Game's internal resolver buffer and
// is only valid until the next ApplyOrders call; copy it if it needs to
// outlive that.
func (gm *Game) ApplyOrders() ([]ResolvedOrder, []DislodgedUnit) {
	full, voided := ValidateAndDefaultOrders(gm.orders, gm.State, gm.Map)
	results, dislodged := gm.resolver.Resolve(full, gm.State, gm.Map)
	gm.resolver.Apply(gm.State, gm.Map)
	AdvanceState(gm.State, gm.Map, gm.resolver.HasDislodged())

	gm.orders = nil
	return append(voided, results...), dislodged
}

// AddRetreat validates and records a retreat-phase order.
func (gm *Game) AddRetreat(order RetreatOrder) {
	if err := ValidateRetreatOrder(order, gm.State, gm.Map); err != nil {
		logger.Get().Debug().Err(err).Str("province", order.Location).Msg("retreat order rejected")
		return
	}
	for i, o := range gm.retreats {
		if o.Location == order.Location {
			gm.retreats[i] = order
			return
		}
	}
	gm.retreats = append(gm.retreats, order)
}

// ApplyRetreats resolves the accumulated retreat orders, updates the
// board, advances the phase, and clears the pending retreat list.
func (gm *Game) ApplyRetreats() []RetreatResult {
	results := ResolveRetreats(gm.retreats, gm.State, gm.Map)
	ApplyRetreats(gm.State, results, gm.Map)
	AdvanceState(gm.State, gm.Map, false)

	gm.retreats = nil
	return results
}

// AddAdjust validates and records a build-phase order (build, disband, or waive).
func (gm *Game) AddAdjust(order BuildOrder) {
	if err := ValidateBuildOrder(order, gm.State, gm.Map); err != nil {
		logger.Get().Debug().Err(err).Str("province", order.Location).Msg("build order rejected")
		return
	}
	gm.builds = append(gm.builds, order)
}

// ApplyAdjusts resolves the accumulated build-phase orders (including
// civil-disorder auto-disbands for any power that under-submitted),
// updates the board, advances the phase, and clears the pending list.
func (gm *Game) ApplyAdjusts() []BuildResult {
	results := ResolveBuildOrders(gm.builds, gm.State, gm.Map)
	ApplyBuildOrders(gm.State, results)
	AdvanceState(gm.State, gm.Map, false)

	gm.builds = nil
	return results
}

// ParseOrder parses a single DSON order string for the given power and
// converts it to a movement-phase Order via DSONToOrder, whatever the
// current phase; retreat and build DSON orders are not told apart. It is a
// convenience wrapper over ParseDSON/DSONToOrder for callers that accept
// one order at a time rather than a full DSON batch.
func ParseOrder(s string, power Power) (Order, error) {
	parsed, err := ParseDSON(s)
	if err != nil {
		return Order{}, err
	}
	if len(parsed) != 1 {
		return Order{}, &ValidationError{Message: "expected exactly one order"}
	}
	return DSONToOrder(parsed[0], power), nil
}

// UnitAt returns the unit occupying the given province, or nil if unoccupied.
func (gm *Game) UnitAt(province string) *Unit {
	return gm.State.UnitAt(province)
}

// SupplyCenterCounts returns the current supply center count for every power.
func (gm *Game) SupplyCenterCounts() map[Power]int {
	counts := make(map[Power]int, len(AllPowers()))
	for _, p := range AllPowers() {
		counts[p] = gm.State.SupplyCenterCount(p)
	}
	return counts
}

// UnitCounts returns the current unit count for every power.
func (gm *Game) UnitCounts() map[Power]int {
	counts := make(map[Power]int, len(AllPowers()))
	for _, p := range AllPowers() {
		counts[p] = gm.State.UnitCount(p)
	}
	return counts
}

// IsOver reports whether the game has ended, either by solo victory or
// by reaching the year limit (a draw).
func (gm *Game) IsOver() (bool, Power) {
	if over, winner := IsGameOver(gm.State); over {
		return true, winner
	}
	return IsYearLimitReached(gm.State), Neutral
}

// Snapshot encodes the current board state as DFEN.
func (gm *Game) Snapshot() string {
	return EncodeDFEN(gm.State)
}

// Restore replaces the board state by decoding a DFEN snapshot.
func (gm *Game) Restore(dfen string) error {
	gs, err := DecodeDFEN(dfen)
	if err != nil {
		return err
	}
	gm.State = gs
	return nil
}
