package diplomacy

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// LoadMap reads a tabular map description from path and builds a
// DiplomacyMap from it. Each row describes one province, or one coast of a
// split-coast province:
//
//	id, name, type, isSupplyCenter, homePower, coasts, fromCoast, armyBorders, fleetBorders
//
// type is one of "land", "sea", "coastal". coasts is a space-separated list
// of coast codes ("nc sc ec wc") for split-coast provinces, empty otherwise.
// fromCoast is empty except on a row describing one specific coast's fleet
// borders for a split-coast province (e.g. "nc" for the St Petersburg North
// Coast row). armyBorders and fleetBorders are space-separated province IDs
// reachable by that unit type; a border may be qualified as "id/coast" to
// record which coast of a split-coast destination the border lands on.
//
// A header row is expected and skipped. Rows sharing the same province id
// have their borders merged, matching the convention used by the original
// tabular map format where a split-coast province's coasts are listed on
// separate rows, one per coast's fleet borders.
func LoadMap(path string) (*DiplomacyMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse map file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("map file %s has no data rows", path)
	}

	m := &DiplomacyMap{
		Provinces:   make(map[string]*Province),
		Adjacencies: make(map[string][]Adjacency),
	}

	type pendingAdj struct {
		from, to           string
		fromCoast, toCoast Coast
		armyOK             bool
		fleetOK            bool
	}
	var pending []pendingAdj

	for _, row := range rows[1:] {
		if len(row) < 9 {
			return nil, fmt.Errorf("map file %s: row %v has fewer than 9 columns", path, row)
		}
		id := strings.TrimSpace(row[0])
		if id == "" {
			continue
		}
		name := strings.TrimSpace(row[1])
		ptype, err := parseProvinceType(row[2])
		if err != nil {
			return nil, fmt.Errorf("province %s: %w", id, err)
		}
		isSC, err := strconv.ParseBool(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("province %s: isSupplyCenter: %w", id, err)
		}
		homePower := Power(strings.TrimSpace(row[4]))
		coasts := parseCoastList(row[5])
		fromCoast := Coast(strings.TrimSpace(row[6]))

		if existing, ok := m.Provinces[id]; ok {
			existing.Coasts = mergeCoasts(existing.Coasts, coasts)
		} else {
			m.Provinces[id] = &Province{
				ID:             id,
				Name:           name,
				Type:           ptype,
				IsSupplyCenter: isSC,
				HomePower:      homePower,
				Coasts:         coasts,
			}
		}

		for _, tok := range strings.Fields(row[7]) {
			to, toCoast := splitBorderToken(tok)
			pending = append(pending, pendingAdj{from: id, to: to, fromCoast: fromCoast, toCoast: toCoast, armyOK: true})
		}
		for _, tok := range strings.Fields(row[8]) {
			to, toCoast := splitBorderToken(tok)
			pending = append(pending, pendingAdj{from: id, to: to, fromCoast: fromCoast, toCoast: toCoast, fleetOK: true})
		}
	}

	for _, p := range pending {
		m.Adjacencies[p.from] = append(m.Adjacencies[p.from], Adjacency{
			From:      p.from,
			FromCoast: p.fromCoast,
			To:        p.to,
			ToCoast:   p.toCoast,
			ArmyOK:    p.armyOK,
			FleetOK:   p.fleetOK,
		})
	}

	keys := make([]string, 0, len(m.Provinces))
	for id := range m.Provinces {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	if len(keys) > ProvinceCount {
		return nil, fmt.Errorf("map file %s: %d provinces exceeds maximum %d", path, len(keys), ProvinceCount)
	}
	m.provIndex = make(map[string]int, len(keys))
	for i, id := range keys {
		m.provIndex[id] = i
		m.provNames[i] = id
	}

	return m, nil
}

func parseProvinceType(s string) (ProvinceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "land":
		return Land, nil
	case "sea":
		return Sea, nil
	case "coastal":
		return Coastal, nil
	default:
		return 0, fmt.Errorf("unknown province type %q", s)
	}
}

func parseCoastList(s string) []Coast {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	coasts := make([]Coast, 0, len(fields))
	for _, f := range fields {
		coasts = append(coasts, Coast(f))
	}
	return coasts
}

func mergeCoasts(existing, extra []Coast) []Coast {
	seen := make(map[Coast]bool, len(existing))
	for _, c := range existing {
		seen[c] = true
	}
	for _, c := range extra {
		if !seen[c] {
			existing = append(existing, c)
			seen[c] = true
		}
	}
	return existing
}

// splitBorderToken splits a border token of the form "id" or "id/coast"
// into its province id and optional destination coast qualifier.
func splitBorderToken(tok string) (string, Coast) {
	if idx := strings.IndexByte(tok, '/'); idx >= 0 {
		return tok[:idx], Coast(tok[idx+1:])
	}
	return tok, NoCoast
}
