package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"skillrate/rating"
)

// document is the tournament file layout. The root element name is free;
// its direct children are players, teams, and rating periods:
//
//	<tournament>
//	  <player><name>kate</name><rating>1650</rating></player>
//	  <team><name>reds</name><member>kate</member><member>jo</member></team>
//	  <period>
//	    <game><home>kate</home><away>jo</away><result>win</result></game>
//	    <race><competitor>jo</competitor><competitor>reds</competitor></race>
//	  </period>
//	</tournament>
//
// Game results are from the home side's point of view. A game or race
// entrant naming a team expands to every member. A race lists entrants in
// finish order; each one beats everybody behind it.
type document struct {
	Players []playerDef `xml:"player"`
	Teams   []teamDef   `xml:"team"`
	Periods []period    `xml:"period"`
}

type playerDef struct {
	Name       string   `xml:"name"`
	Rating     *float64 `xml:"rating"`
	Deviation  *float64 `xml:"deviation"`
	Volatility *float64 `xml:"volatility"`
}

type teamDef struct {
	Name    string   `xml:"name"`
	Members []string `xml:"member"`
}

type period struct {
	Games []game `xml:"game"`
	Races []race `xml:"race"`
}

type game struct {
	Home   string `xml:"home"`
	Away   string `xml:"away"`
	Result string `xml:"result"`
}

type race struct {
	Competitors []string `xml:"competitor"`
}

type tournament struct {
	players map[string]*rating.Player
	names   []string // registration order
	teams   map[string][]string
}

func parseDocument(r io.Reader) (*document, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse tournament: %w", err)
	}
	return &doc, nil
}

func newTournament(doc *document) (*tournament, error) {
	t := &tournament{
		players: make(map[string]*rating.Player),
		teams:   make(map[string][]string),
	}

	for _, pd := range doc.Players {
		name := strings.TrimSpace(pd.Name)
		if name == "" {
			return nil, fmt.Errorf("player with empty name")
		}
		if _, ok := t.players[name]; ok {
			return nil, fmt.Errorf("duplicate player %q", name)
		}
		p := rating.NewPlayer()
		if pd.Rating != nil {
			p.SetRating(*pd.Rating)
		}
		if pd.Deviation != nil {
			p.SetDeviation(*pd.Deviation)
		}
		if pd.Volatility != nil {
			p.SetVolatility(*pd.Volatility)
		}
		t.players[name] = p
		t.names = append(t.names, name)
	}

	for _, td := range doc.Teams {
		name := strings.TrimSpace(td.Name)
		if len(td.Members) == 0 {
			return nil, fmt.Errorf("team %q has no members", name)
		}
		members := make([]string, 0, len(td.Members))
		for _, m := range td.Members {
			m = strings.TrimSpace(m)
			if _, ok := t.players[m]; !ok {
				return nil, fmt.Errorf("team %q member %q is not a player", name, m)
			}
			members = append(members, m)
		}
		t.teams[name] = members
	}

	return t, nil
}

// side expands a game or race entrant: a team name yields its members,
// anything else must be a player.
func (t *tournament) side(name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if members, ok := t.teams[name]; ok {
		return members, nil
	}
	if _, ok := t.players[name]; ok {
		return []string{name}, nil
	}
	return nil, fmt.Errorf("unknown player or team %q", name)
}

func (t *tournament) recordGame(g game) error {
	home, err := t.side(g.Home)
	if err != nil {
		return err
	}
	away, err := t.side(g.Away)
	if err != nil {
		return err
	}

	var homeOutcome, awayOutcome rating.Outcome
	switch strings.TrimSpace(g.Result) {
	case "win":
		homeOutcome, awayOutcome = rating.Win, rating.Loss
	case "loss":
		homeOutcome, awayOutcome = rating.Loss, rating.Win
	case "draw":
		homeOutcome, awayOutcome = rating.Draw, rating.Draw
	default:
		return fmt.Errorf("game %s vs %s: result must be win, loss, or draw, got %q", g.Home, g.Away, g.Result)
	}

	for _, h := range home {
		for _, a := range away {
			if err := t.players[h].AddResult(t.players[a], homeOutcome); err != nil {
				return err
			}
			if err := t.players[a].AddResult(t.players[h], awayOutcome); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *tournament) recordRace(r race) error {
	// Entrants are in finish order: everyone already placed beats each
	// newcomer, pairwise, with teams expanded on both sides.
	var placed [][]string
	for _, c := range r.Competitors {
		entrant, err := t.side(c)
		if err != nil {
			return err
		}
		for _, ahead := range placed {
			for _, winner := range ahead {
				for _, loser := range entrant {
					t.players[winner].AddWin(t.players[loser])
					t.players[loser].AddLoss(t.players[winner])
				}
			}
		}
		placed = append(placed, entrant)
	}
	return nil
}

// runPeriod records every game and race, then rates all players. With age
// set, players who sat the period out get the canonical deviation growth;
// otherwise they are left untouched.
func (t *tournament) runPeriod(p period, age bool) error {
	for _, g := range p.Games {
		if err := t.recordGame(g); err != nil {
			return err
		}
	}
	for _, r := range p.Races {
		if err := t.recordRace(r); err != nil {
			return err
		}
	}

	for _, name := range t.names {
		pl := t.players[name]
		if pl.PendingGames() == 0 {
			if age {
				pl.Age()
			}
			continue
		}
		if err := pl.Update(); err != nil {
			return fmt.Errorf("update %s: %w", name, err)
		}
	}
	return nil
}

// standings returns player names ranked best rating first.
func (t *tournament) standings() []string {
	names := append([]string(nil), t.names...)
	sort.SliceStable(names, func(i, j int) bool {
		return t.players[names[j]].Less(t.players[names[i]])
	})
	return names
}

func (t *tournament) writeStandings(w io.Writer) {
	for i, name := range t.standings() {
		p := t.players[name]
		fmt.Fprintf(w, "%3d %-24s %7.1f  +/- %5.1f  %.5f\n",
			i+1, name, p.Rating(), p.Deviation(), p.Volatility())
	}
}
