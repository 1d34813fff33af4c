package player

import (
	"strconv"

	"github.com/futstats/soccergraph/internal/graph"
)

// Player is one entry from the player ratings source. ID is the
// source-supplied unique id; optional ratings stay nil when the source
// value is missing or unparsable. Club holds the canonical team name.
type Player struct {
	ID          int
	Name        string
	Age         *int
	Nationality string
	Overall     *int
	Potential   *int
	Club        string
	Position    string
}

// Key is the node key the player is stored under.
func (p Player) Key() string {
	return strconv.Itoa(p.ID)
}

func (p Player) Props() graph.Props {
	props := graph.Props{
		"id":   p.ID,
		"name": p.Name,
	}
	if p.Age != nil {
		props["age"] = *p.Age
	}
	if p.Nationality != "" {
		props["nationality"] = p.Nationality
	}
	if p.Overall != nil {
		props["overall"] = *p.Overall
	}
	if p.Potential != nil {
		props["potential"] = *p.Potential
	}
	if p.Club != "" {
		props["club"] = p.Club
	}
	if p.Position != "" {
		props["position"] = p.Position
	}
	return props
}

func FromProps(props graph.Props) Player {
	p := Player{
		Name:        props.String("name"),
		Nationality: props.String("nationality"),
		Club:        props.String("club"),
		Position:    props.String("position"),
	}
	if id, ok := props.Int("id"); ok {
		p.ID = id
	}
	if age, ok := props.Int("age"); ok {
		p.Age = &age
	}
	if overall, ok := props.Int("overall"); ok {
		p.Overall = &overall
	}
	if potential, ok := props.Int("potential"); ok {
		p.Potential = &potential
	}
	return p
}
