package pokemon

import (
	"strings"

	"github.com/BielosX/wombat/poke-data/src/pokeapi"
)

// FlattenChain walks an evolution tree depth first, emitting each link
// before its children. The root is level 1 and each edge adds one. The
// tree is assumed finite and acyclic.
func FlattenChain(root pokeapi.ChainLink) []EvolutionNode {
	var nodes []EvolutionNode
	var walk func(link pokeapi.ChainLink, level int)
	walk = func(link pokeapi.ChainLink, level int) {
		nodes = append(nodes, EvolutionNode{
			Name:    capitalize(link.Species.Name),
			Level:   level,
			Details: evolutionDetails(link.EvolutionDetails),
		})
		for _, next := range link.EvolvesTo {
			walk(next, level+1)
		}
	}
	walk(root, 1)
	return nodes
}

// evolutionDetails keeps only the trigger fields set on the incoming edge.
func evolutionDetails(raw []pokeapi.EvolutionDetail) []EvolutionDetail {
	details := make([]EvolutionDetail, 0, len(raw))
	for _, d := range raw {
		var detail EvolutionDetail
		if d.Gender != nil {
			detail.Gender = *d.Gender
		}
		if d.HeldItem != nil {
			detail.HeldItem = strings.ReplaceAll(d.HeldItem.Name, "-", " ")
		}
		if d.Item != nil {
			detail.Item = strings.ReplaceAll(d.Item.Name, "-", " ")
		}
		if d.MinLevel != nil {
			detail.MinLevel = *d.MinLevel
		}
		if d.Trigger != nil {
			detail.Trigger = strings.ReplaceAll(d.Trigger.Name, "-", " ")
		}
		details = append(details, detail)
	}
	return details
}
