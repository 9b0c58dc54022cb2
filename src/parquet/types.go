package parquet

import (
	"strings"

	"github.com/BielosX/wombat/poke-data/src/pokemon"
)

// Pokemon is one exported row. Types are joined with "/".
type Pokemon struct {
	Id         int32   `parquet:"name=id, type=INT32"`
	Name       string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Species    string  `parquet:"name=species, type=BYTE_ARRAY, convertedtype=UTF8"`
	Type       string  `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Height     float64 `parquet:"name=height, type=DOUBLE"`
	Weight     float64 `parquet:"name=weight, type=DOUBLE"`
	Generation int32   `parquet:"name=generation, type=INT32"`
	Rarity     string  `parquet:"name=rarity, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func ToPokemon(record *pokemon.Record) Pokemon {
	return Pokemon{
		Id:         int32(record.Id),
		Name:       record.Name,
		Species:    record.Species,
		Type:       strings.Join(record.Type, "/"),
		Height:     record.Height,
		Weight:     record.Weight,
		Generation: int32(record.Generation),
		Rarity:     record.Rarity,
	}
}
