package booking

import "strings"

// DefaultAuditoriumBlock is the pseudo-block whose rooms are always auditoriums.
const DefaultAuditoriumBlock = "Auditorium"

// Block is a named building grouping the rooms that may be registered in it.
type Block struct {
	Name  string   `yaml:"name"`
	Rooms []string `yaml:"rooms"`
}

// Catalog enumerates the known blocks and their registrable rooms.
type Catalog struct {
	Blocks []Block `yaml:"blocks"`
}

// DefaultCatalog returns the campus layout shipped with the application.
func DefaultCatalog() Catalog {
	return Catalog{Blocks: []Block{
		{Name: "Block A", Rooms: []string{"A1", "A2", "A3"}},
		{Name: "Block B", Rooms: []string{"B101", "B201", "B301"}},
		{Name: "Block C", Rooms: []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9", "C10"}},
		{Name: "Block D", Rooms: []string{"D1", "D2", "D3", "D4"}},
		{Name: "Block E", Rooms: []string{"E101", "E102", "E103"}},
		{Name: "Block F", Rooms: []string{"F101", "F102", "F201", "F202", "F203"}},
		{Name: "Block G", Rooms: []string{"G1", "G2", "G3"}},
		{Name: DefaultAuditoriumBlock, Rooms: []string{"Main Auditorium"}},
	}}
}

// BlockNames returns the block names in catalog order.
func (c Catalog) BlockNames() []string {
	names := make([]string, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		names = append(names, b.Name)
	}
	return names
}

// HasBlock reports whether name is a catalog block. An empty catalog accepts any block.
func (c Catalog) HasBlock(name string) bool {
	if len(c.Blocks) == 0 {
		return true
	}
	_, ok := c.block(name)
	return ok
}

// Rooms returns the catalog rooms of a block.
func (c Catalog) Rooms(block string) []string {
	b, ok := c.block(block)
	if !ok {
		return nil
	}
	out := make([]string, len(b.Rooms))
	copy(out, b.Rooms)
	return out
}

// AvailableRooms returns the catalog rooms of block that are not yet registered.
func (c Catalog) AvailableRooms(block string, registered []Room) []string {
	taken := make(map[string]struct{}, len(registered))
	for _, r := range registered {
		if r.Block == block {
			taken[r.RoomID] = struct{}{}
		}
	}
	var out []string
	for _, room := range c.Rooms(block) {
		if _, ok := taken[room]; ok {
			continue
		}
		out = append(out, room)
	}
	return out
}

func (c Catalog) block(name string) (Block, bool) {
	name = strings.TrimSpace(name)
	for _, b := range c.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return Block{}, false
}
